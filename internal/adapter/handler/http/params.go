package http

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/coursehub/coursehub-backend/internal/domain/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

func parseInt64Param(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parsePage reads page/page_size query parameters, defaulting to the first
// page of ten and capping the size at fifty.
func parsePage(c echo.Context) repository.Page {
	page := repository.Page{Number: 1, Size: defaultPageSize}

	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil && n > 0 {
		page.Number = n
	}
	if size, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && size > 0 {
		if size > maxPageSize {
			size = maxPageSize
		}
		page.Size = size
	}

	return page
}
