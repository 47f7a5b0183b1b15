package errors

import "errors"

var (
	// ErrLessonNotFound indicates that the specified lesson was not found
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrInvalidVideoURL indicates a lesson video link outside YouTube
	ErrInvalidVideoURL = errors.New("only YouTube video links are allowed")
)
