package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/coursehub/coursehub-backend/internal/adapter/handler/http"
	"github.com/coursehub/coursehub-backend/internal/config"
	"github.com/coursehub/coursehub-backend/internal/infrastructure/database"
	"github.com/coursehub/coursehub-backend/internal/middleware/auth"
	"github.com/coursehub/coursehub-backend/internal/usecase"
)

// Usecases bundles the services the HTTP layer exposes.
type Usecases struct {
	Users         *usecase.UserService
	Courses       *usecase.CourseService
	Lessons       *usecase.LessonService
	Subscriptions *usecase.SubscriptionService
	Payments      *usecase.PaymentService
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	repos    *database.Repositories
	usecases Usecases
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(cfg *config.Config, logger *zap.Logger, repos *database.Repositories, usecases Usecases) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
	}))

	return &Server{
		config:   cfg,
		logger:   logger,
		echo:     e,
		repos:    repos,
		usecases: usecases,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Initialize handlers
	userHandler := handlers.NewUserHandler(s.usecases.Users, s.logger)
	courseHandler := handlers.NewCourseHandler(s.usecases.Courses, s.usecases.Subscriptions, s.logger)
	lessonHandler := handlers.NewLessonHandler(s.usecases.Lessons, s.logger)
	paymentHandler := handlers.NewPaymentHandler(s.usecases.Payments, s.logger)

	// JWT middleware configuration. The redirect endpoints must stay
	// public: the processor sends the buyer's browser there without a
	// bearer token.
	jwtConfig := auth.JWTConfig{
		Secret: s.config.JWT.Secret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
			"/api/v1/register",
			"/api/v1/login",
			"/api/v1/token/refresh",
			"/api/v1/payments/success",
			"/api/v1/payments/cancel",
		},
	}

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Public routes (no authentication required)
	v1.POST("/register", userHandler.Register)
	v1.POST("/login", userHandler.Login)
	v1.POST("/token/refresh", userHandler.Refresh)
	v1.GET("/payments/success", paymentHandler.HandleSuccess)
	v1.GET("/payments/cancel", paymentHandler.HandleCancel)

	// Protected routes (require JWT authentication)
	protected := v1.Group("", auth.JWTMiddleware(jwtConfig))

	// Accounts
	protected.GET("/users/me", userHandler.GetMe)
	protected.GET("/users", userHandler.ListUsers)
	protected.PATCH("/users/:id", userHandler.UpdateUser)
	protected.DELETE("/users/:id", userHandler.DeleteUser)

	// Courses and lessons
	courses := protected.Group("/courses")
	courses.POST("", courseHandler.CreateCourse)
	courses.GET("", courseHandler.ListCourses)
	courses.GET("/:id", courseHandler.GetCourse)
	courses.PUT("/:id", courseHandler.UpdateCourse)
	courses.DELETE("/:id", courseHandler.DeleteCourse)
	courses.POST("/:id/subscription", courseHandler.ToggleSubscription)

	lessons := protected.Group("/lessons")
	lessons.POST("", lessonHandler.CreateLesson)
	lessons.GET("", lessonHandler.ListLessons)
	lessons.GET("/:id", lessonHandler.GetLesson)
	lessons.PUT("/:id", lessonHandler.UpdateLesson)
	lessons.DELETE("/:id", lessonHandler.DeleteLesson)

	// Payments
	payments := protected.Group("/payments")
	payments.POST("", paymentHandler.CreatePayment)
	payments.GET("", paymentHandler.ListPayments)
	payments.GET("/:id", paymentHandler.GetPayment)
	payments.GET("/:id/status", paymentHandler.CheckPaymentStatus)
}
