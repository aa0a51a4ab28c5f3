package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/openshelf/library-service/internal/errs"
	md "github.com/openshelf/library-service/pkg/middleware"
	"github.com/openshelf/library-service/pkg/validate"
	_ "github.com/openshelf/library-service/swagger"
)

type Handler struct {
	catalogSvc CatalogService
	loanSvc    LoanService
	authSvc    AuthService
	statsSvc   StatsService
	events     LoanEvents
	log        *zap.Logger
}

func New(catalogSvc CatalogService, loanSvc LoanService, authSvc AuthService, statsSvc StatsService, events LoanEvents, log *zap.Logger) *Handler {
	return &Handler{
		catalogSvc: catalogSvc,
		loanSvc:    loanSvc,
		authSvc:    authSvc,
		statsSvc:   statsSvc,
		events:     events,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	api.GET("/books", h.GetBooks)
	api.GET("/books/stats/top-borrowed", h.TopBorrowed)
	api.GET("/books/:bookId", h.GetBook)
	api.GET("/books/:bookId/history", h.BookHistory)
	api.GET("/authors", h.GetAuthors)
	api.GET("/categories", h.GetCategories)

	authed := api.Group("", md.JwtAuthentication)
	authed.GET("/auth/me", h.Me)
	authed.GET("/profile", h.Profile)
	authed.GET("/me/loans", h.MyLoans)
	authed.POST("/borrow/:bookId", h.Borrow)
	authed.POST("/return/:loanUid", h.Return)

	admin := authed.Group("/admin", md.AdminOnly)
	admin.GET("/users", h.ListUsers)
	admin.POST("/users", h.CreateUser)
	admin.POST("/books", h.CreateBook)
	admin.PUT("/books/:bookId", h.UpdateBook)
	admin.DELETE("/books/:bookId", h.DeleteBook)
	admin.POST("/authors", h.CreateAuthor)
	admin.PUT("/authors/:authorId", h.UpdateAuthor)
	admin.DELETE("/authors/:authorId", h.DeleteAuthor)
	admin.POST("/categories", h.CreateCategory)
	admin.PUT("/categories/:categoryId", h.UpdateCategory)
	admin.DELETE("/categories/:categoryId", h.DeleteCategory)
	admin.GET("/overdue", h.Overdue)
	admin.GET("/stats", h.SystemStats)
	admin.GET("/events", h.LoanEventLog)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps the domain error taxonomy onto status codes:
// not-found 404, conflict/policy 400, bad credentials 401, rest 500.
func httpError(err error) *echo.HTTPError {
	switch {
	case errs.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errs.IsConflict(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
