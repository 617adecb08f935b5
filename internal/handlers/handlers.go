package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"bookline/api/internal/config"
	"bookline/api/internal/middleware"
	"bookline/api/internal/repository"
	"bookline/api/internal/service"
	"bookline/api/internal/validate"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	auth     *service.AuthService
	bookings *service.BookingService
	sessions middleware.SessionStore
	db       *pgxpool.Pool
}

func NewHandlerSet(
	log zerolog.Logger,
	cfg *config.AppConfig,
	db *pgxpool.Pool,
	auth *service.AuthService,
	bookings *service.BookingService,
	sessions middleware.SessionStore,
) HandlerSet {
	return HandlerSet{
		log:      log,
		cfg:      cfg,
		auth:     auth,
		bookings: bookings,
		sessions: sessions,
		db:       db,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	router.Use(middleware.Session(h.cfg.Session.CookieName, h.sessions))

	users := router.Group("/users")
	{
		users.POST("/register", h.RegisterUser)
		users.POST("/login", h.Login)
		users.POST("/logout", h.Logout)
		users.POST("/reset-password", h.ResetPassword)
		users.POST("/validate", h.ValidateSignup)

		authed := users.Group("")
		authed.Use(middleware.RequireAuth())
		authed.GET("/info", h.Me)
		authed.GET("/bookings", h.ListBookings)
		authed.DELETE("/delete", h.DeleteAccount)
	}

	bookings := router.Group("/bookings")
	bookings.Use(middleware.RequireAuth())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.DELETE("/:id", h.DeleteBooking)
	}
}

// writeServiceError maps domain-known errors to status codes. Anything
// unclassified becomes a logged 500 with a generic body.
func (h HandlerSet) writeServiceError(c *gin.Context, err error) {
	var (
		missing   *service.MissingFieldsError
		fieldErrs validate.FieldErrors
	)

	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":            false,
			"error":         "missing required fields",
			"missingFields": missing.Fields,
		})
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":     false,
			"error":  "validation failed",
			"fields": fieldErrs,
		})
	case errors.Is(err, service.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, service.ErrRegistrationClosed):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, repository.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	default:
		h.log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
	}
}
