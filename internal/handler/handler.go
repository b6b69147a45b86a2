package handler

import (
	"context"
	"net/http"
	"time"

	"citypulse-service/internal/ratelimit"
	"citypulse-service/internal/store"

	"github.com/labstack/echo/v4"
)

// DefaultTenant scopes requests that carry no tenant_id query parameter.
const DefaultTenant = "default"

// listCap bounds persona/room listings and the nearby alert scan.
const listCap = 200

// Options tunes handler behavior.
type Options struct {
	// Limiter enables rate limiting on message send and alert create.
	// Nil disables both checks.
	Limiter *ratelimit.FixedWindowLimiter
	// MessageLimitPerMinute is the default send quota; tenant settings
	// override it.
	MessageLimitPerMinute int
	// AlertCooldownSeconds is the default gap between alerts from one
	// persona; tenant settings override it.
	AlertCooldownSeconds int
	// StoreTimeout caps every storage round-trip.
	StoreTimeout time.Duration
}

// Handler serves all HTTP endpoints over a Store.
type Handler struct {
	store         store.Store
	limiter       *ratelimit.FixedWindowLimiter
	messageLimit  int
	alertCooldown time.Duration
	storeTimeout  time.Duration
}

// New builds a Handler. A nil store is tolerated and reported as a
// storage-unavailable error on every data endpoint.
func New(s store.Store, opts Options) *Handler {
	if opts.MessageLimitPerMinute <= 0 {
		opts.MessageLimitPerMinute = 60
	}
	if opts.AlertCooldownSeconds <= 0 {
		opts.AlertCooldownSeconds = 120
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = 5 * time.Second
	}
	return &Handler{
		store:         s,
		limiter:       opts.Limiter,
		messageLimit:  opts.MessageLimitPerMinute,
		alertCooldown: time.Duration(opts.AlertCooldownSeconds) * time.Second,
		storeTimeout:  opts.StoreTimeout,
	}
}

// tenantID reads the tenant from the query string, defaulting to
// "default". Tenancy is a soft partition, not an auth boundary.
func tenantID(c echo.Context) string {
	if t := c.QueryParam("tenant_id"); t != "" {
		return t
	}
	return DefaultTenant
}

// storeCtx derives a bounded context for storage calls.
func (h *Handler) storeCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), h.storeTimeout)
}

// storageUnavailable is the per-call check every data endpoint performs
// before touching the store.
func (h *Handler) storageUnavailable(c echo.Context) bool {
	return h.store == nil
}

func storageUnavailableResponse(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "database not configured",
	})
}
