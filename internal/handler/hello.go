package handler

import (
	"net/http"
	"time"

	"citypulse-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Index returns the API banner.
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "CityPulse API running",
	})
}

// Health is a minimal liveness probe.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// TestDatabase reports backend status, database connectivity, and the
// known collections.
func (h *Handler) TestDatabase(c echo.Context) error {
	log := logger.FromContext(c)

	response := echo.Map{
		"backend":     "running",
		"database":    "not available",
		"collections": []string{},
	}
	if h.storageUnavailable(c) {
		return c.JSON(http.StatusOK, response)
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		log.Warn("Database ping failed", zap.Error(err))
		response["database"] = "error: " + truncate(err.Error(), 80)
		return c.JSON(http.StatusOK, response)
	}
	response["database"] = "connected"

	names, err := h.store.CollectionNames(ctx)
	if err != nil {
		log.Warn("Listing collections failed", zap.Error(err))
		response["database"] = "connected with error: " + truncate(err.Error(), 80)
		return c.JSON(http.StatusOK, response)
	}
	response["collections"] = names

	return c.JSON(http.StatusOK, response)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
