package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"citypulse-service/internal/geo"
	"citypulse-service/internal/model"
	"citypulse-service/internal/store"
	"citypulse-service/pkg/logger"
	"citypulse-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// defaultNearbyRadiusM applies when the nearby query omits radius_m.
const defaultNearbyRadiusM = 1000

// AlertRequest defines the structure for alert creation requests
type AlertRequest struct {
	PersonaID string  `json:"persona_id"`
	Type      string  `json:"type"`
	Text      string  `json:"text"`
	RadiusM   int     `json:"radius_m"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// CreateAlert raises a geolocated alert for an existing persona
func (h *Handler) CreateAlert(c echo.Context) error {
	log := logger.FromContext(c)
	if h.storageUnavailable(c) {
		return storageUnavailableResponse(c)
	}
	tenant := tenantID(c)

	var req AlertRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	_, found, err := h.store.GetPersona(ctx, tenant, req.PersonaID)
	if err != nil {
		log.Error("Failed to look up persona", zap.String("persona_id", req.PersonaID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create alert",
		})
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Persona not found",
		})
	}

	if h.limiter != nil {
		cooldown := h.alertCooldown
		if settings, ok, err := h.store.GetSettings(ctx, tenant); err == nil && ok && settings.AlertCooldownSeconds > 0 {
			cooldown = time.Duration(settings.AlertCooldownSeconds) * time.Second
		}
		if !h.limiter.AllowWithin("alert:"+tenant+":"+req.PersonaID, 1, cooldown) {
			prometheus.RecordRateLimited("alerts")
			log.Warn("Alert cooldown active",
				zap.String("tenant_id", tenant),
				zap.String("persona_id", req.PersonaID),
				zap.Duration("cooldown", cooldown))
			return c.JSON(http.StatusTooManyRequests, echo.Map{
				"error": "Alert cooldown active",
			})
		}
	}

	now := time.Now().UTC()
	alert := model.Alert{
		ID:               store.NewID(),
		TenantID:         tenant,
		PersonaID:        req.PersonaID,
		Type:             req.Type,
		Text:             strings.TrimSpace(req.Text),
		RadiusM:          req.RadiusM,
		Lat:              req.Lat,
		Lng:              req.Lng,
		Status:           model.AlertStatusActive,
		ReactionsReal:    0,
		ReactionsSpam:    0,
		ReactionsHelping: 0,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := h.store.CreateAlert(ctx, &alert); err != nil {
		log.Error("Failed to create alert",
			zap.String("persona_id", req.PersonaID),
			zap.String("type", req.Type),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create alert",
		})
	}

	prometheus.RecordAlertOperation("create")
	log.Info("Alert created",
		zap.String("alert_id", alert.ID),
		zap.String("persona_id", req.PersonaID),
		zap.String("type", alert.Type),
		zap.Int("radius_m", alert.RadiusM))
	return c.JSON(http.StatusCreated, alert)
}

// NearbyAlerts scans the most recent alerts and keeps those within the
// requested radius of the query point. There is no spatial index; the
// scan is bounded at 200 recent alerts and results follow scan order,
// newest first.
func (h *Handler) NearbyAlerts(c echo.Context) error {
	log := logger.FromContext(c)
	if h.storageUnavailable(c) {
		return storageUnavailableResponse(c)
	}
	tenant := tenantID(c)

	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if latErr != nil || lngErr != nil {
		log.Warn("Nearby query with invalid coordinates",
			zap.String("lat", c.QueryParam("lat")),
			zap.String("lng", c.QueryParam("lng")))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "lat and lng are required",
		})
	}
	radiusM := defaultNearbyRadiusM
	if raw := c.QueryParam("radius_m"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			radiusM = v
		}
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	defer prometheus.TrackDBOperation("list_recent_alerts")(time.Now())
	alerts, err := h.store.ListRecentAlerts(ctx, tenant, listCap)
	if err != nil {
		log.Error("Failed to scan alerts",
			zap.String("tenant_id", tenant),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve alerts",
		})
	}

	nearby := make([]model.NearbyAlert, 0)
	for _, a := range alerts {
		dist := geo.DistanceM(lat, lng, a.Lat, a.Lng)
		if dist <= float64(radiusM) {
			nearby = append(nearby, model.NearbyAlert{
				Alert:     a,
				DistanceM: int(dist),
			})
		}
	}

	prometheus.RecordNearbyScan(len(nearby))
	log.Info("Nearby alerts scanned",
		zap.String("tenant_id", tenant),
		zap.Int("scanned", len(alerts)),
		zap.Int("matched", len(nearby)),
		zap.Int("radius_m", radiusM))
	return c.JSON(http.StatusOK, nearby)
}
