package handler

import (
	"net/http"
	"strings"
	"time"

	"citypulse-service/internal/model"
	"citypulse-service/internal/store"
	"citypulse-service/pkg/logger"
	"citypulse-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PersonaRequest defines the structure for persona creation requests
type PersonaRequest struct {
	Handle       string `json:"handle"`
	Color        string `json:"color"`
	Bio          string `json:"bio"`
	AvatarLetter string `json:"avatar_letter"`
}

// ListPersonas handles retrieving the tenant's personas
func (h *Handler) ListPersonas(c echo.Context) error {
	log := logger.FromContext(c)
	if h.storageUnavailable(c) {
		return storageUnavailableResponse(c)
	}
	tenant := tenantID(c)

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	defer prometheus.TrackDBOperation("list_personas")(time.Now())
	personas, err := h.store.ListPersonas(ctx, tenant, listCap)
	if err != nil {
		log.Error("Failed to list personas",
			zap.String("tenant_id", tenant),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve personas",
		})
	}
	if personas == nil {
		personas = []model.Persona{}
	}

	log.Info("Personas retrieved successfully",
		zap.String("tenant_id", tenant),
		zap.Int("count", len(personas)))
	return c.JSON(http.StatusOK, personas)
}

// CreatePersona handles creating a new persona with a tenant-unique handle
func (h *Handler) CreatePersona(c echo.Context) error {
	log := logger.FromContext(c)
	if h.storageUnavailable(c) {
		return storageUnavailableResponse(c)
	}
	tenant := tenantID(c)

	var req PersonaRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if strings.TrimSpace(req.Handle) == "" {
		log.Warn("Persona creation without handle", zap.String("tenant_id", tenant))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "handle is required",
		})
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	taken, err := h.store.HasPersonaHandle(ctx, tenant, req.Handle)
	if err != nil {
		log.Error("Failed to check handle uniqueness",
			zap.String("tenant_id", tenant),
			zap.String("handle", req.Handle),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create persona",
		})
	}
	if taken {
		log.Warn("Handle already taken",
			zap.String("tenant_id", tenant),
			zap.String("handle", req.Handle))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Handle already taken",
		})
	}

	now := time.Now().UTC()
	persona := model.Persona{
		ID:           store.NewID(),
		TenantID:     tenant,
		Handle:       req.Handle,
		Color:        req.Color,
		Bio:          req.Bio,
		AvatarLetter: req.AvatarLetter,
		TrustLevel:   1,
		ScoreThanks:  0,
		ScoreHelpful: 0,
		IsBanned:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if persona.Color == "" {
		persona.Color = model.DefaultPersonaColor
	}
	if persona.AvatarLetter == "" {
		persona.AvatarLetter = avatarLetter(req.Handle)
	}

	if err := h.store.CreatePersona(ctx, &persona); err != nil {
		log.Error("Failed to create persona",
			zap.String("tenant_id", tenant),
			zap.String("handle", req.Handle),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create persona",
		})
	}

	prometheus.RecordPersonaOperation("create")
	log.Info("Persona created successfully",
		zap.String("persona_id", persona.ID),
		zap.String("tenant_id", tenant),
		zap.String("handle", persona.Handle))
	return c.JSON(http.StatusCreated, persona)
}

// avatarLetter derives the default avatar letter: the handle's first
// character, uppercased.
func avatarLetter(handle string) string {
	runes := []rune(handle)
	if len(runes) == 0 {
		return "?"
	}
	return strings.ToUpper(string(runes[0]))
}
