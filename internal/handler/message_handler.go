package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"citypulse-service/internal/model"
	"citypulse-service/internal/moderation"
	"citypulse-service/internal/store"
	"citypulse-service/pkg/logger"
	"citypulse-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// defaultMessageListLimit caps message listings when the client does not
// ask for a limit.
const defaultMessageListLimit = 50

// MessageRequest defines the structure for message creation requests
type MessageRequest struct {
	RoomID    string `json:"room_id"`
	PersonaID string `json:"persona_id"`
	Content   string `json:"content"`
}

// ListMessages returns a room's messages in creation order
func (h *Handler) ListMessages(c echo.Context) error {
	log := logger.FromContext(c)
	if h.storageUnavailable(c) {
		return storageUnavailableResponse(c)
	}
	tenant := tenantID(c)

	roomID := c.QueryParam("room_id")
	if !store.ValidID(roomID) {
		log.Warn("Message listing with malformed room id", zap.String("room_id", roomID))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid room id",
		})
	}

	limit := defaultMessageListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	defer prometheus.TrackDBOperation("list_messages")(time.Now())
	messages, err := h.store.ListMessages(ctx, tenant, roomID, limit)
	if err != nil {
		log.Error("Failed to list messages",
			zap.String("tenant_id", tenant),
			zap.String("room_id", roomID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve messages",
		})
	}
	if messages == nil {
		messages = []model.Message{}
	}

	log.Info("Messages retrieved successfully",
		zap.String("room_id", roomID),
		zap.Int("count", len(messages)))
	return c.JSON(http.StatusOK, messages)
}

// SendMessage posts a message to a room after checking that both the
// room and the persona exist
func (h *Handler) SendMessage(c echo.Context) error {
	log := logger.FromContext(c)
	if h.storageUnavailable(c) {
		return storageUnavailableResponse(c)
	}
	tenant := tenantID(c)

	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	_, found, err := h.store.GetRoom(ctx, tenant, req.RoomID)
	if err != nil {
		log.Error("Failed to look up room", zap.String("room_id", req.RoomID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to send message",
		})
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Room not found",
		})
	}

	_, found, err = h.store.GetPersona(ctx, tenant, req.PersonaID)
	if err != nil {
		log.Error("Failed to look up persona", zap.String("persona_id", req.PersonaID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to send message",
		})
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Persona not found",
		})
	}

	if h.limiter != nil {
		limit := h.messageLimit
		if settings, ok, err := h.store.GetSettings(ctx, tenant); err == nil && ok && settings.MessageLimitPerMin > 0 {
			limit = settings.MessageLimitPerMin
		}
		if !h.limiter.AllowWithin("msg:"+tenant+":"+req.PersonaID, limit, time.Minute) {
			prometheus.RecordRateLimited("messages")
			log.Warn("Message rate limit exceeded",
				zap.String("tenant_id", tenant),
				zap.String("persona_id", req.PersonaID),
				zap.Int("limit_per_min", limit))
			return c.JSON(http.StatusTooManyRequests, echo.Map{
				"error": "Message rate limit exceeded",
			})
		}
	}

	content := strings.TrimSpace(req.Content)
	flag := ""
	if moderation.Flagged(content) {
		flag = moderation.FlagKeyword
	}

	now := time.Now().UTC()
	message := model.Message{
		ID:             store.NewID(),
		TenantID:       tenant,
		RoomID:         req.RoomID,
		PersonaID:      req.PersonaID,
		Content:        content,
		Reactions:      []string{},
		Deleted:        false,
		ModerationFlag: flag,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := h.store.CreateMessage(ctx, &message); err != nil {
		log.Error("Failed to create message",
			zap.String("room_id", req.RoomID),
			zap.String("persona_id", req.PersonaID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to send message",
		})
	}

	prometheus.RecordMessageOperation("send")
	log.Info("Message sent",
		zap.String("message_id", message.ID),
		zap.String("room_id", req.RoomID),
		zap.String("persona_id", req.PersonaID),
		zap.Bool("flagged", flag != ""))
	return c.JSON(http.StatusCreated, message)
}
