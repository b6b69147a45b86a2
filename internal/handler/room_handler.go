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

// RoomRequest defines the structure for room creation requests
type RoomRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	City  string `json:"city"`
	Topic string `json:"topic"`
}

// MembershipRequest carries the persona joining or leaving a room
type MembershipRequest struct {
	PersonaID string `json:"persona_id"`
}

// ListRooms handles retrieving the tenant's rooms
func (h *Handler) ListRooms(c echo.Context) error {
	log := logger.FromContext(c)
	if h.storageUnavailable(c) {
		return storageUnavailableResponse(c)
	}
	tenant := tenantID(c)

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	defer prometheus.TrackDBOperation("list_rooms")(time.Now())
	rooms, err := h.store.ListRooms(ctx, tenant, listCap)
	if err != nil {
		log.Error("Failed to list rooms",
			zap.String("tenant_id", tenant),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve rooms",
		})
	}
	if rooms == nil {
		rooms = []model.Room{}
	}

	log.Info("Rooms retrieved successfully",
		zap.String("tenant_id", tenant),
		zap.Int("count", len(rooms)))
	return c.JSON(http.StatusOK, rooms)
}

// CreateRoom handles creating a new room
func (h *Handler) CreateRoom(c echo.Context) error {
	log := logger.FromContext(c)
	if h.storageUnavailable(c) {
		return storageUnavailableResponse(c)
	}
	tenant := tenantID(c)

	var req RoomRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if strings.TrimSpace(req.Name) == "" {
		log.Warn("Room creation without name", zap.String("tenant_id", tenant))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name is required",
		})
	}
	if req.Type == "" {
		req.Type = model.RoomTypeTopic
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	now := time.Now().UTC()
	room := model.Room{
		ID:          store.NewID(),
		TenantID:    tenant,
		Name:        req.Name,
		Type:        req.Type,
		City:        req.City,
		Topic:       req.Topic,
		MemberCount: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.store.CreateRoom(ctx, &room); err != nil {
		log.Error("Failed to create room",
			zap.String("tenant_id", tenant),
			zap.String("name", req.Name),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create room",
		})
	}

	prometheus.RecordRoomOperation("create")
	log.Info("Room created successfully",
		zap.String("room_id", room.ID),
		zap.String("tenant_id", tenant),
		zap.String("name", room.Name),
		zap.String("type", room.Type))
	return c.JSON(http.StatusCreated, room)
}

// JoinRoom adds a persona to a room. The membership insert is
// idempotent; the member_count increment is not and runs on every call,
// matching the historical bookkeeping.
func (h *Handler) JoinRoom(c echo.Context) error {
	log := logger.FromContext(c)
	if h.storageUnavailable(c) {
		return storageUnavailableResponse(c)
	}
	tenant := tenantID(c)
	roomID := c.Param("room_id")

	var req MembershipRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if !store.ValidID(roomID) || !store.ValidID(req.PersonaID) {
		log.Warn("Join with malformed ids",
			zap.String("room_id", roomID),
			zap.String("persona_id", req.PersonaID))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid ids",
		})
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	_, found, err := h.store.GetRoom(ctx, tenant, roomID)
	if err != nil {
		log.Error("Failed to look up room", zap.String("room_id", roomID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to join room",
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
			"error": "Failed to join room",
		})
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Persona not found",
		})
	}

	member := model.RoomMember{
		ID:        store.NewID(),
		TenantID:  tenant,
		RoomID:    roomID,
		PersonaID: req.PersonaID,
		JoinedAt:  time.Now().UTC(),
	}
	if err := h.store.AddRoomMember(ctx, &member); err != nil {
		log.Error("Failed to add room member",
			zap.String("room_id", roomID),
			zap.String("persona_id", req.PersonaID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to join room",
		})
	}
	if err := h.store.BumpMemberCount(ctx, tenant, roomID, 1); err != nil {
		log.Error("Failed to increment member count",
			zap.String("room_id", roomID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to join room",
		})
	}

	prometheus.RecordRoomOperation("join")
	log.Info("Persona joined room",
		zap.String("room_id", roomID),
		zap.String("persona_id", req.PersonaID),
		zap.String("tenant_id", tenant))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// LeaveRoom removes a persona from a room. The membership delete and
// the member_count decrement are both unconditional, so the counter can
// drift below zero on unmatched leaves; that historical behavior is
// kept.
func (h *Handler) LeaveRoom(c echo.Context) error {
	log := logger.FromContext(c)
	if h.storageUnavailable(c) {
		return storageUnavailableResponse(c)
	}
	tenant := tenantID(c)
	roomID := c.Param("room_id")

	var req MembershipRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	if err := h.store.RemoveRoomMember(ctx, tenant, roomID, req.PersonaID); err != nil {
		log.Error("Failed to remove room member",
			zap.String("room_id", roomID),
			zap.String("persona_id", req.PersonaID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to leave room",
		})
	}
	if err := h.store.BumpMemberCount(ctx, tenant, roomID, -1); err != nil {
		log.Error("Failed to decrement member count",
			zap.String("room_id", roomID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to leave room",
		})
	}

	prometheus.RecordRoomOperation("leave")
	log.Info("Persona left room",
		zap.String("room_id", roomID),
		zap.String("persona_id", req.PersonaID),
		zap.String("tenant_id", tenant))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
