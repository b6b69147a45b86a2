package handler

import (
	"github.com/labstack/echo/v4"
)

// Register wires every endpoint onto the Echo instance. Kept separate
// from main so tests can serve the same routes.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", Index)
	e.GET("/test", h.TestDatabase)
	e.GET("/health", Health)

	api := e.Group("/api")
	api.GET("/personas", h.ListPersonas)
	api.POST("/personas", h.CreatePersona)
	api.GET("/rooms", h.ListRooms)
	api.POST("/rooms", h.CreateRoom)
	api.POST("/rooms/:room_id/join", h.JoinRoom)
	api.POST("/rooms/:room_id/leave", h.LeaveRoom)
	api.GET("/messages", h.ListMessages)
	api.POST("/messages", h.SendMessage)
	api.POST("/alerts", h.CreateAlert)
	api.GET("/alerts/nearby", h.NearbyAlerts)
	api.POST("/translate", Translate)
	api.POST("/moderation", Moderate)
}
