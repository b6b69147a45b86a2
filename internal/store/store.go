package store

import (
	"context"

	"citypulse-service/internal/model"
)

// Store defines persistence operations for personas, rooms, messages,
// alerts, and tenant settings. Every method is scoped to a tenant; no
// cross-tenant query exists.
type Store interface {
	// health
	Ping(ctx context.Context) error
	CollectionNames(ctx context.Context) ([]string, error)

	// personas
	ListPersonas(ctx context.Context, tenantID string, limit int) ([]model.Persona, error)
	HasPersonaHandle(ctx context.Context, tenantID, handle string) (bool, error)
	CreatePersona(ctx context.Context, p *model.Persona) error
	GetPersona(ctx context.Context, tenantID, id string) (model.Persona, bool, error)

	// rooms
	ListRooms(ctx context.Context, tenantID string, limit int) ([]model.Room, error)
	CreateRoom(ctx context.Context, r *model.Room) error
	GetRoom(ctx context.Context, tenantID, id string) (model.Room, bool, error)
	FindGlobalRoom(ctx context.Context, tenantID string) (model.Room, bool, error)

	// memberships. AddRoomMember inserts only if absent and never
	// overwrites an existing joined_at. BumpMemberCount adjusts the
	// stored counter and refreshes updated_at in one write.
	AddRoomMember(ctx context.Context, m *model.RoomMember) error
	RemoveRoomMember(ctx context.Context, tenantID, roomID, personaID string) error
	BumpMemberCount(ctx context.Context, tenantID, roomID string, delta int) error

	// messages
	ListMessages(ctx context.Context, tenantID, roomID string, limit int) ([]model.Message, error)
	CreateMessage(ctx context.Context, msg *model.Message) error

	// alerts
	CreateAlert(ctx context.Context, a *model.Alert) error
	ListRecentAlerts(ctx context.Context, tenantID string, limit int) ([]model.Alert, error)

	// settings
	GetSettings(ctx context.Context, tenantID string) (model.Settings, bool, error)
	SaveSettings(ctx context.Context, s *model.Settings) error
}
