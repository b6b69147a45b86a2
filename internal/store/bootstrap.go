package store

import (
	"context"
	"time"

	"citypulse-service/internal/model"
)

// EnsureGlobalRoom makes sure exactly one room with type "global" and
// name "Global" exists for the tenant, creating it when absent. Safe to
// run on every startup.
func EnsureGlobalRoom(ctx context.Context, s Store, tenantID string) (model.Room, error) {
	room, ok, err := s.FindGlobalRoom(ctx, tenantID)
	if err != nil {
		return model.Room{}, err
	}
	if ok {
		return room, nil
	}
	now := time.Now().UTC()
	room = model.Room{
		ID:          NewID(),
		TenantID:    tenantID,
		Name:        model.GlobalRoomName,
		Type:        model.RoomTypeGlobal,
		MemberCount: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.CreateRoom(ctx, &room); err != nil {
		return model.Room{}, err
	}
	return room, nil
}
