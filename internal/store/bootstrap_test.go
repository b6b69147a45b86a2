package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citypulse-service/internal/model"
)

func TestEnsureGlobalRoomIdempotent(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	first, err := EnsureGlobalRoom(ctx, ms, "default")
	require.NoError(t, err)
	assert.Equal(t, model.GlobalRoomName, first.Name)
	assert.Equal(t, model.RoomTypeGlobal, first.Type)
	assert.Equal(t, 0, first.MemberCount)

	second, err := EnsureGlobalRoom(ctx, ms, "default")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	rooms, err := ms.ListRooms(ctx, "default", 200)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}

func TestEnsureGlobalRoomPerTenant(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	a, err := EnsureGlobalRoom(ctx, ms, "tenant-a")
	require.NoError(t, err)
	b, err := EnsureGlobalRoom(ctx, ms, "tenant-b")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	roomsA, _ := ms.ListRooms(ctx, "tenant-a", 200)
	roomsB, _ := ms.ListRooms(ctx, "tenant-b", 200)
	assert.Len(t, roomsA, 1)
	assert.Len(t, roomsB, 1)
}
