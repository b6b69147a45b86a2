package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citypulse-service/internal/model"
)

func TestMemoryStoreAddRoomMemberInsertOnlyIfAbsent(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	first := model.RoomMember{
		ID:        NewID(),
		TenantID:  "default",
		RoomID:    "room-1",
		PersonaID: "persona-1",
		JoinedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, ms.AddRoomMember(ctx, &first))

	// A second join must not overwrite the original joined_at.
	second := first
	second.ID = NewID()
	second.JoinedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ms.AddRoomMember(ctx, &second))

	assert.True(t, ms.HasRoomMember("default", "room-1", "persona-1"))
	got := ms.members[memberKey("default", "room-1", "persona-1")]
	assert.Equal(t, first.JoinedAt, got.JoinedAt)
}

func TestMemoryStoreBumpMemberCount(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	room := model.Room{ID: NewID(), TenantID: "default", Name: "Ikebukuro", Type: model.RoomTypeCity}
	require.NoError(t, ms.CreateRoom(ctx, &room))

	require.NoError(t, ms.BumpMemberCount(ctx, "default", room.ID, 1))
	require.NoError(t, ms.BumpMemberCount(ctx, "default", room.ID, 1))
	require.NoError(t, ms.BumpMemberCount(ctx, "default", room.ID, -1))

	got, found, err := ms.GetRoom(ctx, "default", room.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, got.MemberCount)

	// Unmatched decrements are applied as-is and may go negative.
	require.NoError(t, ms.BumpMemberCount(ctx, "default", room.ID, -1))
	require.NoError(t, ms.BumpMemberCount(ctx, "default", room.ID, -1))
	got, _, _ = ms.GetRoom(ctx, "default", room.ID)
	assert.Equal(t, -1, got.MemberCount)
}

func TestMemoryStoreListMessagesOrderAndLimit(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		msg := model.Message{
			ID:        NewID(),
			TenantID:  "default",
			RoomID:    "room-1",
			PersonaID: "persona-1",
			Content:   "m",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, ms.CreateMessage(ctx, &msg))
	}

	messages, err := ms.ListMessages(ctx, "default", "room-1", 3)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].CreatedAt.Before(messages[i-1].CreatedAt))
	}
}

func TestMemoryStoreListRecentAlertsNewestFirst(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		a := model.Alert{
			ID:        NewID(),
			TenantID:  "default",
			PersonaID: "persona-1",
			Type:      model.AlertTypeHelp,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, ms.CreateAlert(ctx, &a))
	}

	alerts, err := ms.ListRecentAlerts(ctx, "default", 200)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.True(t, alerts[0].CreatedAt.After(alerts[1].CreatedAt))
	assert.True(t, alerts[1].CreatedAt.After(alerts[2].CreatedAt))
}

func TestMemoryStoreTenantIsolation(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	p := model.Persona{ID: NewID(), TenantID: "tenant-a", Handle: "alice"}
	require.NoError(t, ms.CreatePersona(ctx, &p))

	taken, err := ms.HasPersonaHandle(ctx, "tenant-a", "alice")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = ms.HasPersonaHandle(ctx, "tenant-b", "alice")
	require.NoError(t, err)
	assert.False(t, taken)

	_, found, err := ms.GetPersona(ctx, "tenant-b", p.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreSettingsRoundTrip(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	_, found, err := ms.GetSettings(ctx, "default")
	require.NoError(t, err)
	assert.False(t, found)

	st := model.Settings{ID: NewID(), TenantID: "default", MessageLimitPerMin: 5, AlertCooldownSeconds: 30}
	require.NoError(t, ms.SaveSettings(ctx, &st))

	got, found, err := ms.GetSettings(ctx, "default")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 5, got.MessageLimitPerMin)
	assert.Equal(t, 30, got.AlertCooldownSeconds)
}
