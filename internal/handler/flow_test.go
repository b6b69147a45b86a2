package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citypulse-service/internal/model"
)

// TestChatFlow walks the happy path end to end: persona, city room,
// join, message, listing.
func TestChatFlow(t *testing.T) {
	e, ms := newTestEnv(Options{})

	alice := createPersona(t, e, "/api/personas", "alice")
	room := createRoom(t, e, "/api/rooms", `{"name":"Ikebukuro","type":"city"}`)

	rec := doJSON(e, http.MethodPost, "/api/rooms/"+room.ID+"/join", `{"persona_id":"`+alice.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got, _, err := ms.GetRoom(context.Background(), "default", room.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MemberCount)

	rec = doJSON(e, http.MethodPost, "/api/messages",
		`{"room_id":"`+room.ID+`","persona_id":"`+alice.ID+`","content":"  hi  "}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/messages?room_id="+room.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var messages []model.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Content)
	assert.Equal(t, alice.ID, messages[0].PersonaID)
	assert.Equal(t, room.ID, messages[0].RoomID)
}
