package store

import (
	"context"
	"sync"

	"citypulse-service/internal/model"
)

// MemoryStore keeps everything in-process. It backs tests and local
// runs without a database.
type MemoryStore struct {
	mu         sync.RWMutex
	personas   map[string]model.Persona
	personaIDs []string
	rooms      map[string]model.Room
	roomIDs    []string
	members    map[string]model.RoomMember // key: tenant|room|persona
	messages   []model.Message
	alerts     []model.Alert
	settings   map[string]model.Settings // key: tenant
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		personas: make(map[string]model.Persona),
		rooms:    make(map[string]model.Room),
		members:  make(map[string]model.RoomMember),
		settings: make(map[string]model.Settings),
	}
}

func memberKey(tenantID, roomID, personaID string) string {
	return tenantID + "|" + roomID + "|" + personaID
}

// Ping always succeeds.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// CollectionNames returns the logical collection set.
func (m *MemoryStore) CollectionNames(ctx context.Context) ([]string, error) {
	return []string{
		"users", "personas", "rooms", "room_members", "messages",
		"alerts", "reactions", "reports", "blocks", "settings",
	}, nil
}

// ListPersonas returns tenant personas in insertion order.
func (m *MemoryStore) ListPersonas(ctx context.Context, tenantID string, limit int) ([]model.Persona, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]model.Persona, 0)
	for _, id := range m.personaIDs {
		p, ok := m.personas[id]
		if !ok || p.TenantID != tenantID {
			continue
		}
		res = append(res, p)
		if len(res) >= limit {
			break
		}
	}
	return res, nil
}

// HasPersonaHandle checks handle uniqueness within the tenant.
func (m *MemoryStore) HasPersonaHandle(ctx context.Context, tenantID, handle string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.personas {
		if p.TenantID == tenantID && p.Handle == handle {
			return true, nil
		}
	}
	return false, nil
}

// CreatePersona stores a persona.
func (m *MemoryStore) CreatePersona(ctx context.Context, p *model.Persona) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.personas[p.ID] = *p
	m.personaIDs = append(m.personaIDs, p.ID)
	return nil
}

// GetPersona returns a persona by id within the tenant.
func (m *MemoryStore) GetPersona(ctx context.Context, tenantID, id string) (model.Persona, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.personas[id]
	if !ok || p.TenantID != tenantID {
		return model.Persona{}, false, nil
	}
	return p, true, nil
}

// ListRooms returns tenant rooms in insertion order.
func (m *MemoryStore) ListRooms(ctx context.Context, tenantID string, limit int) ([]model.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]model.Room, 0)
	for _, id := range m.roomIDs {
		r, ok := m.rooms[id]
		if !ok || r.TenantID != tenantID {
			continue
		}
		res = append(res, r)
		if len(res) >= limit {
			break
		}
	}
	return res, nil
}

// CreateRoom stores a room.
func (m *MemoryStore) CreateRoom(ctx context.Context, r *model.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.ID] = *r
	m.roomIDs = append(m.roomIDs, r.ID)
	return nil
}

// GetRoom returns a room by id within the tenant.
func (m *MemoryStore) GetRoom(ctx context.Context, tenantID, id string) (model.Room, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	if !ok || r.TenantID != tenantID {
		return model.Room{}, false, nil
	}
	return r, true, nil
}

// FindGlobalRoom looks up the tenant's global room.
func (m *MemoryStore) FindGlobalRoom(ctx context.Context, tenantID string) (model.Room, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.roomIDs {
		r := m.rooms[id]
		if r.TenantID == tenantID && r.Type == model.RoomTypeGlobal && r.Name == model.GlobalRoomName {
			return r, true, nil
		}
	}
	return model.Room{}, false, nil
}

// AddRoomMember inserts the membership only when absent.
func (m *MemoryStore) AddRoomMember(ctx context.Context, member *model.RoomMember) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := memberKey(member.TenantID, member.RoomID, member.PersonaID)
	if _, exists := m.members[key]; exists {
		return nil
	}
	m.members[key] = *member
	return nil
}

// RemoveRoomMember deletes the membership if present.
func (m *MemoryStore) RemoveRoomMember(ctx context.Context, tenantID, roomID, personaID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.members, memberKey(tenantID, roomID, personaID))
	return nil
}

// HasRoomMember reports membership existence. Test helper.
func (m *MemoryStore) HasRoomMember(tenantID, roomID, personaID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.members[memberKey(tenantID, roomID, personaID)]
	return ok
}

// BumpMemberCount adjusts the room's stored counter.
func (m *MemoryStore) BumpMemberCount(ctx context.Context, tenantID, roomID string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[roomID]
	if !ok || r.TenantID != tenantID {
		return nil
	}
	r.MemberCount += delta
	m.rooms[roomID] = r
	return nil
}

// ListMessages returns room messages oldest first, capped at limit.
func (m *MemoryStore) ListMessages(ctx context.Context, tenantID, roomID string, limit int) ([]model.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]model.Message, 0)
	for _, msg := range m.messages {
		if msg.TenantID != tenantID || msg.RoomID != roomID {
			continue
		}
		res = append(res, msg)
		if len(res) >= limit {
			break
		}
	}
	return res, nil
}

// CreateMessage appends a message. Messages arrive in creation order, so
// the slice already satisfies the created_at ascending contract.
func (m *MemoryStore) CreateMessage(ctx context.Context, msg *model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, *msg)
	return nil
}

// CreateAlert appends an alert.
func (m *MemoryStore) CreateAlert(ctx context.Context, a *model.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = append(m.alerts, *a)
	return nil
}

// ListRecentAlerts returns the newest alerts first, capped at limit.
func (m *MemoryStore) ListRecentAlerts(ctx context.Context, tenantID string, limit int) ([]model.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]model.Alert, 0)
	for i := len(m.alerts) - 1; i >= 0; i-- {
		if m.alerts[i].TenantID != tenantID {
			continue
		}
		res = append(res, m.alerts[i])
		if len(res) >= limit {
			break
		}
	}
	return res, nil
}

// GetSettings returns the tenant settings document if present.
func (m *MemoryStore) GetSettings(ctx context.Context, tenantID string) (model.Settings, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.settings[tenantID]
	return st, ok, nil
}

// SaveSettings upserts the tenant settings document.
func (m *MemoryStore) SaveSettings(ctx context.Context, st *model.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[st.TenantID] = *st
	return nil
}
