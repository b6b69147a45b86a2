package store

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"citypulse-service/internal/model"
)

// GormStore implements Store on GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an already-initialized GORM handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Ping verifies the underlying connection.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CollectionNames lists the migrated tables.
func (s *GormStore) CollectionNames(ctx context.Context) ([]string, error) {
	return s.db.WithContext(ctx).Migrator().GetTables()
}

// ListPersonas returns up to limit personas for the tenant.
func (s *GormStore) ListPersonas(ctx context.Context, tenantID string, limit int) ([]model.Persona, error) {
	var personas []model.Persona
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Limit(limit).
		Find(&personas).Error
	return personas, err
}

// HasPersonaHandle checks handle uniqueness within the tenant.
func (s *GormStore) HasPersonaHandle(ctx context.Context, tenantID, handle string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Persona{}).
		Where("tenant_id = ? AND handle = ?", tenantID, handle).
		Count(&count).Error
	return count > 0, err
}

// CreatePersona inserts a persona.
func (s *GormStore) CreatePersona(ctx context.Context, p *model.Persona) error {
	return s.db.WithContext(ctx).Create(p).Error
}

// GetPersona returns a persona by id within the tenant.
func (s *GormStore) GetPersona(ctx context.Context, tenantID, id string) (model.Persona, bool, error) {
	var p model.Persona
	err := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&p).Error
	if err == gorm.ErrRecordNotFound {
		return model.Persona{}, false, nil
	}
	if err != nil {
		return model.Persona{}, false, err
	}
	return p, true, nil
}

// ListRooms returns up to limit rooms for the tenant.
func (s *GormStore) ListRooms(ctx context.Context, tenantID string, limit int) ([]model.Room, error) {
	var rooms []model.Room
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Limit(limit).
		Find(&rooms).Error
	return rooms, err
}

// CreateRoom inserts a room.
func (s *GormStore) CreateRoom(ctx context.Context, r *model.Room) error {
	return s.db.WithContext(ctx).Create(r).Error
}

// GetRoom returns a room by id within the tenant.
func (s *GormStore) GetRoom(ctx context.Context, tenantID, id string) (model.Room, bool, error) {
	var r model.Room
	err := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&r).Error
	if err == gorm.ErrRecordNotFound {
		return model.Room{}, false, nil
	}
	if err != nil {
		return model.Room{}, false, err
	}
	return r, true, nil
}

// FindGlobalRoom looks up the tenant's global room.
func (s *GormStore) FindGlobalRoom(ctx context.Context, tenantID string) (model.Room, bool, error) {
	var r model.Room
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND type = ? AND name = ?", tenantID, model.RoomTypeGlobal, model.GlobalRoomName).
		First(&r).Error
	if err == gorm.ErrRecordNotFound {
		return model.Room{}, false, nil
	}
	if err != nil {
		return model.Room{}, false, err
	}
	return r, true, nil
}

// AddRoomMember inserts the membership only when absent, keeping the
// original joined_at on conflict.
func (s *GormStore) AddRoomMember(ctx context.Context, m *model.RoomMember) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "tenant_id"}, {Name: "room_id"}, {Name: "persona_id"},
		},
		DoNothing: true,
	}).Create(m).Error
}

// RemoveRoomMember deletes the membership if present; absence is not an
// error.
func (s *GormStore) RemoveRoomMember(ctx context.Context, tenantID, roomID, personaID string) error {
	return s.db.WithContext(ctx).
		Where("tenant_id = ? AND room_id = ? AND persona_id = ?", tenantID, roomID, personaID).
		Delete(&model.RoomMember{}).Error
}

// BumpMemberCount adjusts member_count by delta and refreshes
// updated_at in a single write. Matching zero rows is not an error.
func (s *GormStore) BumpMemberCount(ctx context.Context, tenantID, roomID string, delta int) error {
	return s.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ? AND tenant_id = ?", roomID, tenantID).
		Updates(map[string]any{
			"member_count": gorm.Expr("member_count + ?", delta),
			"updated_at":   time.Now().UTC(),
		}).Error
}

// ListMessages returns room messages oldest first, capped at limit.
func (s *GormStore) ListMessages(ctx context.Context, tenantID, roomID string, limit int) ([]model.Message, error) {
	var messages []model.Message
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND room_id = ?", tenantID, roomID).
		Order("created_at asc").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// CreateMessage inserts a message.
func (s *GormStore) CreateMessage(ctx context.Context, msg *model.Message) error {
	return s.db.WithContext(ctx).Create(msg).Error
}

// CreateAlert inserts an alert.
func (s *GormStore) CreateAlert(ctx context.Context, a *model.Alert) error {
	return s.db.WithContext(ctx).Create(a).Error
}

// ListRecentAlerts returns the newest alerts first, capped at limit.
func (s *GormStore) ListRecentAlerts(ctx context.Context, tenantID string, limit int) ([]model.Alert, error) {
	var alerts []model.Alert
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at desc").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}

// GetSettings returns the tenant settings document if present.
func (s *GormStore) GetSettings(ctx context.Context, tenantID string) (model.Settings, bool, error) {
	var st model.Settings
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&st).Error
	if err == gorm.ErrRecordNotFound {
		return model.Settings{}, false, nil
	}
	if err != nil {
		return model.Settings{}, false, err
	}
	return st, true, nil
}

// SaveSettings upserts the tenant settings document.
func (s *GormStore) SaveSettings(ctx context.Context, st *model.Settings) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"message_limit_per_min", "alert_cooldown_seconds", "updated_at",
		}),
	}).Create(st).Error
}
