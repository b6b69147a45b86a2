package model

import (
	"time"
)

// Message is a chat message in a room. Room and persona are weak
// references by id; existence is checked at creation time only.
type Message struct {
	ID             string    `json:"id" gorm:"type:varchar(36);primarykey"`
	TenantID       string    `json:"tenant_id" gorm:"type:varchar(64);index;not null;default:'default'"`
	RoomID         string    `json:"room_id" gorm:"type:varchar(36);index;not null"`
	PersonaID      string    `json:"persona_id" gorm:"type:varchar(36);not null"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	Reactions      []string  `json:"reactions" gorm:"serializer:json;type:text"`
	Deleted        bool      `json:"deleted" gorm:"default:false"`
	ModerationFlag string    `json:"moderation_flag,omitempty" gorm:"type:varchar(32)"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Reaction is a single persona reaction to a message or an alert.
type Reaction struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primarykey"`
	TenantID  string    `json:"tenant_id" gorm:"type:varchar(64);index;not null;default:'default'"`
	MessageID string    `json:"message_id,omitempty" gorm:"type:varchar(36);index"`
	AlertID   string    `json:"alert_id,omitempty" gorm:"type:varchar(36);index"`
	PersonaID string    `json:"persona_id" gorm:"type:varchar(36);not null"`
	Type      string    `json:"type" gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `json:"created_at"`
}
