package model

import (
	"time"
)

// Report is a persona's complaint about a message, persona, or alert.
type Report struct {
	ID                string    `json:"id" gorm:"type:varchar(36);primarykey"`
	TenantID          string    `json:"tenant_id" gorm:"type:varchar(64);index;not null;default:'default'"`
	TargetType        string    `json:"target_type" gorm:"type:varchar(16);not null"`
	TargetID          string    `json:"target_id" gorm:"type:varchar(36);not null"`
	ReporterPersonaID string    `json:"reporter_persona_id" gorm:"type:varchar(36);not null"`
	Reason            string    `json:"reason" gorm:"type:varchar(255);not null"`
	Comment           string    `json:"comment,omitempty" gorm:"type:text"`
	AIFlag            string    `json:"ai_flag,omitempty" gorm:"type:varchar(32)"`
	CreatedAt         time.Time `json:"created_at"`
}

// Block records that one persona blocked another.
type Block struct {
	ID               string    `json:"id" gorm:"type:varchar(36);primarykey"`
	TenantID         string    `json:"tenant_id" gorm:"type:varchar(64);index;not null;default:'default'"`
	BlockerPersonaID string    `json:"blocker_persona_id" gorm:"type:varchar(36);not null"`
	BlockedPersonaID string    `json:"blocked_persona_id" gorm:"type:varchar(36);not null"`
	CreatedAt        time.Time `json:"created_at"`
}

// Settings holds per-tenant tuning knobs. Message and alert limits are
// read by the rate limiter; the rest are kept for operators.
type Settings struct {
	ID                   string    `json:"id" gorm:"type:varchar(36);primarykey"`
	TenantID             string    `json:"tenant_id" gorm:"type:varchar(64);uniqueIndex;not null;default:'default'"`
	OpenAIKey            string    `json:"-" gorm:"type:varchar(255)"`
	PusherKey            string    `json:"-" gorm:"type:varchar(255)"`
	PusherCluster        string    `json:"pusher_cluster,omitempty" gorm:"type:varchar(64)"`
	MessageLimitPerMin   int       `json:"message_limit_per_min" gorm:"default:60"`
	AlertCooldownSeconds int       `json:"alert_cooldown_seconds" gorm:"default:120"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
