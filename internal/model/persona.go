package model

import (
	"time"
)

// User represents a login account. Authentication itself lives outside
// this service; the record is kept so personas can reference an owner.
type User struct {
	ID           string    `json:"id" gorm:"type:varchar(36);primarykey"`
	TenantID     string    `json:"tenant_id" gorm:"type:varchar(64);index;not null;default:'default'"`
	Email        string    `json:"email" gorm:"type:varchar(255);not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"`
	IsBanned     bool      `json:"is_banned" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Persona is a user-facing identity in a tenant. The handle is unique
// within the tenant, not globally.
type Persona struct {
	ID           string    `json:"id" gorm:"type:varchar(36);primarykey"`
	TenantID     string    `json:"tenant_id" gorm:"type:varchar(64);not null;default:'default';uniqueIndex:idx_personas_tenant_handle"`
	UserID       string    `json:"user_id,omitempty" gorm:"type:varchar(36)"`
	Handle       string    `json:"handle" gorm:"type:varchar(100);not null;uniqueIndex:idx_personas_tenant_handle"`
	Color        string    `json:"color" gorm:"type:varchar(16)"`
	Bio          string    `json:"bio" gorm:"type:text"`
	AvatarLetter string    `json:"avatar_letter" gorm:"type:varchar(8)"`
	TrustLevel   int       `json:"trust_level" gorm:"default:1"`
	ScoreThanks  int       `json:"score_thanks" gorm:"default:0"`
	ScoreHelpful int       `json:"score_helpful" gorm:"default:0"`
	IsBanned     bool      `json:"is_banned" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultPersonaColor is applied when a create request omits the color.
const DefaultPersonaColor = "#7c3aed"
