package model

import (
	"time"
)

// Alert types.
const (
	AlertTypeHelp       = "Help"
	AlertTypeInfo       = "Info"
	AlertTypeWalkBackup = "Walk Backup"
	AlertTypeMedical    = "Medical"
	AlertTypeSafety     = "Safety"
)

// Alert statuses.
const (
	AlertStatusActive   = "Active"
	AlertStatusResolved = "Resolved"
)

// Alert is a geolocated safety/help notice with a radius of relevance.
// Coordinates are stored as floating point degrees.
type Alert struct {
	ID               string    `json:"id" gorm:"type:varchar(36);primarykey"`
	TenantID         string    `json:"tenant_id" gorm:"type:varchar(64);index;not null;default:'default'"`
	PersonaID        string    `json:"persona_id" gorm:"type:varchar(36);not null"`
	Type             string    `json:"type" gorm:"type:varchar(32);not null"`
	Text             string    `json:"text" gorm:"type:text;not null"`
	RadiusM          int       `json:"radius_m" gorm:"default:1000"`
	Lat              float64   `json:"lat" gorm:"not null"`
	Lng              float64   `json:"lng" gorm:"not null"`
	Status           string    `json:"status" gorm:"type:varchar(16);default:'Active'"`
	ReactionsReal    int       `json:"reactions_real" gorm:"default:0"`
	ReactionsSpam    int       `json:"reactions_spam" gorm:"default:0"`
	ReactionsHelping int       `json:"reactions_helping" gorm:"default:0"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NearbyAlert is an alert annotated with the great-circle distance from
// the query point, in whole meters.
type NearbyAlert struct {
	Alert
	DistanceM int `json:"distance_m"`
}
