package model

import (
	"time"
)

// Room types. Exactly one global room named "Global" exists per tenant.
const (
	RoomTypeGlobal  = "global"
	RoomTypeCity    = "city"
	RoomTypeTopic   = "topic"
	RoomTypePrivate = "private"
)

// GlobalRoomName is the reserved name of the per-tenant global room.
const GlobalRoomName = "Global"

// Room is a chat channel scoped to a tenant.
type Room struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primarykey"`
	TenantID    string    `json:"tenant_id" gorm:"type:varchar(64);index;not null;default:'default'"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Type        string    `json:"type" gorm:"type:varchar(16);not null;default:'topic'"`
	City        string    `json:"city,omitempty" gorm:"type:varchar(128)"`
	Topic       string    `json:"topic,omitempty" gorm:"type:varchar(128)"`
	InviteCode  string    `json:"invite_code,omitempty" gorm:"type:varchar(64)"`
	MemberCount int       `json:"member_count" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoomMember records a persona's membership in a room. The
// (tenant_id, room_id, persona_id) triple is unique; joining twice keeps
// the original joined_at.
type RoomMember struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primarykey"`
	TenantID  string    `json:"tenant_id" gorm:"type:varchar(64);not null;default:'default';uniqueIndex:idx_room_members_membership"`
	RoomID    string    `json:"room_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_room_members_membership"`
	PersonaID string    `json:"persona_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_room_members_membership"`
	JoinedAt  time.Time `json:"joined_at"`
}
