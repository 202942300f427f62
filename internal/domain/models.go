// Package domain defines the persistence models for guild members, their
// characters, hunting requests and point ledgers. These types are mapped with
// GORM and form the core data layer of the scheduling application.
package domain

import (
	"time"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a guild member account. Contact fields feed outbound notifications.
//
// Fields:
//   - ID: auto-increment primary key.
//   - Username: unique login name.
//   - Email / WhatsApp: optional contact channels for notifications.
//   - PasswordHash: bcrypt hash, never serialized.
//   - Role: "user" or "admin" (enforced by DB constraint).
//   - Points: running balance maintained by PointTransaction.
//   - Language: preferred notification language tag (e.g. "pt-BR").
type User struct {
	ID           uint      `json:"id"                 gorm:"primaryKey"`
	Username     string    `json:"username"           gorm:"type:varchar(64);not null;uniqueIndex"`
	Email        string    `json:"email,omitempty"    gorm:"type:varchar(255)"`
	WhatsApp     string    `json:"whatsapp,omitempty" gorm:"column:whatsapp;type:varchar(32)"`
	PasswordHash string    `json:"-"                  gorm:"type:varchar(255);not null"`
	Role         string    `json:"role"               gorm:"type:varchar(16);not null;default:'user';check:role IN ('user','admin')"`
	Points       int       `json:"points"             gorm:"not null;default:0"`
	Language     string    `json:"language,omitempty" gorm:"type:varchar(16)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Character is an in-game character on a server (game world).
//
// Characters may be unowned (UserID nil) when they were materialized while
// validating a request party member who has no local account; such rows are
// flagged IsExternal and carry the time of the external verification.
//
// At most one character per user has IsMain set. This is maintained by the
// service layer, not by a constraint.
type Character struct {
	ID                 uint       `json:"id"                             gorm:"primaryKey"`
	UserID             *uint      `json:"user_id,omitempty"              gorm:"index"`
	ServerID           uint       `json:"server_id"                      gorm:"not null;uniqueIndex:ux_character_server_name,priority:1"`
	Name               string     `json:"name"                           gorm:"type:varchar(64);not null;uniqueIndex:ux_character_server_name,priority:2"`
	Vocation           string     `json:"vocation,omitempty"             gorm:"type:varchar(64)"`
	Level              int        `json:"level"                          gorm:"not null;default:0"`
	IsMain             bool       `json:"is_main"                        gorm:"not null;default:false"`
	IsExternal         bool       `json:"is_external"                    gorm:"not null;default:false"`
	ExternalVerifiedAt *time.Time `json:"external_verified_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	User   *User   `json:"-"                gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Server *Server `json:"server,omitempty" gorm:"foreignKey:ServerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Character.
func (Character) TableName() string { return "characters" }
