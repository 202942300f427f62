package domain

import (
	"errors"
	"fmt"
	"time"
)

// Request status names. The matching rows are seeded at startup; services
// resolve ids by name.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Server is a game world. Its Name equals the world name reported by the
// character lookup service.
type Server struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(64);not null;uniqueIndex" binding:"required,max=64"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Server) TableName() string { return "servers" }

// SetID implements the catalog entity contract.
func (s *Server) SetID(id uint) { s.ID = id }

// Difficulty classifies respawns.
type Difficulty struct {
	ID   uint   `json:"id"   gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(64);not null;uniqueIndex" binding:"required,max=64"`
}

func (Difficulty) TableName() string { return "difficulties" }

func (d *Difficulty) SetID(id uint) { d.ID = id }

// Respawn is a bookable hunting ground on a server. MinPlayers and MaxPlayers
// bound the party size accepted at request creation; MaxPlayers 0 means
// unbounded.
type Respawn struct {
	ID           uint      `json:"id"                      gorm:"primaryKey"`
	ServerID     uint      `json:"server_id"               gorm:"not null;index"                 binding:"required"`
	Name         string    `json:"name"                    gorm:"type:varchar(128);not null"     binding:"required,max=128"`
	DifficultyID *uint     `json:"difficulty_id,omitempty" gorm:"index"`
	MinPlayers   int       `json:"min_players"             gorm:"not null;default:1"             binding:"gte=0"`
	MaxPlayers   int       `json:"max_players"             gorm:"not null;default:0"             binding:"gte=0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Server     *Server     `json:"server,omitempty"     gorm:"foreignKey:ServerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" binding:"-"`
	Difficulty *Difficulty `json:"difficulty,omitempty" gorm:"foreignKey:DifficultyID;constraint:OnDelete:SET NULL"       binding:"-"`
}

func (Respawn) TableName() string { return "respawns" }

func (r *Respawn) SetID(id uint) { r.ID = id }

// Validate checks the party-size bounds.
func (r *Respawn) Validate() error {
	if r.MaxPlayers > 0 && r.MinPlayers > r.MaxPlayers {
		return fmt.Errorf("min_players (%d) exceeds max_players (%d)", r.MinPlayers, r.MaxPlayers)
	}
	return nil
}

// Slot is a daily time window, stored as "HH:MM" strings.
type Slot struct {
	ID        uint   `json:"id"         gorm:"primaryKey"`
	StartTime string `json:"start_time" gorm:"type:varchar(5);not null" binding:"required"`
	EndTime   string `json:"end_time"   gorm:"type:varchar(5);not null" binding:"required"`
}

func (Slot) TableName() string { return "slots" }

func (s *Slot) SetID(id uint) { s.ID = id }

// Validate checks both bounds parse as HH:MM.
func (s *Slot) Validate() error {
	for _, v := range []string{s.StartTime, s.EndTime} {
		if _, err := time.Parse("15:04", v); err != nil {
			return fmt.Errorf("slot time %q must be HH:MM", v)
		}
	}
	return nil
}

// Label renders the slot as "HH:MM - HH:MM".
func (s Slot) Label() string { return s.StartTime + " - " + s.EndTime }

// SchedulePeriod is a scheduling window (typically a week) requests target.
type SchedulePeriod struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(128);not null" binding:"required,max=128"`
	StartsAt  time.Time `json:"starts_at"  gorm:"not null"                   binding:"required"`
	EndsAt    time.Time `json:"ends_at"    gorm:"not null"                   binding:"required"`
	IsActive  bool      `json:"is_active"  gorm:"not null;default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SchedulePeriod) TableName() string { return "schedule_periods" }

func (p *SchedulePeriod) SetID(id uint) { p.ID = id }

// Validate checks that the period ends after it starts.
func (p *SchedulePeriod) Validate() error {
	if !p.EndsAt.After(p.StartsAt) {
		return errors.New("ends_at must be after starts_at")
	}
	return nil
}

// RequestStatus is a lookup row for request lifecycle states.
type RequestStatus struct {
	ID   uint   `json:"id"   gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(32);not null;uniqueIndex" binding:"required,max=32"`
}

func (RequestStatus) TableName() string { return "request_statuses" }

func (s *RequestStatus) SetID(id uint) { s.ID = id }
