package domain

import "time"

// Request is a single booking attempt for one (server, respawn, slot, period)
// combination. Status moves pending → approved | rejected | cancelled.
//
// Fields:
//   - UserID: owner who submitted the request.
//   - ServerID / RespawnID / SlotID / PeriodID: the bookable tuple; approving
//     one request rejects the other pending requests on the same tuple.
//   - StatusID: foreign key to request_statuses.
//   - LeaderCharacterID: optional party leader.
//   - RejectionReason: free text set by admins or by the conflict sweep.
//   - Party: 1..N members, cascade-deleted with the request.
type Request struct {
	ID                uint      `json:"id"                            gorm:"primaryKey"`
	UserID            uint      `json:"user_id"                       gorm:"not null;index"`
	ServerID          uint      `json:"server_id"                     gorm:"not null;index:idx_request_tuple,priority:1"`
	RespawnID         uint      `json:"respawn_id"                    gorm:"not null;index:idx_request_tuple,priority:2"`
	SlotID            uint      `json:"slot_id"                       gorm:"not null;index:idx_request_tuple,priority:3"`
	PeriodID          uint      `json:"period_id"                     gorm:"not null;index:idx_request_tuple,priority:4"`
	StatusID          uint      `json:"status_id"                     gorm:"not null;index:idx_request_tuple,priority:5"`
	LeaderCharacterID *uint     `json:"leader_character_id,omitempty"`
	RejectionReason   *string   `json:"rejection_reason,omitempty"    gorm:"type:text"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	User    *User           `json:"user,omitempty"    gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Server  *Server         `json:"server,omitempty"  gorm:"foreignKey:ServerID"`
	Respawn *Respawn        `json:"respawn,omitempty" gorm:"foreignKey:RespawnID"`
	Slot    *Slot           `json:"slot,omitempty"    gorm:"foreignKey:SlotID"`
	Period  *SchedulePeriod `json:"period,omitempty"  gorm:"foreignKey:PeriodID"`
	Status  *RequestStatus  `json:"status,omitempty"  gorm:"foreignKey:StatusID"`
	Leader  *Character      `json:"leader,omitempty"  gorm:"foreignKey:LeaderCharacterID;constraint:OnDelete:SET NULL"`

	Party []RequestPartyMember `json:"party" gorm:"foreignKey:RequestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Request.
func (Request) TableName() string { return "requests" }

// RequestPartyMember links a character to a request. A character appears at
// most once per request (unique index on request_id, character_id).
type RequestPartyMember struct {
	ID            uint    `json:"id"                       gorm:"primaryKey"`
	RequestID     uint    `json:"request_id"               gorm:"not null;uniqueIndex:ux_party_request_character,priority:1"`
	CharacterID   *uint   `json:"character_id,omitempty"   gorm:"uniqueIndex:ux_party_request_character,priority:2"`
	CharacterName *string `json:"character_name,omitempty" gorm:"type:varchar(64)"`
	RoleInParty   *string `json:"role_in_party,omitempty"  gorm:"type:varchar(32)"`
	IsLeader      bool    `json:"is_leader"                gorm:"not null;default:false"`

	Character *Character `json:"character,omitempty" gorm:"foreignKey:CharacterID;constraint:OnDelete:SET NULL"`
}

// TableName returns the database table name for RequestPartyMember.
func (RequestPartyMember) TableName() string { return "request_party_members" }
