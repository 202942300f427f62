package domain

import "time"

// Point claim review states.
const (
	ClaimPending  = "pending"
	ClaimApproved = "approved"
	ClaimRejected = "rejected"
)

// PointClaim is a member's request to be awarded points, reviewed by an admin.
// Approval produces exactly one PointTransaction.
type PointClaim struct {
	ID         uint       `json:"id"                    gorm:"primaryKey"`
	UserID     uint       `json:"user_id"               gorm:"not null;index"`
	RequestID  *uint      `json:"request_id,omitempty"  gorm:"index"`
	Amount     int        `json:"amount"                gorm:"not null;check:amount > 0"`
	Reason     string     `json:"reason"                gorm:"type:text;not null"`
	Status     string     `json:"status"                gorm:"type:varchar(16);not null;default:'pending';index;check:status IN ('pending','approved','rejected')"`
	ReviewedBy *uint      `json:"reviewed_by,omitempty"`
	ReviewNote string     `json:"review_note,omitempty" gorm:"type:text"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Request *Request `json:"-"              gorm:"foreignKey:RequestID;constraint:OnDelete:SET NULL"`
}

// TableName returns the database table name for PointClaim.
func (PointClaim) TableName() string { return "point_claims" }

// PointTransaction is an append-only ledger entry. Amount was applied to the
// user's balance when the row was written and BalanceAfter snapshots the
// result; there is no reversal.
type PointTransaction struct {
	ID           uint      `json:"id"                       gorm:"primaryKey"`
	UserID       uint      `json:"user_id"                  gorm:"not null;index"`
	Amount       int       `json:"amount"                   gorm:"not null"`
	Reason       string    `json:"reason"                   gorm:"type:text;not null"`
	BalanceAfter int       `json:"balance_after"            gorm:"not null"`
	CreatedBy    *uint     `json:"created_by,omitempty"`
	PointClaimID *uint     `json:"point_claim_id,omitempty" gorm:"uniqueIndex"`
	CreatedAt    time.Time `json:"created_at"`

	User  *User       `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Claim *PointClaim `json:"-" gorm:"foreignKey:PointClaimID;constraint:OnDelete:SET NULL"`
}

// TableName returns the database table name for PointTransaction.
func (PointTransaction) TableName() string { return "point_transactions" }
