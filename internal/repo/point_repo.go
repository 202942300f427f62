// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for point claims
// and the point transaction ledger.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/huntschedule/huntschedule-api/internal/domain"
)

// CreatePointClaim inserts a claim.
func CreatePointClaim(ctx context.Context, db *gorm.DB, c *domain.PointClaim) error {
	return db.WithContext(ctx).Omit("User", "Request").Create(c).Error
}

// GetPointClaim fetches a claim by id.
func GetPointClaim(ctx context.Context, db *gorm.DB, id uint) (*domain.PointClaim, error) {
	var c domain.PointClaim
	if err := db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListPointClaims returns claims newest first. Zero userID and empty status
// mean "any".
func ListPointClaims(ctx context.Context, db *gorm.DB, userID uint, status string) ([]domain.PointClaim, error) {
	q := db.WithContext(ctx).Preload("User")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	out := []domain.PointClaim{}
	err := q.Order("created_at desc").Order("id desc").Find(&out).Error
	return out, err
}

// ReviewPointClaim moves a pending claim to status. It returns false when the
// claim was no longer pending.
func ReviewPointClaim(ctx context.Context, db *gorm.DB, id uint, status string, reviewer uint, note string, at time.Time) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.PointClaim{}).
		Where("id = ? AND status = ?", id, domain.ClaimPending).
		Updates(map[string]any{
			"status":      status,
			"reviewed_by": reviewer,
			"review_note": note,
			"reviewed_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CreatePointTransaction inserts a ledger row. A second transaction for the
// same claim yields ErrDuplicate.
func CreatePointTransaction(ctx context.Context, db *gorm.DB, t *domain.PointTransaction) error {
	if err := db.WithContext(ctx).Omit("User", "Claim").Create(t).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// ListPointTransactions returns ledger rows newest first. Zero userID means
// "any".
func ListPointTransactions(ctx context.Context, db *gorm.DB, userID uint) ([]domain.PointTransaction, error) {
	q := db.WithContext(ctx)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	out := []domain.PointTransaction{}
	err := q.Order("created_at desc").Order("id desc").Find(&out).Error
	return out, err
}
