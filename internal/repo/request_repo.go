// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Request
// aggregate (request rows, party members and status lookups).
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/huntschedule/huntschedule-api/internal/domain"
)

// RequestFilter narrows ListRequests. Zero values mean "any".
type RequestFilter struct {
	UserID   uint
	ServerID uint
	PeriodID uint
	StatusID uint
}

func (f RequestFilter) apply(q *gorm.DB) *gorm.DB {
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ServerID != 0 {
		q = q.Where("server_id = ?", f.ServerID)
	}
	if f.PeriodID != 0 {
		q = q.Where("period_id = ?", f.PeriodID)
	}
	if f.StatusID != 0 {
		q = q.Where("status_id = ?", f.StatusID)
	}
	return q
}

// preloadGraph loads every relation rendered in request responses.
func preloadGraph(q *gorm.DB) *gorm.DB {
	return q.
		Preload("User").
		Preload("Server").
		Preload("Respawn").
		Preload("Slot").
		Preload("Period").
		Preload("Status").
		Preload("Leader").
		Preload("Party").
		Preload("Party.Character")
}

// StatusIDByName resolves a request status id by name.
func StatusIDByName(ctx context.Context, db *gorm.DB, name string) (uint, error) {
	var st domain.RequestStatus
	if err := db.WithContext(ctx).Where("name = ?", name).First(&st).Error; err != nil {
		return 0, err
	}
	return st.ID, nil
}

// CreateRequest inserts the request row only; party rows are written with
// CreatePartyMembers.
func CreateRequest(ctx context.Context, db *gorm.DB, r *domain.Request) error {
	return db.WithContext(ctx).Omit("Party").Create(r).Error
}

// CreatePartyMembers inserts party rows for requestID. A character listed
// twice yields ErrDuplicate.
func CreatePartyMembers(ctx context.Context, db *gorm.DB, requestID uint, members []domain.RequestPartyMember) error {
	if len(members) == 0 {
		return nil
	}
	for i := range members {
		members[i].RequestID = requestID
	}
	if err := db.WithContext(ctx).Omit("Character").Create(&members).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetRequest fetches a request with its full graph.
func GetRequest(ctx context.Context, db *gorm.DB, id uint) (*domain.Request, error) {
	var r domain.Request
	if err := preloadGraph(db.WithContext(ctx)).First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// CountRequests returns how many requests match f.
func CountRequests(ctx context.Context, db *gorm.DB, f RequestFilter) (int64, error) {
	var total int64
	err := f.apply(db.WithContext(ctx).Model(&domain.Request{})).Count(&total).Error
	return total, err
}

// ListRequestsPage returns a page of requests matching f, newest first.
func ListRequestsPage(ctx context.Context, db *gorm.DB, f RequestFilter, offset, limit int) ([]domain.Request, error) {
	var out []domain.Request
	err := preloadGraph(f.apply(db.WithContext(ctx))).
		Order("created_at desc").
		Order("id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SetRequestStatus writes status_id and rejection_reason unconditionally.
func SetRequestStatus(ctx context.Context, db *gorm.DB, id, statusID uint, reason *string) error {
	res := db.WithContext(ctx).
		Model(&domain.Request{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status_id":        statusID,
			"rejection_reason": reason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindConflicts returns every request other than r that targets the same
// (server, respawn, slot, period) and currently has statusID. The owner,
// respawn, slot and period are preloaded for notifications.
func FindConflicts(ctx context.Context, db *gorm.DB, r *domain.Request, statusID uint) ([]domain.Request, error) {
	var out []domain.Request
	err := db.WithContext(ctx).
		Preload("User").
		Preload("Respawn").
		Preload("Slot").
		Preload("Period").
		Where("id <> ? AND server_id = ? AND respawn_id = ? AND slot_id = ? AND period_id = ? AND status_id = ?",
			r.ID, r.ServerID, r.RespawnID, r.SlotID, r.PeriodID, statusID).
		Find(&out).Error
	return out, err
}

// DeleteRequest removes a request and its party rows.
func DeleteRequest(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Select("Party").Delete(&domain.Request{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
