// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides generic CRUD helpers for the reference
// tables (servers, difficulties, respawns, slots, schedule periods and
// request statuses).
package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope narrows a catalog query (e.g. a WHERE clause built from query params).
type Scope = func(*gorm.DB) *gorm.DB

// CreateEntity inserts v. Unique collisions yield ErrDuplicate.
func CreateEntity[T any](ctx context.Context, db *gorm.DB, v *T) error {
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(v).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetEntity fetches a row by primary key.
func GetEntity[T any](ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	var v T
	if err := db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// EntityExists reports whether a row with id exists.
func EntityExists[T any](ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// ListEntities returns all rows ordered by id, narrowed by scopes.
func ListEntities[T any](ctx context.Context, db *gorm.DB, scopes ...Scope) ([]T, error) {
	out := []T{}
	err := db.WithContext(ctx).Scopes(scopes...).Order("id asc").Find(&out).Error
	return out, err
}

// SaveEntity writes every column of v; v must carry its primary key.
func SaveEntity[T any](ctx context.Context, db *gorm.DB, v *T) error {
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(v).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// DeleteEntity removes a row by primary key. A row still referenced by a
// restricting foreign key yields ErrReferenced.
func DeleteEntity[T any](ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return ErrReferenced
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
