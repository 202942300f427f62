// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Character
// model.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/huntschedule/huntschedule-api/internal/domain"
)

// CharacterFilter narrows ListCharacters. Zero values mean "any".
type CharacterFilter struct {
	UserID   uint
	ServerID uint
}

// CreateCharacter inserts c. A (server, name) collision yields ErrDuplicate.
func CreateCharacter(ctx context.Context, db *gorm.DB, c *domain.Character) error {
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetCharacter fetches a character by id.
func GetCharacter(ctx context.Context, db *gorm.DB, id uint) (*domain.Character, error) {
	var c domain.Character
	if err := db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindCharacterByName looks a character up by case-insensitive name on a
// server.
func FindCharacterByName(ctx context.Context, db *gorm.DB, serverID uint, name string) (*domain.Character, error) {
	var c domain.Character
	err := db.WithContext(ctx).
		Where("server_id = ? AND LOWER(name) = LOWER(?)", serverID, name).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCharacters returns characters matching f ordered by name.
func ListCharacters(ctx context.Context, db *gorm.DB, f CharacterFilter) ([]domain.Character, error) {
	q := db.WithContext(ctx).Preload("Server")
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ServerID != 0 {
		q = q.Where("server_id = ?", f.ServerID)
	}
	var out []domain.Character
	err := q.Order("name asc").Find(&out).Error
	return out, err
}

// SaveCharacter writes every column of c.
func SaveCharacter(ctx context.Context, db *gorm.DB, c *domain.Character) error {
	if err := db.WithContext(ctx).Save(c).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// ClearMainExcept unsets is_main on every character of userID other than
// keepID.
func ClearMainExcept(ctx context.Context, db *gorm.DB, userID, keepID uint) error {
	return db.WithContext(ctx).
		Model(&domain.Character{}).
		Where("user_id = ? AND id <> ? AND is_main = ?", userID, keepID, true).
		Update("is_main", false).Error
}

// DeleteCharacter removes a character by id.
func DeleteCharacter(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Character{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
