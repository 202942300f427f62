// Package services – CharacterService
//
// CharacterService manages in-game characters. New characters are confirmed
// against the external lookup service unless a local row already exists, and
// the "main" flag is kept unique per owner by clearing it on siblings.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/huntschedule/huntschedule-api/internal/domain"
	"github.com/huntschedule/huntschedule-api/internal/repo"
	"github.com/huntschedule/huntschedule-api/internal/tibia"
)

// CharacterValidator confirms a character name against the external lookup
// service. A nil result means the lookup could not be completed.
type CharacterValidator interface {
	ValidateCharacter(ctx context.Context, name string) *tibia.CharacterInfo
}

// CreateCharacterInput carries the fields of POST /characters.
type CreateCharacterInput struct {
	ServerID uint
	Name     string
	IsMain   bool
}

// UpdateCharacterInput carries optional field updates; nil means unchanged.
type UpdateCharacterInput struct {
	Name     *string
	Vocation *string
	Level    *int
	IsMain   *bool
}

// CharacterService provides character operations.
type CharacterService struct {
	DB        *gorm.DB
	Validator CharacterValidator

	now func() time.Time
}

// NewCharacterService constructs a CharacterService.
func NewCharacterService(db *gorm.DB, v CharacterValidator) *CharacterService {
	return &CharacterService{DB: db, Validator: v, now: time.Now}
}

// List returns characters matching f.
func (s *CharacterService) List(ctx context.Context, f repo.CharacterFilter) ([]domain.Character, error) {
	return repo.ListCharacters(ctx, s.DB, f)
}

// Get returns a character by id.
func (s *CharacterService) Get(ctx context.Context, id uint) (*domain.Character, error) {
	c, err := repo.GetCharacter(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCharacterNotFound
	}
	return c, err
}

// Create registers a character for the actor. A local row with the same name
// on the server is claimed when unowned; otherwise the name must be confirmed
// by the validator and live on the server's world.
func (s *CharacterService) Create(ctx context.Context, actor Actor, in CreateCharacterInput) (*domain.Character, error) {
	tr := otel.Tracer("services/CharacterService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.Int64("server.id", int64(in.ServerID))),
	)
	defer span.End()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid(CodeInvalidInput, nil, "character name is required")
	}
	server, err := repo.GetEntity[domain.Server](ctx, s.DB, in.ServerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServerNotFound
		}
		return nil, err
	}

	existing, err := repo.FindCharacterByName(ctx, s.DB, server.ID, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && existing.UserID != nil {
		return nil, ErrAlreadyExists
	}

	var info *tibia.CharacterInfo
	if existing == nil {
		info = s.lookup(ctx, name)
		if err := checkExternal(name, server, info); err != nil {
			return nil, err
		}
	}

	var out *domain.Character
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c := existing
		if c == nil {
			verified := s.now().UTC()
			c = &domain.Character{
				ServerID:           server.ID,
				Name:               info.Name,
				Vocation:           info.Vocation,
				Level:              info.Level,
				ExternalVerifiedAt: &verified,
			}
		}
		owner := actor.ID
		c.UserID = &owner
		c.IsExternal = false
		c.IsMain = in.IsMain
		c.Server = nil

		if c.ID == 0 {
			if err := repo.CreateCharacter(ctx, tx, c); err != nil {
				return err
			}
		} else if err := repo.SaveCharacter(ctx, tx, c); err != nil {
			return err
		}
		if c.IsMain {
			if err := repo.ClearMainExcept(ctx, tx, owner, c.ID); err != nil {
				return err
			}
		}
		out = c
		return nil
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return out, nil
}

// lookup asks the validator about name. No configured validator counts as
// "unavailable".
func (s *CharacterService) lookup(ctx context.Context, name string) *tibia.CharacterInfo {
	if s.Validator == nil {
		return nil
	}
	return s.Validator.ValidateCharacter(ctx, name)
}

// confirmRename checks that name is free on c's server and confirmed by the
// validator on that server's world.
func (s *CharacterService) confirmRename(ctx context.Context, c *domain.Character, name string) (*tibia.CharacterInfo, error) {
	other, err := repo.FindCharacterByName(ctx, s.DB, c.ServerID, name)
	switch {
	case err == nil && other.ID != c.ID:
		return nil, ErrAlreadyExists
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	server, err := repo.GetEntity[domain.Server](ctx, s.DB, c.ServerID)
	if err != nil {
		return nil, err
	}
	info := s.lookup(ctx, name)
	if err := checkExternal(name, server, info); err != nil {
		return nil, err
	}
	return info, nil
}

// checkExternal turns a lookup result into a validation error when the
// character is unknown, unconfirmable or on another world.
func checkExternal(name string, server *domain.Server, info *tibia.CharacterInfo) error {
	if info == nil || !info.Exists {
		return invalid(CodeCharacterNotFound, map[string]any{"name": name},
			"character %q not found on Tibia.com", name)
	}
	if !strings.EqualFold(info.World, server.Name) {
		return invalid(CodeCharacterWorldMismatch,
			map[string]any{"name": info.Name, "world": info.World, "server": server.Name},
			"character %q is on world %q, not %q", info.Name, info.World, server.Name)
	}
	return nil
}

// Update applies in to a character the actor owns (or any, for admins). A
// changed name takes the canonical name, vocation and level reported by the
// validator; explicit vocation and level fields are applied afterwards.
func (s *CharacterService) Update(ctx context.Context, actor Actor, id uint, in UpdateCharacterInput) (*domain.Character, error) {
	tr := otel.Tracer("services/CharacterService")
	ctx, span := tr.Start(ctx, "Update", trace.WithAttributes(attribute.Int64("character.id", int64(id))))
	defer span.End()

	// A new name must be confirmed like a new character; the lookup runs
	// outside the transaction.
	var renamed *tibia.CharacterInfo
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid(CodeInvalidInput, nil, "character name must not be blank")
		}
		c, err := s.owned(ctx, s.DB, actor, id)
		if err != nil {
			return nil, err
		}
		if name != c.Name {
			if renamed, err = s.confirmRename(ctx, c, name); err != nil {
				return nil, err
			}
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.owned(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		if renamed != nil {
			verified := s.now().UTC()
			c.Name = renamed.Name
			c.Vocation = renamed.Vocation
			c.Level = renamed.Level
			c.ExternalVerifiedAt = &verified
		}
		if in.Vocation != nil {
			c.Vocation = strings.TrimSpace(*in.Vocation)
		}
		if in.Level != nil {
			if *in.Level < 0 {
				return invalid(CodeInvalidInput, map[string]any{"level": *in.Level}, "level must be >= 0")
			}
			c.Level = *in.Level
		}
		if in.IsMain != nil {
			c.IsMain = *in.IsMain
		}
		if err := repo.SaveCharacter(ctx, tx, c); err != nil {
			return err
		}
		if c.IsMain && c.UserID != nil {
			return repo.ClearMainExcept(ctx, tx, *c.UserID, c.ID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// SetMain marks a character as its owner's main and unsets every sibling.
func (s *CharacterService) SetMain(ctx context.Context, actor Actor, id uint) (*domain.Character, error) {
	on := true
	return s.Update(ctx, actor, id, UpdateCharacterInput{IsMain: &on})
}

// Delete removes a character the actor owns (or any, for admins).
func (s *CharacterService) Delete(ctx context.Context, actor Actor, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.owned(ctx, tx, actor, id); err != nil {
			return err
		}
		err := repo.DeleteCharacter(ctx, tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCharacterNotFound
		}
		return err
	})
}

func (s *CharacterService) owned(ctx context.Context, db *gorm.DB, actor Actor, id uint) (*domain.Character, error) {
	c, err := repo.GetCharacter(ctx, db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}
	if !actor.canTouch(c.UserID) {
		return nil, ErrForbidden
	}
	return c, nil
}
