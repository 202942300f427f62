// Package services – CatalogService
//
// CatalogService is a generic CRUD service over the reference tables
// (servers, difficulties, respawns, slots, schedule periods, request
// statuses). Entities may implement Validate() error to enforce field rules;
// an optional Check hook verifies references against the database.
package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/huntschedule/huntschedule-api/internal/domain"
	"github.com/huntschedule/huntschedule-api/internal/repo"
)

// Entity is the contract catalog rows satisfy through their pointer type.
type Entity[T any] interface {
	*T
	SetID(id uint)
}

type validator interface{ Validate() error }

// CatalogService provides CRUD for one reference table.
type CatalogService[T any, PT Entity[T]] struct {
	DB *gorm.DB
	// Name labels spans and log lines (e.g. "respawns").
	Name string
	// Check runs before create and update, inside no transaction.
	Check func(ctx context.Context, db *gorm.DB, v *T) error
}

// NewCatalogService constructs a CatalogService for table name.
func NewCatalogService[T any, PT Entity[T]](db *gorm.DB, name string) *CatalogService[T, PT] {
	return &CatalogService[T, PT]{DB: db, Name: name}
}

func (s *CatalogService[T, PT]) span(ctx context.Context, op string, id uint) (context.Context, trace.Span) {
	return otel.Tracer("services/CatalogService").Start(ctx, op,
		trace.WithAttributes(attribute.String("catalog", s.Name), attribute.Int64("id", int64(id))),
	)
}

func (s *CatalogService[T, PT]) validate(ctx context.Context, v *T) error {
	if vv, ok := any(v).(validator); ok {
		if err := vv.Validate(); err != nil {
			return invalid(CodeInvalidInput, nil, "%s", err.Error())
		}
	}
	if s.Check != nil {
		return s.Check(ctx, s.DB, v)
	}
	return nil
}

// List returns every row narrowed by scopes.
func (s *CatalogService[T, PT]) List(ctx context.Context, scopes ...repo.Scope) ([]T, error) {
	return repo.ListEntities[T](ctx, s.DB, scopes...)
}

// Get returns one row.
func (s *CatalogService[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	v, err := repo.GetEntity[T](ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntityNotFound
	}
	return v, err
}

// Create inserts v. Any client-supplied id is ignored.
func (s *CatalogService[T, PT]) Create(ctx context.Context, v *T) (*T, error) {
	ctx, span := s.span(ctx, "Create", 0)
	defer span.End()

	PT(v).SetID(0)
	if err := s.validate(ctx, v); err != nil {
		return nil, err
	}
	if err := repo.CreateEntity(ctx, s.DB, v); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return v, nil
}

// Update replaces the row identified by id with v.
func (s *CatalogService[T, PT]) Update(ctx context.Context, id uint, v *T) (*T, error) {
	ctx, span := s.span(ctx, "Update", id)
	defer span.End()

	ok, err := repo.EntityExists[T](ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEntityNotFound
	}
	PT(v).SetID(id)
	if err := s.validate(ctx, v); err != nil {
		return nil, err
	}
	if err := repo.SaveEntity(ctx, s.DB, v); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the row identified by id.
func (s *CatalogService[T, PT]) Delete(ctx context.Context, id uint) error {
	ctx, span := s.span(ctx, "Delete", id)
	defer span.End()

	switch err := repo.DeleteEntity[T](ctx, s.DB, id); {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrEntityNotFound
	case errors.Is(err, repo.ErrReferenced):
		return ErrInUse
	default:
		return err
	}
}

// Catalog bundles the reference-data services.
type Catalog struct {
	Servers      *CatalogService[domain.Server, *domain.Server]
	Difficulties *CatalogService[domain.Difficulty, *domain.Difficulty]
	Respawns     *CatalogService[domain.Respawn, *domain.Respawn]
	Slots        *CatalogService[domain.Slot, *domain.Slot]
	Periods      *CatalogService[domain.SchedulePeriod, *domain.SchedulePeriod]
	Statuses     *CatalogService[domain.RequestStatus, *domain.RequestStatus]
}

// NewCatalog wires every reference-data service on db.
func NewCatalog(db *gorm.DB) *Catalog {
	respawns := NewCatalogService[domain.Respawn](db, "respawns")
	respawns.Check = checkRespawnRefs
	return &Catalog{
		Servers:      NewCatalogService[domain.Server](db, "servers"),
		Difficulties: NewCatalogService[domain.Difficulty](db, "difficulties"),
		Respawns:     respawns,
		Slots:        NewCatalogService[domain.Slot](db, "slots"),
		Periods:      NewCatalogService[domain.SchedulePeriod](db, "schedule_periods"),
		Statuses:     NewCatalogService[domain.RequestStatus](db, "request_statuses"),
	}
}

// checkRespawnRefs verifies the respawn's server and difficulty exist.
func checkRespawnRefs(ctx context.Context, db *gorm.DB, r *domain.Respawn) error {
	ok, err := repo.EntityExists[domain.Server](ctx, db, r.ServerID)
	if err != nil {
		return err
	}
	if !ok {
		return invalid(CodeInvalidInput, map[string]any{"serverId": r.ServerID}, "server %d does not exist", r.ServerID)
	}
	if r.DifficultyID != nil && *r.DifficultyID != 0 {
		ok, err := repo.EntityExists[domain.Difficulty](ctx, db, *r.DifficultyID)
		if err != nil {
			return err
		}
		if !ok {
			return invalid(CodeInvalidInput, map[string]any{"difficultyId": *r.DifficultyID}, "difficulty %d does not exist", *r.DifficultyID)
		}
	} else {
		r.DifficultyID = nil
	}
	return nil
}
