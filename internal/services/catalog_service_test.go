package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/huntschedule/huntschedule-api/internal/domain"
)

func TestCatalog_RespawnChecks(t *testing.T) {
	db := newSvcDB(t)
	w := seedWorld(t, db)
	c := NewCatalog(db)
	ctx := context.Background()

	_, err := c.Respawns.Create(ctx, &domain.Respawn{ServerID: w.Antica.ID, Name: "Bad", MinPlayers: 5, MaxPlayers: 2})
	mustValidation(t, err, CodeInvalidInput)

	_, err = c.Respawns.Create(ctx, &domain.Respawn{ServerID: 999, Name: "Nowhere"})
	mustValidation(t, err, CodeInvalidInput)

	missing := uint(42)
	_, err = c.Respawns.Create(ctx, &domain.Respawn{ServerID: w.Antica.ID, Name: "Hard", DifficultyID: &missing})
	mustValidation(t, err, CodeInvalidInput)

	d, err := c.Difficulties.Create(ctx, &domain.Difficulty{Name: "Hard"})
	if err != nil {
		t.Fatalf("difficulty: %v", err)
	}
	r, err := c.Respawns.Create(ctx, &domain.Respawn{ID: 77, ServerID: w.Antica.ID, Name: "Roshamuul", DifficultyID: &d.ID, MinPlayers: 2, MaxPlayers: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.ID == 77 {
		t.Fatalf("client id must be ignored")
	}

	r.MinPlayers = 3
	upd, err := c.Respawns.Update(ctx, r.ID, r)
	if err != nil || upd.MinPlayers != 3 {
		t.Fatalf("Update: %+v %v", upd, err)
	}
	if _, err := c.Respawns.Update(ctx, 999, &domain.Respawn{ServerID: w.Antica.ID, Name: "x"}); !errors.Is(err, ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got %v", err)
	}
	if n := count[domain.Respawn](t, db); n != 2 {
		t.Fatalf("respawns = %d; update must not upsert", n)
	}
}

func TestCatalog_ListScopesAndDuplicates(t *testing.T) {
	db := newSvcDB(t)
	w := seedWorld(t, db)
	c := NewCatalog(db)
	ctx := context.Background()

	if _, err := c.Servers.Create(ctx, &domain.Server{Name: "Antica"}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	all, err := c.Servers.List(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("servers: %v %v", all, err)
	}
	onSecura, err := c.Respawns.List(ctx, func(q *gorm.DB) *gorm.DB { return q.Where("server_id = ?", w.Secura.ID) })
	if err != nil || len(onSecura) != 0 {
		t.Fatalf("scoped respawns: %v %v", onSecura, err)
	}
	statuses, _ := c.Statuses.List(ctx)
	if len(statuses) != 4 || statuses[0].Name != domain.StatusPending {
		t.Fatalf("seeded statuses: %+v", statuses)
	}
	if _, err := c.Slots.Create(ctx, &domain.Slot{StartTime: "25:00", EndTime: "26:00"}); err == nil {
		t.Fatalf("expected slot validation error")
	}
	if _, err := c.Periods.Get(ctx, 999); !errors.Is(err, ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestCatalog_DeleteReferencedServerIsInUse(t *testing.T) {
	db := newSvcDB(t)
	w := seedWorld(t, db)
	c := NewCatalog(db)
	ctx := context.Background()
	ownedCharacter(t, db, &w.Owner, w.Secura.ID, "Anchor")

	if err := c.Servers.Delete(ctx, w.Secura.ID); !errors.Is(err, ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}
	if err := c.Servers.Delete(ctx, 999); !errors.Is(err, ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got %v", err)
	}
	if err := c.Slots.Delete(ctx, w.Morning.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
