package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/huntschedule/huntschedule-api/internal/domain"
	"github.com/huntschedule/huntschedule-api/internal/notify"
	"github.com/huntschedule/huntschedule-api/internal/repo"
	"github.com/huntschedule/huntschedule-api/internal/tibia"
)

// ---------- test helpers ----------

func newSvcDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if err := repo.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func count[T any](t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(new(T)).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func statusID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	id, err := repo.StatusIDByName(context.Background(), db, name)
	if err != nil {
		t.Fatalf("status %q: %v", name, err)
	}
	return id
}

// world is the reference data most tests share.
type world struct {
	Owner, Rival, Admin domain.User
	Antica, Secura      domain.Server
	Library             domain.Respawn
	Evening, Morning    domain.Slot
	Week1, Week2        domain.SchedulePeriod
}

func (w *world) actor(u domain.User) Actor { return Actor{ID: u.ID, Role: u.Role} }

func (w *world) input(party ...PartyEntry) CreateRequestInput {
	return CreateRequestInput{
		ServerID:  w.Antica.ID,
		RespawnID: w.Library.ID,
		SlotID:    w.Evening.ID,
		PeriodID:  w.Week1.ID,
		Party:     party,
	}
}

func seedWorld(t *testing.T, db *gorm.DB) *world {
	t.Helper()
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	w := &world{
		Owner:   domain.User{Username: "owner", Email: "owner@guild.test", WhatsApp: "+48111", PasswordHash: "x", Role: domain.RoleUser, Language: "pl-PL"},
		Rival:   domain.User{Username: "rival", Email: "rival@guild.test", PasswordHash: "x", Role: domain.RoleUser},
		Admin:   domain.User{Username: "admin", PasswordHash: "x", Role: domain.RoleAdmin},
		Antica:  domain.Server{Name: "Antica"},
		Secura:  domain.Server{Name: "Secura"},
		Library: domain.Respawn{Name: "Library", MinPlayers: 1},
		Evening: domain.Slot{StartTime: "18:00", EndTime: "20:00"},
		Morning: domain.Slot{StartTime: "08:00", EndTime: "10:00"},
		Week1:   domain.SchedulePeriod{Name: "Week 1", StartsAt: start, EndsAt: start.AddDate(0, 0, 7), IsActive: true},
		Week2:   domain.SchedulePeriod{Name: "Week 2", StartsAt: start.AddDate(0, 0, 7), EndsAt: start.AddDate(0, 0, 14), IsActive: true},
	}
	for _, u := range []*domain.User{&w.Owner, &w.Rival, &w.Admin} {
		if err := repo.CreateUser(ctx, db, u); err != nil {
			t.Fatalf("user: %v", err)
		}
	}
	for _, s := range []*domain.Server{&w.Antica, &w.Secura} {
		if err := repo.CreateEntity(ctx, db, s); err != nil {
			t.Fatalf("server: %v", err)
		}
	}
	w.Library.ServerID = w.Antica.ID
	if err := repo.CreateEntity(ctx, db, &w.Library); err != nil {
		t.Fatalf("respawn: %v", err)
	}
	for _, s := range []*domain.Slot{&w.Evening, &w.Morning} {
		if err := repo.CreateEntity(ctx, db, s); err != nil {
			t.Fatalf("slot: %v", err)
		}
	}
	for _, p := range []*domain.SchedulePeriod{&w.Week1, &w.Week2} {
		if err := repo.CreateEntity(ctx, db, p); err != nil {
			t.Fatalf("period: %v", err)
		}
	}
	return w
}

func ownedCharacter(t *testing.T, db *gorm.DB, owner *domain.User, serverID uint, name string) *domain.Character {
	t.Helper()
	c := &domain.Character{ServerID: serverID, Name: name, Level: 100}
	if owner != nil {
		id := owner.ID
		c.UserID = &id
	}
	if err := repo.CreateCharacter(context.Background(), db, c); err != nil {
		t.Fatalf("character %q: %v", name, err)
	}
	return c
}

// ---------- fakes ----------

type fakeValidator struct {
	mu          sync.Mutex
	chars       map[string]tibia.CharacterInfo // keyed by lower-case name
	unavailable bool
	calls       int
}

func newFakeValidator(infos ...tibia.CharacterInfo) *fakeValidator {
	v := &fakeValidator{chars: map[string]tibia.CharacterInfo{}}
	for _, i := range infos {
		i.Exists = true
		v.chars[strings.ToLower(i.Name)] = i
	}
	return v
}

func (v *fakeValidator) ValidateCharacter(_ context.Context, name string) *tibia.CharacterInfo {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls++
	if v.unavailable {
		return nil
	}
	if c, ok := v.chars[strings.ToLower(name)]; ok {
		return &c
	}
	return &tibia.CharacterInfo{Exists: false}
}

type fakeNotifier struct {
	mu  sync.Mutex
	got []notify.Message
}

func (n *fakeNotifier) Enqueue(m notify.Message) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, m)
	return true
}

func (n *fakeNotifier) messages() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.got...)
}

func (n *fakeNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = nil
}

// userRepo adapts the repo package functions to UserRepo.
type userRepo struct{}

func (userRepo) CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	return repo.CreateUser(ctx, db, u)
}
func (userRepo) GetUser(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error) {
	return repo.GetUser(ctx, db, id)
}
func (userRepo) GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	return repo.GetUserByUsername(ctx, db, username)
}
func (userRepo) ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	return repo.ListUsers(ctx, db)
}
func (userRepo) UpdateUserRole(ctx context.Context, db *gorm.DB, id uint, role string) error {
	return repo.UpdateUserRole(ctx, db, id, role)
}

func mustValidation(t *testing.T, err error, code string) *ValidationError {
	t.Helper()
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationError %q, got %v", code, err)
	}
	if ve.Code != code {
		t.Fatalf("validation code = %q (%s); want %q", ve.Code, ve.Message, code)
	}
	return ve
}
