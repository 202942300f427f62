package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/huntschedule/huntschedule-api/internal/domain"
	"github.com/huntschedule/huntschedule-api/internal/http/middleware"
	"github.com/huntschedule/huntschedule-api/internal/notify"
	"github.com/huntschedule/huntschedule-api/internal/repo"
	"github.com/huntschedule/huntschedule-api/internal/services"
	"github.com/huntschedule/huntschedule-api/internal/tibia"
)

// ---------- test DB + fakes ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
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

type fakeLookup struct {
	chars       map[string]tibia.CharacterInfo
	worlds      []string
	unavailable bool
}

func (f *fakeLookup) ValidateCharacter(_ context.Context, name string) *tibia.CharacterInfo {
	if f.unavailable {
		return nil
	}
	if c, ok := f.chars[strings.ToLower(name)]; ok {
		c.Exists = true
		return &c
	}
	return &tibia.CharacterInfo{Exists: false}
}

func (f *fakeLookup) Worlds(context.Context) []string {
	if f.unavailable {
		return nil
	}
	return f.worlds
}

type nopNotifier struct{}

func (nopNotifier) Enqueue(notify.Message) bool { return true }

type userRepoShim struct{}

func (userRepoShim) CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	return repo.CreateUser(ctx, db, u)
}
func (userRepoShim) GetUser(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error) {
	return repo.GetUser(ctx, db, id)
}
func (userRepoShim) GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	return repo.GetUserByUsername(ctx, db, username)
}
func (userRepoShim) ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	return repo.ListUsers(ctx, db)
}
func (userRepoShim) UpdateUserRole(ctx context.Context, db *gorm.DB, id uint, role string) error {
	return repo.UpdateUserRole(ctx, db, id, role)
}

// ---------- harness ----------

// testToken encodes the caller as "<role>-<id>"; the harness trusts it.
func testToken(u domain.User) string {
	return "Bearer " + u.Role + "-" + strconv.FormatUint(uint64(u.ID), 10)
}

func parseTestToken(tok string) (uint, string, error) {
	role, id, found := strings.Cut(tok, "-")
	if !found {
		return 0, "", errors.New("bad token")
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, "", err
	}
	return uint(n), role, nil
}

type harness struct {
	t      *testing.T
	db     *gorm.DB
	r      *gin.Engine
	lookup *fakeLookup

	owner, rival, admin domain.User
	server              domain.Server
	respawn             domain.Respawn
	slot                domain.Slot
	period              domain.SchedulePeriod
	knight              *domain.Character
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &harness{
		t:      t,
		db:     newHandlerDB(t),
		lookup: &fakeLookup{chars: map[string]tibia.CharacterInfo{}},
	}
	h.seed()

	lookup := h.lookup
	hd := New(Deps{
		Auth:       services.NewAuthService(h.db, userRepoShim{}, "test-secret", time.Hour, 4),
		Users:      &services.UserService{DB: h.db, Repo: userRepoShim{}},
		Characters: services.NewCharacterService(h.db, lookup),
		Requests:   services.NewRequestService(h.db, lookup, nopNotifier{}),
		Points:     services.NewPointService(h.db),
		Lookup:     lookup,
	})
	catalog := services.NewCatalog(h.db)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Authenticate(parseTestToken))
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))

	authed := r.Group("", middleware.RequireAuth())
	admin := r.Group("", middleware.RequireRole(domain.RoleAdmin))

	NewCatalogHandler(catalog.Servers, nil).Mount(r, admin, "/servers")
	NewCatalogHandler(catalog.Respawns, FilterByServer).Mount(r, admin, "/respawns")
	NewCatalogHandler(catalog.Slots, nil).Mount(r, admin, "/slots")
	NewCatalogHandler(catalog.Periods, FilterByActive).Mount(r, admin, "/schedule-periods")

	authed.GET("/users/me", hd.Me)
	authed.POST("/characters", hd.CreateCharacter)
	authed.GET("/characters", hd.ListCharacters)
	authed.POST("/requests", hd.CreateRequest)
	authed.GET("/requests", hd.ListRequests)
	authed.GET("/requests/:id", hd.GetRequest)
	authed.POST("/requests/:id/cancel", hd.CancelRequest)
	authed.DELETE("/requests/:id", hd.DeleteRequest)
	admin.PATCH("/requests/:id/status", hd.UpdateRequestStatus)
	authed.POST("/point-claims", hd.CreateClaim)
	admin.POST("/point-claims/:id/review", hd.ReviewClaim)
	authed.GET("/point-transactions", hd.ListTransactions)
	authed.GET("/tibia/characters/:name", hd.LookupCharacter)
	authed.GET("/tibia/worlds", hd.ListWorlds)

	h.r = r
	return h
}

func (h *harness) seed() {
	t := h.t
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	h.owner = domain.User{Username: "owner", PasswordHash: "x", Role: domain.RoleUser}
	h.rival = domain.User{Username: "rival", PasswordHash: "x", Role: domain.RoleUser}
	h.admin = domain.User{Username: "admin", PasswordHash: "x", Role: domain.RoleAdmin}
	for _, u := range []*domain.User{&h.owner, &h.rival, &h.admin} {
		if err := repo.CreateUser(ctx, h.db, u); err != nil {
			t.Fatalf("user: %v", err)
		}
	}

	h.server = domain.Server{Name: "Antica"}
	if err := repo.CreateEntity(ctx, h.db, &h.server); err != nil {
		t.Fatalf("server: %v", err)
	}
	h.respawn = domain.Respawn{ServerID: h.server.ID, Name: "Library", MinPlayers: 1, MaxPlayers: 5}
	if err := repo.CreateEntity(ctx, h.db, &h.respawn); err != nil {
		t.Fatalf("respawn: %v", err)
	}
	h.slot = domain.Slot{StartTime: "18:00", EndTime: "20:00"}
	if err := repo.CreateEntity(ctx, h.db, &h.slot); err != nil {
		t.Fatalf("slot: %v", err)
	}
	h.period = domain.SchedulePeriod{Name: "Week 1", StartsAt: start, EndsAt: start.AddDate(0, 0, 7), IsActive: true}
	if err := repo.CreateEntity(ctx, h.db, &h.period); err != nil {
		t.Fatalf("period: %v", err)
	}

	uid := h.owner.ID
	h.knight = &domain.Character{UserID: &uid, ServerID: h.server.ID, Name: "Sir Knight", Level: 200}
	if err := repo.CreateCharacter(ctx, h.db, h.knight); err != nil {
		t.Fatalf("character: %v", err)
	}
}

func (h *harness) do(method, path string, as *domain.User, body any, headers ...string) *httptest.ResponseRecorder {
	h.t.Helper()
	var rdr *bytes.Reader
	switch b := body.(type) {
	case nil:
		rdr = bytes.NewReader(nil)
	case string:
		rdr = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			h.t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("Authorization", testToken(*as))
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.r.ServeHTTP(w, req)
	return w
}

func (h *harness) requestBody(party ...PartyMemberRequest) CreateRequestRequest {
	if len(party) == 0 {
		party = []PartyMemberRequest{{CharacterID: h.knight.ID, IsLeader: true}}
	}
	return CreateRequestRequest{
		ServerID:  h.server.ID,
		RespawnID: h.respawn.ID,
		SlotID:    h.slot.ID,
		PeriodID:  h.period.ID,
		Party:     party,
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v (body=%s)", v, err, w.Body.String())
	}
	return v
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body=%s)", w.Code, status, w.Body.String())
	}
}

func wantCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	t.Helper()
	wantStatus(t, w, status)
	er := decode[ErrorResponse](t, w)
	if er.Code != code {
		t.Fatalf("code = %q, want %q (message=%q)", er.Code, code, er.Message)
	}
	return er
}

// ---------- pure helpers ----------

func Test_clampPagination_and_newPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		query          string
		page, pageSize int
	}{
		{"", 1, 20},
		{"page=3&page_size=10", 3, 10},
		{"page=0&page_size=0", 1, 1},
		{"page=-2&page_size=1000", 1, 100},
		{"page=x&page_size=y", 1, 20},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
		p, ps := clampPagination(c)
		if p != tc.page || ps != tc.pageSize {
			t.Errorf("%q: got (%d,%d), want (%d,%d)", tc.query, p, ps, tc.page, tc.pageSize)
		}
	}

	pg := newPagination(2, 10, 25)
	if pg.TotalPages != 3 || !pg.HasNext {
		t.Fatalf("unexpected pagination: %+v", pg)
	}
	pg = newPagination(1, 20, 0)
	if pg.TotalPages != 0 || pg.HasNext {
		t.Fatalf("unexpected empty pagination: %+v", pg)
	}
}

// ---------- requests ----------

func TestCreateRequest_Created_And_IdempotentReplay(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/requests", &h.owner, h.requestBody(), middleware.HeaderIdempotencyKey, "hunt-1")
	wantStatus(t, w, http.StatusCreated)
	first := decode[domain.Request](t, w)
	if first.ID == 0 || first.UserID != h.owner.ID || len(first.Party) != 1 {
		t.Fatalf("unexpected request: %+v", first)
	}
	if w.Header().Get(middleware.HeaderIdempotencyReplayed) != "" {
		t.Fatalf("first create must not be marked replayed")
	}

	w = h.do(http.MethodPost, "/requests", &h.owner, h.requestBody(), middleware.HeaderIdempotencyKey, "hunt-1")
	wantStatus(t, w, http.StatusOK)
	if got := w.Header().Get(middleware.HeaderIdempotencyReplayed); got != "true" {
		t.Fatalf("Idempotency-Replayed = %q", got)
	}
	if again := decode[domain.Request](t, w); again.ID != first.ID {
		t.Fatalf("replay returned %d, want %d", again.ID, first.ID)
	}

	var n int64
	h.db.Model(&domain.Request{}).Count(&n)
	if n != 1 {
		t.Fatalf("requests stored = %d, want 1", n)
	}

	// Without a key every submission creates a row.
	wantStatus(t, h.do(http.MethodPost, "/requests", &h.owner, h.requestBody()), http.StatusCreated)
}

func TestCreateRequest_BindingAndValidationErrors(t *testing.T) {
	h := newHarness(t)

	wantCode(t, h.do(http.MethodPost, "/requests", &h.owner, "{"), http.StatusBadRequest, ErrCodeBadRequest)
	wantCode(t, h.do(http.MethodPost, "/requests", nil, h.requestBody()), http.StatusUnauthorized, ErrCodeUnauthorized)

	// Bad idempotency key is rejected before the handler.
	w := h.do(http.MethodPost, "/requests", &h.owner, h.requestBody(), middleware.HeaderIdempotencyKey, "has space")
	wantCode(t, w, http.StatusBadRequest, "bad_idempotency_key")

	// Six members for a respawn that allows five.
	var party []PartyMemberRequest
	for i := 0; i < 6; i++ {
		party = append(party, PartyMemberRequest{CharacterName: fmt.Sprintf("Member %d", i)})
	}
	er := wantCode(t, h.do(http.MethodPost, "/requests", &h.owner, h.requestBody(party...)),
		http.StatusBadRequest, services.CodePartyTooLarge)
	if er.Params["allowed"] != float64(5) || er.Params["provided"] != float64(6) || er.Params["respawn"] != "Library" {
		t.Fatalf("unexpected params: %#v", er.Params)
	}

	// Unknown name, lookup answering "does not exist".
	er = wantCode(t, h.do(http.MethodPost, "/requests", &h.owner,
		h.requestBody(PartyMemberRequest{CharacterName: "Ghost"})),
		http.StatusBadRequest, services.CodeCharacterNotFound)
	if er.Params["name"] != "Ghost" {
		t.Fatalf("unexpected params: %#v", er.Params)
	}

	// Missing server.
	body := h.requestBody()
	body.ServerID = 999
	wantCode(t, h.do(http.MethodPost, "/requests", &h.owner, body), http.StatusNotFound, ErrCodeNotFound)
}

func TestCreateRequest_PartyTooSmallEnvelope(t *testing.T) {
	h := newHarness(t)
	if err := h.db.Model(&h.respawn).Update("min_players", 3).Error; err != nil {
		t.Fatalf("min_players: %v", err)
	}

	er := wantCode(t, h.do(http.MethodPost, "/requests", &h.owner, h.requestBody()),
		http.StatusBadRequest, services.CodePartyTooSmall)
	if er.Message != `respawn "Library" requires at least 3 players, 1 provided` {
		t.Fatalf("message = %q", er.Message)
	}
	if er.Params["respawn"] != "Library" || er.Params["required"] != float64(3) || er.Params["provided"] != float64(1) {
		t.Fatalf("unexpected params: %#v", er.Params)
	}
	if er.RequestID == "" {
		t.Fatalf("request_id missing")
	}
}

func TestCreateRequest_ExternalMemberVerified(t *testing.T) {
	h := newHarness(t)
	h.lookup.chars["bubble"] = tibia.CharacterInfo{Name: "Bubble", World: "Antica", Vocation: "Elite Knight", Level: 400}

	w := h.do(http.MethodPost, "/requests", &h.owner, h.requestBody(
		PartyMemberRequest{CharacterID: h.knight.ID, IsLeader: true},
		PartyMemberRequest{CharacterName: "bubble", RoleInParty: "blocker"},
	))
	wantStatus(t, w, http.StatusCreated)

	c, err := repo.FindCharacterByName(context.Background(), h.db, h.server.ID, "Bubble")
	if err != nil {
		t.Fatalf("external character not stored: %v", err)
	}
	if !c.IsExternal || c.UserID != nil || c.Level != 400 {
		t.Fatalf("unexpected external character: %+v", c)
	}
}

func TestListRequests_ETag304_And_Invalidation(t *testing.T) {
	h := newHarness(t)
	wantStatus(t, h.do(http.MethodPost, "/requests", &h.owner, h.requestBody()), http.StatusCreated)

	w := h.do(http.MethodGet, "/requests?mine=true", &h.owner, nil)
	wantStatus(t, w, http.StatusOK)
	etag := w.Header().Get("ETag")
	if !strings.HasPrefix(etag, `W/"requests:`) {
		t.Fatalf("unexpected ETag %q", etag)
	}
	list := decode[ListRequestsResponse](t, w)
	if len(list.Requests) != 1 || list.Pagination.Total != 1 || list.Pagination.Page != 1 {
		t.Fatalf("unexpected list: %+v", list)
	}

	w = h.do(http.MethodGet, "/requests?mine=true", &h.owner, nil, "If-None-Match", etag)
	wantStatus(t, w, http.StatusNotModified)
	if w.Body.Len() != 0 {
		t.Fatalf("304 must have an empty body")
	}

	// The rival sees nothing of their own and gets a different tag.
	w = h.do(http.MethodGet, "/requests?mine=true", &h.rival, nil, "If-None-Match", etag)
	wantStatus(t, w, http.StatusOK)
	if decode[ListRequestsResponse](t, w).Pagination.Total != 0 {
		t.Fatalf("rival should have no requests")
	}

	// A new request changes the tag.
	wantStatus(t, h.do(http.MethodPost, "/requests", &h.owner, h.requestBody()), http.StatusCreated)
	w = h.do(http.MethodGet, "/requests?mine=true", &h.owner, nil, "If-None-Match", etag)
	wantStatus(t, w, http.StatusOK)
	if w.Header().Get("ETag") == etag {
		t.Fatalf("ETag did not change after insert")
	}

	wantCode(t, h.do(http.MethodGet, "/requests?server_id=abc", &h.owner, nil), http.StatusBadRequest, ErrCodeBadRequest)
}

func TestRequests_OwnerContactsHiddenFromOtherUsers(t *testing.T) {
	h := newHarness(t)
	if err := h.db.Model(&domain.User{}).Where("id = ?", h.owner.ID).
		Updates(map[string]any{"email": "owner@secret.test", "whatsapp": "+48999"}).Error; err != nil {
		t.Fatalf("contacts: %v", err)
	}

	w := h.do(http.MethodPost, "/requests", &h.owner, h.requestBody())
	wantStatus(t, w, http.StatusCreated)
	id := decode[domain.Request](t, w).ID
	one := "/requests/" + strconv.FormatUint(uint64(id), 10)

	for _, path := range []string{"/requests", one} {
		w = h.do(http.MethodGet, path, &h.rival, nil)
		wantStatus(t, w, http.StatusOK)
		body := w.Body.String()
		if strings.Contains(body, "owner@secret.test") || strings.Contains(body, "+48999") {
			t.Fatalf("GET %s exposes owner contacts to another user: %s", path, body)
		}
		if !strings.Contains(body, `"username":"owner"`) {
			t.Fatalf("GET %s should still name the owner: %s", path, body)
		}
	}

	for _, viewer := range []*domain.User{&h.owner, &h.admin} {
		w = h.do(http.MethodGet, one, viewer, nil)
		wantStatus(t, w, http.StatusOK)
		got := decode[domain.Request](t, w)
		if got.User == nil || got.User.Email != "owner@secret.test" || got.User.WhatsApp != "+48999" {
			t.Fatalf("%s should see owner contacts, got %+v", viewer.Username, got.User)
		}
	}
}

func TestRequestLifecycle_Status_Cancel_Delete(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodPost, "/requests", &h.owner, h.requestBody())
	wantStatus(t, w, http.StatusCreated)
	id := decode[domain.Request](t, w).ID
	path := fmt.Sprintf("/requests/%d", id)

	wantStatus(t, h.do(http.MethodGet, path, &h.rival, nil), http.StatusOK)
	wantCode(t, h.do(http.MethodGet, "/requests/0", &h.owner, nil), http.StatusBadRequest, ErrCodeBadRequest)
	wantCode(t, h.do(http.MethodGet, "/requests/4242", &h.owner, nil), http.StatusNotFound, ErrCodeNotFound)

	// Only admins change status.
	approved, err := repo.StatusIDByName(context.Background(), h.db, domain.StatusApproved)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	wantCode(t, h.do(http.MethodPatch, path+"/status", &h.owner, UpdateStatusRequest{StatusID: approved}),
		http.StatusForbidden, ErrCodeForbidden)
	w = h.do(http.MethodPatch, path+"/status", &h.admin, UpdateStatusRequest{StatusID: approved})
	wantStatus(t, w, http.StatusOK)
	if got := decode[domain.Request](t, w).StatusID; got != approved {
		t.Fatalf("status_id = %d, want %d", got, approved)
	}

	// Someone else's request.
	wantCode(t, h.do(http.MethodPost, path+"/cancel", &h.rival, nil), http.StatusForbidden, ErrCodeForbidden)
	wantCode(t, h.do(http.MethodDelete, path, &h.rival, nil), http.StatusForbidden, ErrCodeForbidden)

	wantStatus(t, h.do(http.MethodPost, path+"/cancel", &h.owner, nil), http.StatusOK)
	w = h.do(http.MethodDelete, path, &h.owner, nil)
	wantStatus(t, w, http.StatusNoContent)
	wantCode(t, h.do(http.MethodGet, path, &h.owner, nil), http.StatusNotFound, ErrCodeNotFound)
}

// ---------- points ----------

func TestClaims_ReviewTwice_Conflict(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/point-claims", &h.owner, CreateClaimRequest{Amount: 15, Reason: "boss kill"})
	wantStatus(t, w, http.StatusCreated)
	claim := decode[domain.PointClaim](t, w)
	path := fmt.Sprintf("/point-claims/%d/review", claim.ID)

	wantCode(t, h.do(http.MethodPost, path, &h.owner, ReviewClaimRequest{Approve: true}), http.StatusForbidden, ErrCodeForbidden)
	wantStatus(t, h.do(http.MethodPost, path, &h.admin, ReviewClaimRequest{Approve: true}), http.StatusOK)
	wantCode(t, h.do(http.MethodPost, path, &h.admin, ReviewClaimRequest{Approve: false}),
		http.StatusConflict, ErrCodeClaimAlreadyReviewed)

	w = h.do(http.MethodGet, "/point-transactions", &h.owner, nil)
	wantStatus(t, w, http.StatusOK)
	if txs := decode[[]domain.PointTransaction](t, w); len(txs) != 1 || txs[0].Amount != 15 {
		t.Fatalf("unexpected ledger: %+v", txs)
	}

	me := decode[domain.User](t, h.do(http.MethodGet, "/users/me", &h.owner, nil))
	if me.Points != 15 {
		t.Fatalf("points = %d, want 15", me.Points)
	}
}

// ---------- tibia lookups ----------

func TestLookupCharacter_Unavailable_Missing_Found(t *testing.T) {
	h := newHarness(t)

	h.lookup.unavailable = true
	wantCode(t, h.do(http.MethodGet, "/tibia/characters/Bubble", &h.owner, nil),
		http.StatusBadGateway, ErrCodeValidationUnavailable)
	wantCode(t, h.do(http.MethodGet, "/tibia/worlds", &h.owner, nil),
		http.StatusBadGateway, ErrCodeValidationUnavailable)

	h.lookup.unavailable = false
	er := wantCode(t, h.do(http.MethodGet, "/tibia/characters/Nobody", &h.owner, nil), http.StatusNotFound, ErrCodeNotFound)
	if !strings.Contains(er.Message, `"Nobody"`) {
		t.Fatalf("message should name the character: %q", er.Message)
	}

	h.lookup.chars["bubble"] = tibia.CharacterInfo{Name: "Bubble", World: "Antica", Level: 400}
	w := h.do(http.MethodGet, "/tibia/characters/Bubble", &h.owner, nil)
	wantStatus(t, w, http.StatusOK)
	if info := decode[tibia.CharacterInfo](t, w); !info.Exists || info.World != "Antica" {
		t.Fatalf("unexpected info: %+v", info)
	}

	h.lookup.worlds = []string{"Antica", "Secura"}
	w = h.do(http.MethodGet, "/tibia/worlds", &h.owner, nil)
	wantStatus(t, w, http.StatusOK)
	if got := decode[WorldsResponse](t, w).Worlds; len(got) != 2 {
		t.Fatalf("unexpected worlds: %v", got)
	}
}

// ---------- characters ----------

func TestCreateCharacter_ChecksWorld(t *testing.T) {
	h := newHarness(t)
	h.lookup.chars["mage"] = tibia.CharacterInfo{Name: "Mage", World: "Secura", Level: 80}

	er := wantCode(t, h.do(http.MethodPost, "/characters", &h.rival, CreateCharacterRequest{ServerID: h.server.ID, Name: "Mage"}),
		http.StatusBadRequest, services.CodeCharacterWorldMismatch)
	if er.Params["world"] != "Secura" || er.Params["server"] != "Antica" {
		t.Fatalf("unexpected params: %#v", er.Params)
	}

	h.lookup.chars["druid"] = tibia.CharacterInfo{Name: "Druid", World: "Antica", Level: 90}
	wantStatus(t, h.do(http.MethodPost, "/characters", &h.rival, CreateCharacterRequest{ServerID: h.server.ID, Name: "Druid"}),
		http.StatusCreated)

	w := h.do(http.MethodGet, "/characters?mine=true", &h.rival, nil)
	wantStatus(t, w, http.StatusOK)
	if list := decode[[]domain.Character](t, w); len(list) != 1 || list[0].Name != "Druid" {
		t.Fatalf("unexpected characters: %+v", list)
	}
}

// ---------- catalog ----------

func TestCatalog_CRUD_Conflicts_And_Filters(t *testing.T) {
	h := newHarness(t)

	// Writes are admin only.
	wantCode(t, h.do(http.MethodPost, "/servers", &h.owner, domain.Server{Name: "Secura"}), http.StatusForbidden, ErrCodeForbidden)

	w := h.do(http.MethodPost, "/servers", &h.admin, domain.Server{Name: "Secura"})
	wantStatus(t, w, http.StatusCreated)
	secura := decode[domain.Server](t, w)

	wantCode(t, h.do(http.MethodPost, "/servers", &h.admin, domain.Server{Name: "Secura"}), http.StatusConflict, ErrCodeAlreadyExists)
	wantCode(t, h.do(http.MethodPost, "/servers", &h.admin, map[string]any{}), http.StatusBadRequest, ErrCodeBadRequest)

	// Reads are public.
	w = h.do(http.MethodGet, "/servers", nil, nil)
	wantStatus(t, w, http.StatusOK)
	if list := decode[[]domain.Server](t, w); len(list) != 2 {
		t.Fatalf("servers = %d, want 2", len(list))
	}

	w = h.do(http.MethodPut, fmt.Sprintf("/servers/%d", secura.ID), &h.admin, domain.Server{Name: "Secura Prime"})
	wantStatus(t, w, http.StatusOK)
	if got := decode[domain.Server](t, w).Name; got != "Secura Prime" {
		t.Fatalf("name = %q", got)
	}
	wantCode(t, h.do(http.MethodPut, "/servers/999", &h.admin, domain.Server{Name: "X"}), http.StatusNotFound, ErrCodeNotFound)

	// Respawn on a server that does not exist.
	er := wantCode(t, h.do(http.MethodPost, "/respawns", &h.admin, domain.Respawn{ServerID: 999, Name: "Cave", MinPlayers: 1}),
		http.StatusBadRequest, services.CodeInvalidInput)
	if er.Message == "" {
		t.Fatalf("expected a message")
	}
	wantStatus(t, h.do(http.MethodPost, "/respawns", &h.admin, domain.Respawn{ServerID: secura.ID, Name: "Cave", MinPlayers: 1}),
		http.StatusCreated)

	w = h.do(http.MethodGet, fmt.Sprintf("/respawns?server_id=%d", secura.ID), nil, nil)
	wantStatus(t, w, http.StatusOK)
	if list := decode[[]domain.Respawn](t, w); len(list) != 1 || list[0].Name != "Cave" {
		t.Fatalf("unexpected respawns: %+v", list)
	}

	// Slot times must be HH:MM.
	wantCode(t, h.do(http.MethodPost, "/slots", &h.admin, domain.Slot{StartTime: "25:00", EndTime: "26:00"}),
		http.StatusBadRequest, services.CodeInvalidInput)

	wantCode(t, h.do(http.MethodGet, "/schedule-periods?active=maybe", nil, nil), http.StatusBadRequest, ErrCodeBadRequest)
	w = h.do(http.MethodGet, "/schedule-periods?active=true", nil, nil)
	wantStatus(t, w, http.StatusOK)
	if list := decode[[]domain.SchedulePeriod](t, w); len(list) != 1 {
		t.Fatalf("active periods = %d, want 1", len(list))
	}

	// Antica still has a character pointing at it.
	wantCode(t, h.do(http.MethodDelete, fmt.Sprintf("/servers/%d", h.server.ID), &h.admin, nil), http.StatusConflict, ErrCodeInUse)
	wantCode(t, h.do(http.MethodDelete, "/servers/999", &h.admin, nil), http.StatusNotFound, ErrCodeNotFound)
}
