// Package handlers exposes the REST endpoints of the scheduling API.
//
// Handlers are transport-thin: they bind and check input, call the
// application services through the interfaces below, and translate results
// and service errors into HTTP responses.
package handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/huntschedule/huntschedule-api/internal/domain"
	"github.com/huntschedule/huntschedule-api/internal/http/middleware"
	"github.com/huntschedule/huntschedule-api/internal/repo"
	"github.com/huntschedule/huntschedule-api/internal/services"
	"github.com/huntschedule/huntschedule-api/internal/tibia"
	"github.com/huntschedule/huntschedule-api/internal/utils"
)

//
// Service contracts (context-aware)
//

// AuthService registers accounts and issues tokens.
type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*services.Token, *domain.User, error)
}

// UserService reads accounts and changes roles.
type UserService interface {
	Get(ctx context.Context, id uint) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SetRole(ctx context.Context, id uint, role string) (*domain.User, error)
}

// CharacterService manages characters owned by guild members.
type CharacterService interface {
	List(ctx context.Context, f repo.CharacterFilter) ([]domain.Character, error)
	Get(ctx context.Context, id uint) (*domain.Character, error)
	Create(ctx context.Context, actor services.Actor, in services.CreateCharacterInput) (*domain.Character, error)
	Update(ctx context.Context, actor services.Actor, id uint, in services.UpdateCharacterInput) (*domain.Character, error)
	SetMain(ctx context.Context, actor services.Actor, id uint) (*domain.Character, error)
	Delete(ctx context.Context, actor services.Actor, id uint) error
}

// RequestService runs the hunting request flows.
type RequestService interface {
	Get(ctx context.Context, id uint) (*domain.Request, error)
	ListPage(ctx context.Context, f repo.RequestFilter, page, pageSize int) ([]domain.Request, int64, error)
	Stats(ctx context.Context, f repo.RequestFilter) (int64, *time.Time, error)
	Create(ctx context.Context, actor services.Actor, in services.CreateRequestInput) (*domain.Request, error)
	CreateIdempotent(ctx context.Context, actor services.Actor, key string, in services.CreateRequestInput) (*domain.Request, bool, error)
	UpdateStatus(ctx context.Context, id, statusID uint, reason *string) (*domain.Request, error)
	Cancel(ctx context.Context, actor services.Actor, id uint) (*domain.Request, error)
	Delete(ctx context.Context, actor services.Actor, id uint) error
}

// PointService manages point claims and the point ledger.
type PointService interface {
	CreateClaim(ctx context.Context, actor services.Actor, amount int, reason string, requestID *uint) (*domain.PointClaim, error)
	ListClaims(ctx context.Context, actor services.Actor, userID uint, status string) ([]domain.PointClaim, error)
	Review(ctx context.Context, actor services.Actor, id uint, approve bool, note string) (*domain.PointClaim, error)
	Award(ctx context.Context, actor services.Actor, userID uint, amount int, reason string) (*domain.PointTransaction, error)
	ListTransactions(ctx context.Context, actor services.Actor, userID uint) ([]domain.PointTransaction, error)
}

// CharacterLookup answers external character and world queries. A nil
// result means the lookup service is unavailable.
type CharacterLookup interface {
	ValidateCharacter(ctx context.Context, name string) *tibia.CharacterInfo
	Worlds(ctx context.Context) []string
}

//
// Handler wiring
//

// Deps lists the services the handlers depend on.
type Deps struct {
	Auth       AuthService
	Users      UserService
	Characters CharacterService
	Requests   RequestService
	Points     PointService
	Lookup     CharacterLookup
}

// Handlers groups the account, character, request, point and lookup
// endpoints. Reference data is served by CatalogHandler.
type Handlers struct {
	auth   AuthService
	users  UserService
	chars  CharacterService
	reqs   RequestService
	points PointService
	lookup CharacterLookup
}

// New constructs Handlers bound to d.
func New(d Deps) *Handlers {
	return &Handlers{
		auth:   d.Auth,
		users:  d.Users,
		chars:  d.Characters,
		reqs:   d.Requests,
		points: d.Points,
		lookup: d.Lookup,
	}
}

//
// Shared DTOs and helpers
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

func newPagination(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// clampPagination reads page and page_size; page_size is bounded to [1, 100].
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.IntInRange(c.Query("page"), 1, 1, math.MaxInt32)
	pageSize = utils.IntInRange(c.Query("page_size"), defaultPageSize, 1, maxPageSize)
	return
}

// actor builds the acting user from the authentication middleware.
func actor(c *gin.Context) services.Actor {
	id, _ := middleware.UserID(c)
	return services.Actor{ID: id, Role: middleware.Role(c)}
}

// pathID parses the :id path parameter, answering 400 when it is not a
// positive integer.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// queryID parses an optional numeric filter. Absent yields 0.
func queryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return uint(id), true
}

// queryIDs parses several optional numeric filters in order.
func queryIDs(c *gin.Context, names ...string) ([]uint, bool) {
	out := make([]uint, len(names))
	for i, n := range names {
		v, ok := queryID(c, n)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// bindJSON binds the body into dst, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
