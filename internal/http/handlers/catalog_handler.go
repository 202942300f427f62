package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/huntschedule/huntschedule-api/internal/repo"
)

// CatalogStore is the CRUD contract of one reference-data table.
type CatalogStore[T any] interface {
	List(ctx context.Context, scopes ...repo.Scope) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, v *T) (*T, error)
	Update(ctx context.Context, id uint, v *T) (*T, error)
	Delete(ctx context.Context, id uint) error
}

// Filter turns query parameters into list scopes. It writes the error
// response itself and returns false on invalid input.
type Filter func(c *gin.Context) ([]repo.Scope, bool)

// CatalogHandler serves list/get/create/update/delete for one table of
// reference data (servers, respawns, slots, ...).
type CatalogHandler[T any] struct {
	store  CatalogStore[T]
	filter Filter
}

// NewCatalogHandler binds store; filter may be nil.
func NewCatalogHandler[T any](store CatalogStore[T], filter Filter) *CatalogHandler[T] {
	return &CatalogHandler[T]{store: store, filter: filter}
}

// Mount registers the read routes on public and the write routes on admin.
func (h *CatalogHandler[T]) Mount(public, admin gin.IRoutes, path string) {
	public.GET(path, h.List)
	public.GET(path+"/:id", h.Get)
	admin.POST(path, h.Create)
	admin.PUT(path+"/:id", h.Update)
	admin.DELETE(path+"/:id", h.Delete)
}

func (h *CatalogHandler[T]) List(c *gin.Context) {
	var scopes []repo.Scope
	if h.filter != nil {
		var valid bool
		if scopes, valid = h.filter(c); !valid {
			return
		}
	}
	list, err := h.store.List(c.Request.Context(), scopes...)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, list)
}

func (h *CatalogHandler[T]) Get(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	v, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, v)
}

func (h *CatalogHandler[T]) Create(c *gin.Context) {
	var v T
	if !bindJSON(c, &v) {
		return
	}
	out, err := h.store.Create(c.Request.Context(), &v)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, out)
}

func (h *CatalogHandler[T]) Update(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var v T
	if !bindJSON(c, &v) {
		return
	}
	out, err := h.store.Update(c.Request.Context(), id, &v)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// FilterByServer scopes respawns with ?server_id=.
func FilterByServer(c *gin.Context) ([]repo.Scope, bool) {
	id, valid := queryID(c, "server_id")
	if !valid || id == 0 {
		return nil, valid
	}
	return []repo.Scope{func(q *gorm.DB) *gorm.DB { return q.Where("server_id = ?", id) }}, true
}

// FilterByActive scopes schedule periods with ?active=true|false.
func FilterByActive(c *gin.Context) ([]repo.Scope, bool) {
	raw := c.Query("active")
	if raw == "" {
		return nil, true
	}
	active, err := strconv.ParseBool(raw)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "active must be a boolean")
		return nil, false
	}
	return []repo.Scope{func(q *gorm.DB) *gorm.DB { return q.Where("is_active = ?", active) }}, true
}
