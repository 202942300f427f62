// Request HTTP handlers.
//
// This file exposes the hunting request endpoints:
//   - POST   /requests              (create; honors Idempotency-Key)
//   - GET    /requests              (list, paginated, weak ETag)
//   - GET    /requests/{id}
//   - PATCH  /requests/{id}/status  (admin; approval rejects conflicts)
//   - POST   /requests/{id}/cancel  (owner)
//   - DELETE /requests/{id}         (owner or admin)
//
// Idempotency:
// With an Idempotency-Key header, a repeated submission by the same user
// returns the originally created request with 200 and
// `Idempotency-Replayed: true` instead of creating another one.
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/huntschedule/huntschedule-api/internal/domain"
	"github.com/huntschedule/huntschedule-api/internal/http/middleware"
	"github.com/huntschedule/huntschedule-api/internal/repo"
	"github.com/huntschedule/huntschedule-api/internal/services"
)

// PartyMemberRequest names one party member, by local id or by character
// name (verified against Tibia.com when unknown locally).
type PartyMemberRequest struct {
	CharacterID   uint   `json:"character_id,omitempty" example:"12"`
	CharacterName string `json:"character_name,omitempty" binding:"max=64" example:"Sir Knight"`
	RoleInParty   string `json:"role_in_party,omitempty" binding:"max=32" example:"blocker"`
	IsLeader      bool   `json:"is_leader,omitempty"`
}

// CreateRequestRequest is the JSON payload for POST /requests.
type CreateRequestRequest struct {
	ServerID          uint                 `json:"server_id" binding:"required" example:"1"`
	RespawnID         uint                 `json:"respawn_id" binding:"required" example:"3"`
	SlotID            uint                 `json:"slot_id" binding:"required" example:"2"`
	PeriodID          uint                 `json:"period_id" binding:"required" example:"1"`
	LeaderCharacterID uint                 `json:"leader_character_id,omitempty" example:"12"`
	Party             []PartyMemberRequest `json:"party" binding:"dive"`
}

// UpdateStatusRequest is the JSON payload for PATCH /requests/{id}/status.
type UpdateStatusRequest struct {
	StatusID uint    `json:"status_id" binding:"required" example:"2"`
	Reason   *string `json:"reason,omitempty" example:"slot already taken"`
}

// ListRequestsResponse wraps a page of requests and pagination information.
type ListRequestsResponse struct {
	Requests   []domain.Request `json:"requests"`
	Pagination Pagination       `json:"pagination"`
}

// hideContacts clears the owner's email and WhatsApp on requests the viewer
// neither owns nor administers.
func hideContacts(viewer services.Actor, rs ...*domain.Request) {
	if viewer.IsAdmin() {
		return
	}
	for _, r := range rs {
		if r == nil || r.User == nil || r.UserID == viewer.ID {
			continue
		}
		owner := *r.User
		owner.Email, owner.WhatsApp = "", ""
		r.User = &owner
	}
}

func (r CreateRequestRequest) input() services.CreateRequestInput {
	in := services.CreateRequestInput{
		ServerID:          r.ServerID,
		RespawnID:         r.RespawnID,
		SlotID:            r.SlotID,
		PeriodID:          r.PeriodID,
		LeaderCharacterID: r.LeaderCharacterID,
		Party:             make([]services.PartyEntry, 0, len(r.Party)),
	}
	for _, p := range r.Party {
		in.Party = append(in.Party, services.PartyEntry{
			CharacterID:   p.CharacterID,
			CharacterName: strings.TrimSpace(p.CharacterName),
			RoleInParty:   strings.TrimSpace(p.RoleInParty),
			IsLeader:      p.IsLeader,
		})
	}
	return in
}

// CreateRequest godoc
// @ID          createRequest
// @Summary     Submit a hunting request
// @Description Creates the request and its party atomically. Party members given by
// @Description name are resolved locally or verified on Tibia.com.
// @Tags        Requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key  header  string                          false  "Deduplicates retries"
// @Param       body             body    handlers.CreateRequestRequest   true   "Request"
// @Success     201  {object}  domain.Request
// @Success     200  {object}  domain.Request  "Replayed"
// @Header      200  {string}  Idempotency-Replayed  "true"
// @Failure     400  {object}  handlers.ErrorResponse  "Validation error with code and params"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /requests [post]
func (h *Handlers) CreateRequest(c *gin.Context) {
	var req CreateRequestRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	who := actor(c)

	if key, has := middleware.GetIdempotencyKey(c); has {
		r, replayed, err := h.reqs.CreateIdempotent(ctx, who, key, req.input())
		if err != nil {
			failErr(c, err)
			return
		}
		if replayed {
			c.Header(middleware.HeaderIdempotencyReplayed, "true")
			ok(c, http.StatusOK, r)
			return
		}
		ok(c, http.StatusCreated, r)
		return
	}

	r, err := h.reqs.Create(ctx, who, req.input())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, r)
}

// ListRequests godoc
// @ID          listRequests
// @Summary     List requests (paginated)
// @Description Supports weak ETag via If-None-Match and may return 304.
// @Tags        Requests
// @Produce     json
// @Security    BearerAuth
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Param       server_id      query   int     false  "Server"
// @Param       period_id      query   int     false  "Schedule period"
// @Param       status_id      query   int     false  "Status"
// @Param       user_id        query   int     false  "Owner"
// @Param       mine           query   bool    false  "Only the caller's requests"
// @Param       page           query   int     false  "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListRequestsResponse
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Router      /requests [get]
func (h *Handlers) ListRequests(c *gin.Context) {
	ids, valid := queryIDs(c, "server_id", "period_id", "status_id", "user_id")
	if !valid {
		return
	}
	f := repo.RequestFilter{ServerID: ids[0], PeriodID: ids[1], StatusID: ids[2], UserID: ids[3]}
	if c.Query("mine") == "true" {
		f.UserID = actor(c).ID
	}
	page, pageSize := clampPagination(c)
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if count, maxTS, err := h.reqs.Stats(ctx, f); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.UnixNano()
		}
		etag := fmt.Sprintf(`W/"requests:%d.%d.%d.%d:%d:%d:%d:%d"`,
			f.ServerID, f.PeriodID, f.StatusID, f.UserID, page, pageSize, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.reqs.ListPage(ctx, f, page, pageSize)
	if err != nil {
		failErr(c, err)
		return
	}
	for i := range items {
		hideContacts(actor(c), &items[i])
	}
	ok(c, http.StatusOK, ListRequestsResponse{Requests: items, Pagination: newPagination(page, pageSize, total)})
}

// GetRequest godoc
// @ID          getRequest
// @Summary     Get a request with its party and lookups
// @Tags        Requests
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      int  true  "Request ID"
// @Success     200  {object}  domain.Request
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /requests/{id} [get]
func (h *Handlers) GetRequest(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	r, err := h.reqs.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	hideContacts(actor(c), r)
	ok(c, http.StatusOK, r)
}

// UpdateRequestStatus godoc
// @ID          updateRequestStatus
// @Summary     Change a request's status (admin)
// @Description Approving rejects every other pending request for the same
// @Description server, respawn, slot and period. Owners are notified.
// @Tags        Requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path      int                           true  "Request ID"
// @Param       body  body      handlers.UpdateStatusRequest  true  "New status"
// @Success     200   {object}  domain.Request
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse
// @Router      /requests/{id}/status [patch]
func (h *Handlers) UpdateRequestStatus(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.reqs.UpdateStatus(c.Request.Context(), id, req.StatusID, req.Reason)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// CancelRequest godoc
// @ID          cancelRequest
// @Summary     Cancel a pending or approved request (owner)
// @Tags        Requests
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      int  true  "Request ID"
// @Success     200  {object}  domain.Request
// @Failure     400  {object}  handlers.ErrorResponse  "request_not_cancellable"
// @Failure     403  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /requests/{id}/cancel [post]
func (h *Handlers) CancelRequest(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	r, err := h.reqs.Cancel(c.Request.Context(), actor(c), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// DeleteRequest godoc
// @ID          deleteRequest
// @Summary     Delete a request and its party (owner or admin)
// @Tags        Requests
// @Security    BearerAuth
// @Param       id   path  int  true  "Request ID"
// @Success     204  {string}  string  "No Content"
// @Failure     403  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /requests/{id} [delete]
func (h *Handlers) DeleteRequest(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := h.reqs.Delete(c.Request.Context(), actor(c), id); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}
