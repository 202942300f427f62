package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateClaimRequest is the JSON payload for POST /point-claims.
type CreateClaimRequest struct {
	Amount    int    `json:"amount" binding:"required" example:"15"`
	Reason    string `json:"reason" binding:"required,max=500" example:"Ferumbras kill"`
	RequestID *uint  `json:"request_id,omitempty" example:"42"`
}

// ReviewClaimRequest is the JSON payload for POST /point-claims/{id}/review.
type ReviewClaimRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note,omitempty" binding:"max=500" example:"screenshot checked"`
}

// AwardRequest is the JSON payload for POST /point-transactions.
type AwardRequest struct {
	UserID uint   `json:"user_id" binding:"required" example:"7"`
	Amount int    `json:"amount" binding:"required" example:"-5"`
	Reason string `json:"reason" binding:"required,max=500" example:"no-show"`
}

// CreateClaim godoc
// @ID          createPointClaim
// @Summary     Claim points for review
// @Tags        Points
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.CreateClaimRequest  true  "Claim"
// @Success     201   {object}  domain.PointClaim
// @Failure     400   {object}  handlers.ErrorResponse
// @Router      /point-claims [post]
func (h *Handlers) CreateClaim(c *gin.Context) {
	var req CreateClaimRequest
	if !bindJSON(c, &req) {
		return
	}
	claim, err := h.points.CreateClaim(c.Request.Context(), actor(c), req.Amount, req.Reason, req.RequestID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, claim)
}

// ListClaims godoc
// @ID          listPointClaims
// @Summary     List point claims
// @Description Admins see all claims; members see their own.
// @Tags        Points
// @Produce     json
// @Security    BearerAuth
// @Param       user_id  query  int     false  "Owner (admin only)"
// @Param       status   query  string  false  "pending, approved or rejected"
// @Success     200  {array}  domain.PointClaim
// @Router      /point-claims [get]
func (h *Handlers) ListClaims(c *gin.Context) {
	userID, valid := queryID(c, "user_id")
	if !valid {
		return
	}
	list, err := h.points.ListClaims(c.Request.Context(), actor(c), userID, c.Query("status"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, list)
}

// ReviewClaim godoc
// @ID          reviewPointClaim
// @Summary     Approve or reject a pending claim (admin)
// @Tags        Points
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path      int                          true  "Claim ID"
// @Param       body  body      handlers.ReviewClaimRequest  true  "Decision"
// @Success     200   {object}  domain.PointClaim
// @Failure     404   {object}  handlers.ErrorResponse
// @Failure     409   {object}  handlers.ErrorResponse  "claim_already_reviewed"
// @Router      /point-claims/{id}/review [post]
func (h *Handlers) ReviewClaim(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req ReviewClaimRequest
	if !bindJSON(c, &req) {
		return
	}
	claim, err := h.points.Review(c.Request.Context(), actor(c), id, req.Approve, req.Note)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, claim)
}

// AwardPoints godoc
// @ID          awardPoints
// @Summary     Credit or debit a member directly (admin)
// @Tags        Points
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.AwardRequest  true  "Transaction"
// @Success     201   {object}  domain.PointTransaction
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse
// @Router      /point-transactions [post]
func (h *Handlers) AwardPoints(c *gin.Context) {
	var req AwardRequest
	if !bindJSON(c, &req) {
		return
	}
	tx, err := h.points.Award(c.Request.Context(), actor(c), req.UserID, req.Amount, req.Reason)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, tx)
}

// ListTransactions godoc
// @ID          listPointTransactions
// @Summary     List point ledger rows
// @Description Admins see all rows (optionally filtered); members see their own.
// @Tags        Points
// @Produce     json
// @Security    BearerAuth
// @Param       user_id  query  int  false  "Owner (admin only)"
// @Success     200  {array}  domain.PointTransaction
// @Router      /point-transactions [get]
func (h *Handlers) ListTransactions(c *gin.Context) {
	userID, valid := queryID(c, "user_id")
	if !valid {
		return
	}
	list, err := h.points.ListTransactions(c.Request.Context(), actor(c), userID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, list)
}
