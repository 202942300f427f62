package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/huntschedule/huntschedule-api/internal/domain"
	"github.com/huntschedule/huntschedule-api/internal/services"
)

// RegisterRequest is the JSON payload for creating an account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64" example:"knightmare"`
	Password string `json:"password" binding:"required,min=6,max=128" example:"s3cret!"`
	Email    string `json:"email" binding:"omitempty,email,max=255" example:"knight@guild.example"`
	WhatsApp string `json:"whatsapp" binding:"omitempty,max=32" example:"+5511999990000"`
	Language string `json:"language" binding:"omitempty,max=16" example:"pt-BR"`
}

// LoginRequest is the JSON payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"knightmare"`
	Password string `json:"password" binding:"required" example:"s3cret!"`
}

// LoginResponse carries the bearer token and the authenticated user.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// SetRoleRequest is the JSON payload for PUT /users/{id}/role.
type SetRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin" example:"admin"`
}

// Register godoc
// @ID          register
// @Summary     Create an account
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.RegisterRequest  true  "Account"
// @Success     201   {object}  domain.User
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     409   {object}  handlers.ErrorResponse  "Username taken"
// @Router      /auth/register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.auth.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    strings.TrimSpace(req.Email),
		WhatsApp: strings.TrimSpace(req.WhatsApp),
		Language: strings.TrimSpace(req.Language),
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, u)
}

// Login godoc
// @ID          login
// @Summary     Exchange credentials for a bearer token
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.LoginRequest  true  "Credentials"
// @Success     200   {object}  handlers.LoginResponse
// @Failure     401   {object}  handlers.ErrorResponse  "Invalid credentials"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	tok, u, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, LoginResponse{Token: tok.Token, ExpiresAt: tok.ExpiresAt, User: u})
}

// Me godoc
// @ID          me
// @Summary     Current user
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  domain.User
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /users/me [get]
func (h *Handlers) Me(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), actor(c).ID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List accounts (admin)
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
// @Success     200  {array}   domain.User
// @Failure     403  {object}  handlers.ErrorResponse
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, list)
}

// SetUserRole godoc
// @ID          setUserRole
// @Summary     Change an account's role (admin)
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path      int                       true  "User ID"
// @Param       body  body      handlers.SetRoleRequest   true  "Role"
// @Success     200   {object}  domain.User
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse
// @Router      /users/{id}/role [put]
func (h *Handlers) SetUserRole(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	var req SetRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.users.SetRole(c.Request.Context(), id, req.Role)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}
