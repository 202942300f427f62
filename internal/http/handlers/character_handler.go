package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huntschedule/huntschedule-api/internal/repo"
	"github.com/huntschedule/huntschedule-api/internal/services"
)

// CreateCharacterRequest is the JSON payload for POST /characters.
type CreateCharacterRequest struct {
	ServerID uint   `json:"server_id" binding:"required" example:"1"`
	Name     string `json:"name" binding:"required,max=64" example:"Sir Knight"`
	IsMain   bool   `json:"is_main" example:"true"`
}

// UpdateCharacterRequest is the JSON payload for PUT /characters/{id}.
// Omitted fields are left unchanged.
type UpdateCharacterRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=64"`
	Vocation *string `json:"vocation" binding:"omitempty,max=64"`
	Level    *int    `json:"level"`
	IsMain   *bool   `json:"is_main"`
}

// ListCharacters godoc
// @ID          listCharacters
// @Summary     List characters
// @Description Filters by owner (user_id, or mine=true for the caller) and server.
// @Tags        Characters
// @Produce     json
// @Security    BearerAuth
// @Param       user_id    query  int   false  "Owner"
// @Param       server_id  query  int   false  "Server"
// @Param       mine       query  bool  false  "Only the caller's characters"
// @Success     200  {array}   domain.Character
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /characters [get]
func (h *Handlers) ListCharacters(c *gin.Context) {
	ids, valid := queryIDs(c, "user_id", "server_id")
	if !valid {
		return
	}
	f := repo.CharacterFilter{UserID: ids[0], ServerID: ids[1]}
	if c.Query("mine") == "true" {
		f.UserID = actor(c).ID
	}
	list, err := h.chars.List(c.Request.Context(), f)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, list)
}

// GetCharacter godoc
// @ID          getCharacter
// @Summary     Get a character
// @Tags        Characters
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      int  true  "Character ID"
// @Success     200  {object}  domain.Character
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /characters/{id} [get]
func (h *Handlers) GetCharacter(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	ch, err := h.chars.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ch)
}

// CreateCharacter godoc
// @ID          createCharacter
// @Summary     Register a character for the caller
// @Description Characters not yet known locally are verified against Tibia.com;
// @Description unknown names and world mismatches are rejected with 400.
// @Tags        Characters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.CreateCharacterRequest  true  "Character"
// @Success     201   {object}  domain.Character
// @Failure     400   {object}  handlers.ErrorResponse  "character_not_found, character_world_mismatch"
// @Failure     404   {object}  handlers.ErrorResponse  "Server not found"
// @Failure     409   {object}  handlers.ErrorResponse  "Already owned"
// @Router      /characters [post]
func (h *Handlers) CreateCharacter(c *gin.Context) {
	var req CreateCharacterRequest
	if !bindJSON(c, &req) {
		return
	}
	ch, err := h.chars.Create(c.Request.Context(), actor(c), services.CreateCharacterInput{
		ServerID: req.ServerID,
		Name:     req.Name,
		IsMain:   req.IsMain,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, ch)
}

// UpdateCharacter godoc
// @ID          updateCharacter
// @Summary     Update a character (owner or admin)
// @Description A new name is verified on Tibia.com like a new character.
// @Tags        Characters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path      int                              true  "Character ID"
// @Param       body  body      handlers.UpdateCharacterRequest  true  "Changes"
// @Success     200   {object}  domain.Character
// @Failure     400   {object}  handlers.ErrorResponse  "character_not_found or character_world_mismatch"
// @Failure     403   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse
// @Failure     409   {object}  handlers.ErrorResponse  "Name taken on this server"
// @Router      /characters/{id} [put]
func (h *Handlers) UpdateCharacter(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req UpdateCharacterRequest
	if !bindJSON(c, &req) {
		return
	}
	ch, err := h.chars.Update(c.Request.Context(), actor(c), id, services.UpdateCharacterInput{
		Name:     req.Name,
		Vocation: req.Vocation,
		Level:    req.Level,
		IsMain:   req.IsMain,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ch)
}

// SetMainCharacter godoc
// @ID          setMainCharacter
// @Summary     Mark a character as the owner's main
// @Description Clears the flag on the owner's other characters.
// @Tags        Characters
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      int  true  "Character ID"
// @Success     200  {object}  domain.Character
// @Failure     403  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /characters/{id}/main [put]
func (h *Handlers) SetMainCharacter(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	ch, err := h.chars.SetMain(c.Request.Context(), actor(c), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ch)
}

// DeleteCharacter godoc
// @ID          deleteCharacter
// @Summary     Delete a character (owner or admin)
// @Tags        Characters
// @Security    BearerAuth
// @Param       id   path  int  true  "Character ID"
// @Success     204  {string}  string  "No Content"
// @Failure     403  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /characters/{id} [delete]
func (h *Handlers) DeleteCharacter(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := h.chars.Delete(c.Request.Context(), actor(c), id); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}
