package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// WorldsResponse lists the game worlds known to Tibia.com.
type WorldsResponse struct {
	Worlds []string `json:"worlds"`
}

// LookupCharacter godoc
// @ID          lookupCharacter
// @Summary     Look a character up on Tibia.com
// @Tags        Tibia
// @Produce     json
// @Security    BearerAuth
// @Param       name  path      string  true  "Character name"
// @Success     200   {object}  tibia.CharacterInfo
// @Failure     404   {object}  handlers.ErrorResponse  "Character does not exist"
// @Failure     502   {object}  handlers.ErrorResponse  "validation_unavailable"
// @Router      /tibia/characters/{name} [get]
func (h *Handlers) LookupCharacter(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required")
		return
	}
	info := h.lookup.ValidateCharacter(c.Request.Context(), name)
	switch {
	case info == nil:
		fail(c, http.StatusBadGateway, ErrCodeValidationUnavailable, "character validation is unavailable, try again later")
	case !info.Exists:
		fail(c, http.StatusNotFound, ErrCodeNotFound, `character "`+name+`" not found on Tibia.com`)
	default:
		ok(c, http.StatusOK, info)
	}
}

// ListWorlds godoc
// @ID          listWorlds
// @Summary     List game worlds
// @Tags        Tibia
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.WorldsResponse
// @Failure     502  {object}  handlers.ErrorResponse  "validation_unavailable"
// @Router      /tibia/worlds [get]
func (h *Handlers) ListWorlds(c *gin.Context) {
	worlds := h.lookup.Worlds(c.Request.Context())
	if worlds == nil {
		fail(c, http.StatusBadGateway, ErrCodeValidationUnavailable, "world list is unavailable, try again later")
		return
	}
	ok(c, http.StatusOK, WorldsResponse{Worlds: worlds})
}
