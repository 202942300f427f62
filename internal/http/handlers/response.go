// Package handlers provides the HTTP handlers for the public API.
//
// This file holds the response helpers shared by all endpoints: the error
// envelope, the mapping from service errors to statuses, and small writers
// for success responses.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huntschedule/huntschedule-api/internal/http/middleware"
	"github.com/huntschedule/huntschedule-api/internal/services"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"request not found"`
	// Values interpolated into Message, for client-side localization
	Params map[string]any `json:"params,omitempty" swaggertype:"object"`
}

// fail aborts with an ErrorResponse. 5xx responses are logged with the
// request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	failWith(c, status, ErrorResponse{Code: code, Message: msg})
}

func failWith(c *gin.Context, status int, resp ErrorResponse) {
	resp.RequestID = c.Writer.Header().Get("X-Request-ID")
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", resp.Code).
			Str("message", resp.Message).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail, used by the router for 404/405.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// errorMap pairs service sentinels with their HTTP status and code.
var errorMap = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrUserNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrCharacterNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrRequestNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrServerNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrRespawnNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrSlotNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrPeriodNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrStatusNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrClaimNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrEntityNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrForbidden, http.StatusForbidden, ErrCodeForbidden},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, ErrCodeInvalidCredentials},
	{services.ErrInvalidToken, http.StatusUnauthorized, ErrCodeUnauthorized},
	{services.ErrUsernameTaken, http.StatusConflict, ErrCodeUsernameTaken},
	{services.ErrAlreadyExists, http.StatusConflict, ErrCodeAlreadyExists},
	{services.ErrClaimAlreadyReviewed, http.StatusConflict, ErrCodeClaimAlreadyReviewed},
	{services.ErrInUse, http.StatusConflict, ErrCodeInUse},
}

// failErr translates a service error into a response. Validation errors
// become 400 with their code and params; unknown errors become 500 with a
// generic message.
func failErr(c *gin.Context, err error) {
	if ve, ok := services.AsValidation(err); ok {
		failWith(c, http.StatusBadRequest, ErrorResponse{Code: ve.Code, Message: ve.Message, Params: ve.Params})
		return
	}
	for _, m := range errorMap {
		if errors.Is(err, m.err) {
			fail(c, m.status, m.code, err.Error())
			return
		}
	}
	_ = c.Error(err)
	middleware.LoggerFrom(c).Error().Err(err).Msg("unexpected error")
	fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
}

// ok writes body as JSON with status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes 204.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
