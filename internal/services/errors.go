// Package services defines the business logic for accounts, characters,
// hunting requests, reference data and points. This file centralizes the
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"
	"fmt"
)

// Not-found errors.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrCharacterNotFound = errors.New("character not found")
	ErrRequestNotFound   = errors.New("request not found")
	ErrServerNotFound    = errors.New("server not found")
	ErrRespawnNotFound   = errors.New("respawn not found")
	ErrSlotNotFound      = errors.New("slot not found")
	ErrPeriodNotFound    = errors.New("schedule period not found")
	ErrStatusNotFound    = errors.New("request status not found")
	ErrClaimNotFound     = errors.New("point claim not found")

	// ErrEntityNotFound is returned by the generic reference-data service.
	ErrEntityNotFound = errors.New("record not found")
)

// Access and conflict errors.
var (
	// ErrForbidden is returned when the acting user may not touch the resource.
	ErrForbidden = errors.New("not allowed")

	// ErrInvalidCredentials covers unknown usernames and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken is returned for malformed, expired or forged tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUsernameTaken is returned on registration with an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrAlreadyExists is returned when a unique key collides.
	ErrAlreadyExists = errors.New("already exists")

	// ErrClaimAlreadyReviewed is returned when reviewing a non-pending claim.
	ErrClaimAlreadyReviewed = errors.New("point claim already reviewed")

	// ErrInUse is returned when deleting a row still referenced elsewhere.
	ErrInUse = errors.New("record is still referenced")
)

// Validation codes carried by ValidationError. Clients localize on them.
const (
	CodeInvalidInput           = "invalid_input"
	CodePartyEmpty             = "party_empty"
	CodePartyTooSmall          = "party_too_small"
	CodePartyTooLarge          = "party_too_large"
	CodeInvalidPartyMember     = "invalid_party_member"
	CodeDuplicatePartyMember   = "duplicate_party_member"
	CodeCharacterNotFound      = "character_not_found"
	CodeCharacterWorldMismatch = "character_world_mismatch"
	CodeCharacterServer        = "character_server_mismatch"
	CodeRespawnServer          = "respawn_server_mismatch"
	CodeInvalidStatus          = "invalid_status"
	CodeNotCancellable         = "request_not_cancellable"
	CodeInvalidAmount          = "invalid_amount"
)

// ValidationError reports a business-rule violation. Params carries the
// values interpolated into Message so clients can render their own text.
type ValidationError struct {
	Code    string
	Message string
	Params  map[string]any
}

func (e *ValidationError) Error() string { return e.Message }

// invalid builds a ValidationError with a formatted message.
func invalid(code string, params map[string]any, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...), Params: params}
}

// AsValidation unwraps err into a *ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
