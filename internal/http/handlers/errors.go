// Package handlers defines the HTTP-layer error codes used across the API.
//
// Every error response carries one of these codes next to the HTTP status.
// Business-rule violations reuse the service's validation code (for example
// "party_too_small") and add a "params" object so clients can render a
// localized message:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "party_too_small",
//	  "message": "respawn \"Library\" requires at least 3 players, 2 provided",
//	  "params": {"respawn": "Library", "required": 3, "provided": 2}
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeInvalidCredentials    = "invalid_credentials"
	ErrCodeUsernameTaken         = "username_taken"
	ErrCodeAlreadyExists         = "already_exists"
	ErrCodeInUse                 = "in_use"
	ErrCodeClaimAlreadyReviewed  = "claim_already_reviewed"
	ErrCodeValidationUnavailable = "validation_unavailable"
)
