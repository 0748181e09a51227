package clientcli

import "errors"

// Errors for profile operations.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoProfiles      = errors.New("no profiles configured")
)

// Errors for configuration validation.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	ErrInvalidOutput   = errors.New("invalid output format, expected table or json")
)

// Errors for input validation.
var (
	ErrInvalidKind        = errors.New("invalid kind")
	ErrNoKind             = errors.New("no kind given and no default kind configured")
	ErrInvalidID          = errors.New("invalid id")
	ErrNoIDs              = errors.New("no ids provided")
	ErrNoFields           = errors.New("no fields provided")
	ErrInvalidAssignment  = errors.New("invalid assignment, expected key=value")
	ErrUnexpectedResponse = errors.New("unexpected response")
)
