package http

import "errors"

var (
	// ErrInvalidJSON is returned when a request body is not a JSON object.
	ErrInvalidJSON = errors.New("invalid json")

	// ErrBodyTooLarge is returned when a request body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")
)

// Response messages. Clients match on these, keep them stable.
const (
	MessageInvalidJSON   = "Invalid JSON"
	MessageRouteNotFound = "Route not found"
	MessageBodyTooLarge  = "Request body too large"
	MessageInternal      = "Internal server error"
	MessageRunning       = "server is running"
)
