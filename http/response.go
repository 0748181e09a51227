package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sagarc03/roster"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Message string `json:"message"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Message: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes appropriate error response based on error type.
// Not-found messages carry the label of kind.
func HandleError(w http.ResponseWriter, kind roster.Kind, err error) {
	switch {
	case errors.Is(err, roster.ErrNotFound):
		WriteError(w, http.StatusNotFound, kind.NotFoundMessage())
	case errors.Is(err, ErrBodyTooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, MessageBodyTooLarge)
	case errors.Is(err, ErrInvalidJSON), errors.Is(err, roster.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, MessageInvalidJSON)
	case errors.Is(err, roster.ErrUnknownKind):
		WriteError(w, http.StatusNotFound, MessageRouteNotFound)
	case errors.Is(err, roster.ErrInternal):
		slog.Error("internal error", "kind", kind.Name, "error", err)
		WriteError(w, http.StatusInternalServerError, MessageInternal)
		return
	default:
		slog.Error("request error", "kind", kind.Name, "error", err)
		WriteError(w, http.StatusInternalServerError, MessageInternal)
		return
	}

	slog.Debug("request rejected", "kind", kind.Name, "error", err)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

// WriteText writes a plain text response.
func WriteText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}
