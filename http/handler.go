package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sagarc03/roster"
)

type Service interface {
	Kinds() roster.Kinds
	List(ctx context.Context, kind string) ([]roster.Record, error)
	Get(ctx context.Context, kind string, id int) (roster.Record, error)
	Create(ctx context.Context, kind string, fields roster.Fields) (roster.Record, error)
	Update(ctx context.Context, kind string, id int, patch roster.Fields) (roster.Record, error)
	Delete(ctx context.Context, kind string, id int) error
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	// MaxBodySize caps request bodies in bytes. 0 means unlimited.
	MaxBodySize int64
	CORS        CORSConfig
	// Logger receives the access log. Defaults to slog.Default().
	Logger *slog.Logger
}

// Handler serves the CRUD routes of every kind registered with the service.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	return &Handler{
		config:  *config,
		service: service,
	}
}

// Router returns an http.Handler with one route group per kind.
// Requests whose first segment is not a kind get the liveness text.
func (h *Handler) Router() http.Handler {
	return h.router()
}

func (h *Handler) router() chi.Router {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(h.config.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
	r.Use(middleware.StripSlashes)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Use(BodyLimitMiddleware(h.config.MaxBodySize))

	for _, kind := range h.service.Kinds() {
		r.Route("/"+kind.Name, func(r chi.Router) {
			r.Get("/", h.handleList(kind))
			r.Post("/", h.handleCreate(kind))
			r.Get("/{id}", h.handleGet(kind))
			r.Put("/{id}", h.handleUpdate(kind))
			r.Delete("/{id}", h.handleDelete(kind))

			r.NotFound(handleRouteNotFound)
			r.MethodNotAllowed(handleRouteNotFound)
		})
	}

	r.NotFound(handleRunning)
	r.MethodNotAllowed(handleRunning)

	return r
}

// Route is one entry of the route table.
type Route struct {
	Method  string
	Pattern string
}

// Routes walks the router and lists every method and pattern it serves.
func (h *Handler) Routes() ([]Route, error) {
	var routes []Route
	walk := func(method, pattern string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if len(pattern) > 1 {
			pattern = strings.TrimSuffix(pattern, "/")
		}
		routes = append(routes, Route{Method: method, Pattern: pattern})
		return nil
	}

	if err := chi.Walk(h.router(), walk); err != nil {
		return nil, fmt.Errorf("walk routes: %w", err)
	}

	return routes, nil
}

func (h *Handler) handleList(kind roster.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := h.service.List(r.Context(), kind.Name)
		if err != nil {
			HandleError(w, kind, err)
			return
		}

		_ = WriteJSON(w, http.StatusOK, records)
	}
}

func (h *Handler) handleGet(kind roster.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := roster.ParseID(chi.URLParam(r, "id"))
		if !ok {
			WriteError(w, http.StatusNotFound, kind.NotFoundMessage())
			return
		}

		rec, err := h.service.Get(r.Context(), kind.Name, id)
		if err != nil {
			HandleError(w, kind, err)
			return
		}

		_ = WriteJSON(w, http.StatusOK, rec)
	}
}

func (h *Handler) handleCreate(kind roster.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := decodeFields(r)
		if err != nil {
			HandleError(w, kind, err)
			return
		}

		rec, err := h.service.Create(r.Context(), kind.Name, fields)
		if err != nil {
			HandleError(w, kind, err)
			return
		}

		_ = WriteJSON(w, http.StatusCreated, rec)
	}
}

// handleUpdate decodes the body before resolving the id, so a malformed
// body is a 400 even when the record does not exist.
func (h *Handler) handleUpdate(kind roster.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patch, err := decodeFields(r)
		if err != nil {
			HandleError(w, kind, err)
			return
		}

		id, ok := roster.ParseID(chi.URLParam(r, "id"))
		if !ok {
			WriteError(w, http.StatusNotFound, kind.NotFoundMessage())
			return
		}

		rec, err := h.service.Update(r.Context(), kind.Name, id, patch)
		if err != nil {
			HandleError(w, kind, err)
			return
		}

		_ = WriteJSON(w, http.StatusOK, rec)
	}
}

func (h *Handler) handleDelete(kind roster.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := roster.ParseID(chi.URLParam(r, "id"))
		if !ok {
			WriteError(w, http.StatusNotFound, kind.NotFoundMessage())
			return
		}

		if err := h.service.Delete(r.Context(), kind.Name, id); err != nil {
			HandleError(w, kind, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleRouteNotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, MessageRouteNotFound)
}

func handleRunning(w http.ResponseWriter, _ *http.Request) {
	WriteText(w, http.StatusOK, MessageRunning)
}

// decodeFields reads the whole body and decodes it as a single JSON object.
func decodeFields(r *http.Request) (roster.Fields, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, maxErr.Limit)
		}
		return nil, fmt.Errorf("%w: read body: %v", ErrInvalidJSON, err)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var fields roster.Fields
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: body is not an object", ErrInvalidJSON)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after object", ErrInvalidJSON)
	}

	return fields, nil
}
