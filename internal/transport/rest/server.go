// Package rest exposes the listing API over HTTP. It is the single place
// where the error taxonomy is translated into status codes and the uniform
// {title, description} failure body.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Mthew/million-real-state/internal/domain"
	"github.com/Mthew/million-real-state/internal/logger"
)

// QueryService is the query-engine contract the handlers call.
type QueryService interface {
	List(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, error)
	GetDetail(ctx context.Context, id string) (*domain.PropertyDetail, error)
}

// Server holds the handler dependencies.
type Server struct {
	properties QueryService
	health     func(ctx context.Context) error
	logger     *zap.Logger
}

// NewServer creates the HTTP API server.
func NewServer(properties QueryService, log *zap.Logger) *Server {
	return &Server{properties: properties, logger: log}
}

// WithHealth sets the readiness probe behind GET /healthz.
func (s *Server) WithHealth(check func(ctx context.Context) error) *Server {
	s.health = check
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/api/properties", s.handleListProperties)
	r.Get("/api/properties/{id}", s.handleGetPropertyDetail)
	r.Get("/healthz", s.handleHealth)
}

// handleListProperties handles GET /api/properties.
func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	properties, err := s.properties.List(r.Context(), filter)
	if err != nil {
		s.writeFailure(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaries(properties))
}

// handleGetPropertyDetail handles GET /api/properties/{id}.
func (s *Server) handleGetPropertyDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := s.properties.GetDetail(r.Context(), id)
	if err != nil {
		s.writeFailure(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toDetail(detail))
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, "Unavailable",
				"The document store is not reachable.")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseFilter reads the optional query criteria. Blank parameters impose no
// constraint; malformed price tokens are a caller error.
func parseFilter(r *http.Request) (domain.PropertyFilter, error) {
	q := r.URL.Query()
	filter := domain.PropertyFilter{
		Name:    strings.TrimSpace(q.Get("name")),
		Address: strings.TrimSpace(q.Get("address")),
	}

	if raw := q.Get("minPrice"); raw != "" {
		min, err := domain.ParseDecimal(raw)
		if err != nil {
			return domain.PropertyFilter{}, errors.New("minPrice must be a decimal number")
		}
		filter.MinPrice = &min
	}
	if raw := q.Get("maxPrice"); raw != "" {
		max, err := domain.ParseDecimal(raw)
		if err != nil {
			return domain.PropertyFilter{}, errors.New("maxPrice must be a decimal number")
		}
		filter.MaxPrice = &max
	}
	return filter, nil
}

// writeFailure maps the error taxonomy onto transport semantics. Anything
// that is neither a validation nor a not-found failure is an infrastructure
// error: logged, answered with a generic 500 body, never with internals.
func (s *Server) writeFailure(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "Invalid property id",
			"The property id is not a valid identifier token.")
	case errors.Is(err, domain.ErrPropertyNotFound):
		writeError(w, http.StatusNotFound, "Property not found",
			"No property exists with the requested id.")
	default:
		s.logger.Error("query failed",
			zap.String("request_id", logger.RequestID(ctx)),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error",
			"An unexpected internal server error has occurred.")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, title, description string) {
	writeJSON(w, status, errorResponse{Title: title, Description: description})
}
