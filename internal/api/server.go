// Package api exposes the contract engine over a RESTful JSON API.
//
// ENDPOINT STRUCTURE:
// - POST /api/v1/contracts          generate a contract from requirements
// - POST /api/v1/contracts/modify   apply a modification batch to a contract
// - GET  /api/v1/templates          list templates
// - GET  /api/v1/clauses            list clause templates
// - GET  /api/v1/clauses/{type}     fetch one clause template
// - GET  /api/v1/clauses/search     fuzzy search clauses
// - GET  /api/v1/clauses/suggest    keyword-based clause suggestion
// - GET  /api/v1/health             system health
//
// The engine holds no session state: the modify endpoint takes the full
// contract document in the request body and returns the new document, so
// any concurrency control across callers belongs to the storage layer in
// front of this API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lexcraft/lexcraft/internal/errors"
	"github.com/lexcraft/lexcraft/internal/models"
	"github.com/lexcraft/lexcraft/internal/service"
)

// APIServer provides the HTTP API with middleware support
type APIServer struct {
	service      *service.Service
	errorHandler *errors.HTTPErrorHandler
	logger       *zap.Logger
	port         int
	server       *http.Server
}

// NewAPIServer creates a new API server instance
func NewAPIServer(svc *service.Service, port int, logger *zap.Logger) *APIServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIServer{
		service:      svc,
		errorHandler: errors.NewHTTPErrorHandler(true, logger),
		logger:       logger,
		port:         port,
	}
}

// Router builds the chi router with all routes and middleware attached
func (s *APIServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.loggingMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.recoverMiddleware)

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/contracts", s.handleGenerate)
		api.Post("/contracts/modify", s.handleModify)
		api.Get("/templates", s.handleTemplates)
		api.Get("/clauses", s.handleClauses)
		api.Get("/clauses/search", s.handleClauseSearch)
		api.Get("/clauses/suggest", s.handleClauseSuggest)
		api.Get("/clauses/{type}", s.handleClauseByType)
		api.Get("/health", s.handleHealth)
	})

	return r
}

// Start begins serving HTTP requests
func (s *APIServer) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("API server starting", zap.Int("port", s.port))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *APIServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests with timing
func (s *APIServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// corsMiddleware handles CORS headers
func (s *APIServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recoverMiddleware handles panics in handlers
func (s *APIServer) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic in handler", zap.Any("panic", rec))
				s.errorHandler.WriteHTTPError(w, errors.InternalError("Internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// APIResponse represents a standardized API response
type APIResponse struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Warnings  []string  `json:"warnings,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// writeResponse writes a standardized JSON response
func (s *APIServer) writeResponse(w http.ResponseWriter, data any, warnings []string, statusCode int) {
	response := APIResponse{
		Success:   statusCode < 400,
		Data:      data,
		Warnings:  warnings,
		Timestamp: time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *APIServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req models.StructuredRequirements
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorHandler.WriteHTTPError(w, errors.ValidationError("request body must be a structured requirements object"))
		return
	}

	result, err := s.service.Generate(&req)
	if err != nil {
		s.errorHandler.WriteHTTPError(w, err)
		return
	}
	s.writeResponse(w, result.Contract, result.Warnings, http.StatusCreated)
}

// modifyRequest is the body of POST /api/v1/contracts/modify
type modifyRequest struct {
	Contract      *models.Contract      `json:"contract"`
	Modifications []models.Modification `json:"modifications"`
}

type modifyResponse struct {
	Contract  *models.Contract `json:"contract"`
	ChangeLog []string         `json:"change_log"`
}

func (s *APIServer) handleModify(w http.ResponseWriter, r *http.Request) {
	var req modifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorHandler.WriteHTTPError(w, errors.ValidationError("request body must carry a contract and a modifications list"))
		return
	}

	result, err := s.service.ApplyModifications(req.Contract, req.Modifications)
	if err != nil {
		s.errorHandler.WriteHTTPError(w, err)
		return
	}
	s.writeResponse(w, modifyResponse{Contract: result.Contract, ChangeLog: result.ChangeLog}, nil, http.StatusOK)
}

func (s *APIServer) handleTemplates(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, s.service.ListTemplates(), nil, http.StatusOK)
}

func (s *APIServer) handleClauses(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, s.service.ListClauses(), nil, http.StatusOK)
}

func (s *APIServer) handleClauseByType(w http.ResponseWriter, r *http.Request) {
	clauseType := chi.URLParam(r, "type")
	clause, err := s.service.GetClause(clauseType)
	if err != nil {
		s.errorHandler.WriteHTTPError(w, err)
		return
	}
	s.writeResponse(w, clause, nil, http.StatusOK)
}

func (s *APIServer) handleClauseSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	s.writeResponse(w, s.service.SearchClauses(query), nil, http.StatusOK)
}

func (s *APIServer) handleClauseSuggest(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		s.errorHandler.WriteHTTPError(w, errors.ValidationError("query parameter 'text' is required"))
		return
	}
	s.writeResponse(w, s.service.SuggestClauses(text), nil, http.StatusOK)
}

func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]any{
		"status":    "healthy",
		"templates": len(s.service.ListTemplates()),
		"clauses":   len(s.service.ListClauses()),
	}
	s.writeResponse(w, health, nil, http.StatusOK)
}
