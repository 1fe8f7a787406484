// Package server exposes the converter over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/coregx/redfa"
	"github.com/coregx/redfa/internal/config"
	"github.com/coregx/redfa/internal/ctxlog"
	"github.com/coregx/redfa/internal/report"
)

// RequestIDHeader carries the per-request ID in responses.
const RequestIDHeader = "X-Request-ID"

// kindInvalidRequest is reported for bodies that are not a conversion request.
const kindInvalidRequest = "InvalidRequest"

const shutdownTimeout = 5 * time.Second

// Server serves POST /convert, GET /explain and GET /healthz.
type Server struct {
	compiler *redfa.Compiler
	config   config.ServerConfig
	logger   *slog.Logger
	handler  http.Handler
}

// New creates a server that compiles with compiler.
func New(compiler *redfa.Compiler, cfg config.ServerConfig, logger *slog.Logger) *Server {
	s := &Server{
		compiler: compiler,
		config:   cfg,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /convert", s.handleConvert)
	mux.HandleFunc("GET /explain", s.handleExplain)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	s.handler = s.withRequestLogger(c.Handler(mux))
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting.", "address", "http://"+s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// withRequestLogger tags each request with an ID and puts a logger carrying
// it into the request context.
func (s *Server) withRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)

		logger := s.logger.With("request_id", id)
		logger.Debug("Request received.", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctxlog.WithLogger(r.Context(), logger)))
	})
}

type convertRequest struct {
	Regex string `json:"regex"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, kindInvalidRequest, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, kindInvalidRequest, "request body must be a JSON object with a regex field")
		return
	}

	res, err := s.compiler.Compile(req.Regex)
	if err != nil {
		kind := redfa.KindOf(err)
		logger.Info("Conversion rejected.", "regex", req.Regex, "kind", kind.String(), "error", err)
		writeError(w, statusFor(kind), kind.String(), err.Error())
		return
	}

	logger.Debug("Conversion finished.", "regex", req.Regex, "dfa_states", len(res.DFA.Nodes))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("regex")
	res, err := s.compiler.Compile(pattern)
	if err != nil {
		kind := redfa.KindOf(err)
		writeError(w, statusFor(kind), kind.String(), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.Page(w, res); err != nil {
		ctxlog.FromContext(r.Context()).Error("Failed to write report.", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// statusFor maps an error kind to an HTTP status.
func statusFor(kind redfa.ErrorKind) int {
	switch kind {
	case redfa.EmptyInput, redfa.MalformedExpression, redfa.InvalidSymbol:
		return http.StatusBadRequest
	case redfa.ResourceLimitExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Kind: kind, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
