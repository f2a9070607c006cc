// Package api exposes the journal and its reports over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/purplebook-dev/purplebook/internal/buildinfo"
	"github.com/purplebook-dev/purplebook/internal/inventory"
	"github.com/purplebook-dev/purplebook/internal/journal"
	"github.com/purplebook-dev/purplebook/internal/model"
	"github.com/purplebook-dev/purplebook/internal/report"
)

const maxBodyBytes = 1 << 20

// Server is the purplebook HTTP API server.
type Server struct {
	journal        *journal.Service
	reports        *report.Service
	stock          *inventory.Service
	logger         *slog.Logger
	validate       *validator.Validate
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(j *journal.Service, reports *report.Service, stock *inventory.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		journal:  j,
		reports:  reports,
		stock:    stock,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": buildinfo.Version,
		})
	})

	r.Route("/v1/owners/{owner}", func(r chi.Router) {
		r.Get("/entries", s.handleListEntries)
		r.Post("/entries", s.handleCreateEntry)
		r.Get("/ledgers", s.handleLedgers)
		r.Get("/ledgers/{account}", s.handleLedger)
		r.Get("/trial-balance", s.handleReport(func(rep *report.Reports) any { return rep.TrialBalance }))
		r.Get("/income-statement", s.handleReport(func(rep *report.Reports) any { return rep.IncomeStatement }))
		r.Get("/equity-statement", s.handleReport(func(rep *report.Reports) any { return rep.EquityStatement }))
		r.Get("/balance-sheet", s.handleReport(func(rep *report.Reports) any { return rep.BalanceSheet }))
		r.Get("/reports", s.handleReport(func(rep *report.Reports) any { return rep }))
		r.Post("/stock/in", s.handleStock(s.stock.In))
		r.Post("/stock/out", s.handleStock(s.stock.Out))
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// handleListEntries returns the owner's entries, newest first unless ?order=insertion.
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	list := s.journal.History
	if r.URL.Query().Get("order") == "insertion" {
		list = s.journal.List
	}
	entries, err := list(r.Context(), owner)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []model.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if !s.decode(w, r, &req) {
		return
	}
	stored, err := s.journal.Append(r.Context(), req.toEntry(chi.URLParam(r, "owner")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleLedgers(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.Generate(r.Context(), chi.URLParam(r, "owner"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	ledgers := rep.Ledgers
	if ledgers == nil {
		ledgers = []report.Ledger{}
	}
	writeJSON(w, http.StatusOK, ledgers)
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	l, err := s.reports.Ledger(r.Context(), chi.URLParam(r, "owner"), chi.URLParam(r, "account"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// handleReport serves one view of the owner's reports. Failed balance checks are part
// of the body, not an error status.
func (s *Server) handleReport(view func(*report.Reports) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := s.reports.Generate(r.Context(), chi.URLParam(r, "owner"))
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view(rep))
	}
}

func (s *Server) handleStock(record func(context.Context, inventory.Movement) (model.JournalEntry, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req stockRequest
		if !s.decode(w, r, &req) {
			return
		}
		stored, err := record(r.Context(), req.toMovement(chi.URLParam(r, "owner")))
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, stored)
	}
}

// decode reads a JSON body into dst and checks its shape. It writes the error response
// and returns false when the body is unusable.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]fieldError, len(fieldErrs))
			for i, fe := range fieldErrs {
				fields[i] = fieldError{Field: fe.Field(), Tag: fe.Tag()}
			}
			writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{
				Message: "request body failed validation",
				Type:    "bad_request",
				Fields:  fields,
			}})
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// writeServiceError maps service errors onto status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *journal.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: errorDetail{
			Message:    err.Error(),
			Type:       "validation_error",
			Violations: verr.Violations,
		}})
	case errors.Is(err, model.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: errorDetail{
			Message: err.Error(),
			Type:    "validation_error",
		}})
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.DebugContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message    string              `json:"message"`
	Type       string              `json:"type"`
	Violations []journal.Violation `json:"violations,omitempty"`
	Fields     []fieldError        `json:"fields,omitempty"`
}

type fieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Message: msg, Type: "error"}})
}
