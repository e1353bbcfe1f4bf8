// Package httpapi exposes ledger reports over a read-only JSON API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/period"
	"github.com/cleared-dev/tally/internal/report"
)

// Reports is the report surface the API serves.
type Reports interface {
	Accounts(ctx context.Context) ([]model.Account, error)
	Statement(ctx context.Context, p ledger.Period) (report.Statement, error)
	Balance(ctx context.Context, accountID string, p ledger.Period) (model.AccountBalance, error)
	TrialBalance(ctx context.Context, p ledger.Period) (ledger.TrialBalanceTotals, error)
}

// Server routes API requests to a Reports implementation.
type Server struct {
	reports   Reports
	logger    *zap.Logger
	yearStart string
	currency  string
	origins   []string
	now       func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithFiscalYearStart sets the MM-DD start used by the fiscal-year preset.
func WithFiscalYearStart(s string) Option {
	return func(srv *Server) { srv.yearStart = s }
}

// WithCurrency labels report amounts.
func WithCurrency(c string) Option {
	return func(srv *Server) { srv.currency = c }
}

// WithAllowedOrigins enables CORS for the given origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(srv *Server) { srv.origins = origins }
}

// WithClock replaces time.Now when resolving presets.
func WithClock(now func() time.Time) Option {
	return func(srv *Server) { srv.now = now }
}

// NewServer creates a Server.
func NewServer(reports Reports, logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{reports: reports, logger: logger, yearStart: "01-01", now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.healthz)
	r.Get("/accounts", s.listAccounts)
	r.Get("/accounts/{id}/balance", s.accountBalance)
	r.Route("/reports", func(r chi.Router) {
		r.Get("/statement", s.statement)
		r.Get("/trial-balance", s.trialBalance)
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accts, err := s.reports.Accounts(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]accountJSON, len(accts))
	for i, a := range accts {
		out[i] = toAccountJSON(a)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) accountBalance(w http.ResponseWriter, r *http.Request) {
	p, ok := s.period(w, r)
	if !ok {
		return
	}
	b, err := s.reports.Balance(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{
		Period:   toPeriodJSON(p),
		Currency: s.currency,
		Balance:  toBalanceJSON(b),
	})
}

func (s *Server) statement(w http.ResponseWriter, r *http.Request) {
	p, ok := s.period(w, r)
	if !ok {
		return
	}
	st, err := s.reports.Statement(r.Context(), p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatementJSON(st, s.currency))
}

func (s *Server) trialBalance(w http.ResponseWriter, r *http.Request) {
	p, ok := s.period(w, r)
	if !ok {
		return
	}
	tb, err := s.reports.TrialBalance(r.Context(), p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrialBalanceJSON(p, s.currency, tb))
}

func (s *Server) period(w http.ResponseWriter, r *http.Request) (ledger.Period, bool) {
	q := r.URL.Query()
	p, err := period.Select(q.Get("period"), q.Get("from"), q.Get("to"), s.now(), s.yearStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return ledger.Period{}, false
	}
	return p, true
}

// fail maps report errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var refErr *ledger.ReferenceError
	switch {
	case errors.As(err, &refErr):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, accounts.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInvalidAccount):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.Canceled):
		s.logger.Debug("request canceled", zap.String("path", r.URL.Path))
	default:
		s.logger.Error("report failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
