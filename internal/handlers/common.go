// Package handlers exposes the configurator over HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/pricing"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/store"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/submission"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/wizard"
)

// PricingAdmin reads and publishes pricing tables; store.Postgres satisfies it.
type PricingAdmin interface {
	Fetch(ctx context.Context, productLine string) (*pricing.Table, error)
	Publish(ctx context.Context, productLine string, t *pricing.Table) (*pricing.Table, error)
}

// LeadLister lists stored leads; store.Postgres satisfies it.
type LeadLister interface {
	ListLeads(ctx context.Context, f store.LeadFilter) ([]submission.Record, error)
}

// Env holds the handler dependencies.
type Env struct {
	Wizard  *wizard.Service
	Pricing PricingAdmin
	Leads   LeadLister
	Logger  *zap.Logger

	// admin API, HTTP basic auth against a bcrypt hash
	AdminUser         string
	AdminPasswordHash string

	// MaxUploadBytes caps the multipart body of a submit; 0 means 10 MB.
	MaxUploadBytes int64
	SubmitLimiter  *IPLimiter
}

func (e *Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps service errors to status codes.
func (e *Env) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *submission.ValidationError
		ferr *domain.FieldError
		terr *pricing.InvalidTableError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.As(err, &ferr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  ferr.Msg,
			Fields: map[string]string{string(ferr.Field): ferr.Msg},
		})
	case errors.As(err, &terr):
		writeError(w, http.StatusBadRequest, terr.Error())
	case errors.Is(err, wizard.ErrFieldNotInStep), errors.Is(err, wizard.ErrNoAdvicePending):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, wizard.ErrSessionNotFound), errors.Is(err, wizard.ErrUnknownProductLine),
		errors.Is(err, pricing.ErrNoTable):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, wizard.ErrNotFinalStep), errors.Is(err, wizard.ErrRefreshNotAllowed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, submission.ErrUpload), errors.Is(err, submission.ErrPersistence):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, err.Error())
	default:
		e.logger().Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// WithCORS allows the given origins; "*" or an empty list allows any.
// Otherwise the request Origin is echoed back when it is listed.
func WithCORS(origins []string, next http.Handler) http.Handler {
	allowAny := len(origins) == 0
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			allowAny = true
		}
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if allowAny {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			w.Header().Add("Vary", "Origin")
			if origin := r.Header.Get("Origin"); origin != "" && allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
		}
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
