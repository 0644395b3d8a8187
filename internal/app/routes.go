package app

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/handlers"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/submission"
)

type routeOptions struct {
	CORSOrigins []string
	// UploadDir is served under UploadPrefix; empty disables it.
	UploadDir    string
	UploadPrefix string
	Tracing      bool
	ServiceName  string
}

func newHandler(env *handlers.Env, opts routeOptions, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	registerRoutes(mux, env, opts)

	var h http.Handler = handlers.WithCORS(opts.CORSOrigins, mux)
	h = handlers.Logging(logger, h)
	h = handlers.RequestID(h)
	if opts.Tracing {
		h = otelhttp.NewHandler(h, opts.ServiceName)
	}
	return h
}

func registerRoutes(mux *http.ServeMux, env *handlers.Env, opts routeOptions) {
	// --- API ---
	mux.HandleFunc("GET /api/health", env.HandleHealth)
	mux.HandleFunc("/api/configurator/product-lines", env.HandleProductLines)

	// wizard sessions
	mux.HandleFunc("/api/configurator/sessions", env.HandleSessions)
	mux.HandleFunc("/api/configurator/sessions/{id}", env.HandleSession)
	mux.HandleFunc("POST /api/configurator/sessions/{id}/next", env.HandleNext)
	mux.HandleFunc("POST /api/configurator/sessions/{id}/previous", env.HandlePrevious)
	mux.HandleFunc("POST /api/configurator/sessions/{id}/reset", env.HandleReset)
	mux.HandleFunc("POST /api/configurator/sessions/{id}/advice", env.HandleAdvice)
	mux.HandleFunc("POST /api/configurator/sessions/{id}/pricing/refresh", env.HandleRefreshPricing)
	mux.HandleFunc("GET /api/configurator/sessions/{id}/price", env.HandlePrice)
	mux.HandleFunc("GET /api/configurator/sessions/{id}/preview", env.HandlePreview)
	mux.HandleFunc("GET /api/configurator/sessions/{id}/preview.svg", env.HandlePreviewSVG)
	mux.HandleFunc("/api/configurator/sessions/{id}/submit", env.HandleSubmit)

	// admin: pricing tables and leads
	admin := func(h http.HandlerFunc) http.Handler { return env.RequireAdmin(h) }
	mux.Handle("/api/admin/pricing/{productLine}", admin(env.HandleAdminPricing))
	mux.Handle("GET /api/admin/leads", admin(env.HandleAdminLeads))
	mux.Handle("GET /api/admin/leads.xlsx", admin(env.HandleAdminLeadsXLSX))

	// --- attachments of the local file store ---
	if opts.UploadDir != "" {
		prefix := "/" + strings.Trim(opts.UploadPrefix, "/") + "/"
		if prefix == "//" {
			prefix = "/uploads/"
		}
		mux.Handle("GET "+prefix, serveAttachments(http.StripPrefix(prefix, http.FileServer(http.Dir(opts.UploadDir)))))
	}
}

// serveAttachments makes browsers download customer files instead of
// rendering them on the API origin.
func serveAttachments(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Disposition", "attachment")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; sandbox")
		if ct, ok := submission.AttachmentType(r.URL.Path); ok {
			w.Header().Set("Content-Type", ct)
		} else {
			w.Header().Set("Content-Type", "application/octet-stream")
		}
		next.ServeHTTP(w, r)
	})
}
