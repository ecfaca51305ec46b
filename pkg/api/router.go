package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cubbyhole/cubby/internal/logger"
	"github.com/cubbyhole/cubby/pkg/api/auth"
	"github.com/cubbyhole/cubby/pkg/api/handlers"
	"github.com/cubbyhole/cubby/pkg/api/middleware"
	"github.com/cubbyhole/cubby/pkg/blob"
	"github.com/cubbyhole/cubby/pkg/drive"
	"github.com/cubbyhole/cubby/pkg/metrics"
	"github.com/cubbyhole/cubby/pkg/store"
)

// RouterDeps bundles the dependencies the router wires into handlers.
type RouterDeps struct {
	Store       store.Store
	Blobs       blob.Store
	Folders     *drive.FolderService
	Files       *drive.FileService
	JWTService  *auth.JWTService
	HTTPMetrics metrics.HTTPMetrics
}

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//
// Health routes are unauthenticated; everything under /api/v1 except the
// register/login/refresh endpoints requires a Bearer access token.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(requestMetrics(deps.HTTPMetrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Blobs)
	authHandler := handlers.NewAuthHandler(deps.Store, deps.JWTService)
	folderHandler := handlers.NewFolderHandler(deps.Folders)
	fileHandler := handlers.NewFileHandler(deps.Files)

	// Health routes - unauthenticated
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(middleware.JWTAuth(deps.JWTService))
				r.Get("/me", authHandler.Me)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(deps.JWTService))

			r.Route("/folders", func(r chi.Router) {
				r.Get("/", folderHandler.List)
				r.Post("/", folderHandler.Create)
				r.Delete("/{folderID}", folderHandler.Delete)
			})

			r.Route("/files", func(r chi.Router) {
				r.Get("/", fileHandler.List)
				r.Post("/", fileHandler.Upload)
				r.Get("/{fileID}/download", fileHandler.Download)
				r.Put("/{fileID}", fileHandler.Rename)
				r.Delete("/{fileID}", fileHandler.Delete)
			})
		})
	})

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	return r
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := chimiddleware.GetReqID(r.Context())

		// Downstream *Ctx log calls pick these fields up from the context.
		r = r.WithContext(logger.WithContext(r.Context(), &logger.LogContext{
			RequestID:  requestID,
			RemoteAddr: r.RemoteAddr,
		}))

		logger.Debug("API request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		// Wrap response writer to capture status code
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logger.Info("API request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		)
	})
}

// requestMetrics records request counts, durations, and in-flight gauge.
// With nil metrics the middleware is a pass-through.
func requestMetrics(m metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.RecordRequestStart()
			defer m.RecordRequestEnd()

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			m.RecordRequest(r.Method, route, ww.Status(), time.Since(start))
		})
	}
}
