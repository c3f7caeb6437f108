package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/joestump/bookmarks-api/docs/swagger"
	"github.com/joestump/bookmarks-api/internal/api"
	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/store"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Bookmarks store.BookmarkStoreIface
	Logger    logger.Logger
	// DB is pinged by /healthz. Nil skips the check.
	DB         Pinger
	APIToken   string
	Production bool
	// AllowedOrigins feeds the CORS handler. Empty allows any origin.
	AllowedOrigins []string
	StartTime      time.Time
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	if deps.StartTime.IsZero() {
		deps.StartTime = time.Now()
	}
	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.GetHead)
	r.Use(accessLog(log))
	r.Use(recoverer(log, deps.Production))
	r.Use(securityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         300,
	}))
	r.Use(instrument)

	r.Get("/", hello)
	r.Get("/healthz", healthz(deps.DB, deps.StartTime))
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI, outside the bearer gate.
	r.Get("/docs/*", httpSwagger.WrapHandler)

	r.Mount("/api/bookmarks", api.NewAPIRouter(api.Deps{
		Bookmarks:  deps.Bookmarks,
		Logger:     log,
		APIToken:   deps.APIToken,
		Production: deps.Production,
	}))

	return r
}
