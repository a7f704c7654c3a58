// Package httpapi exposes the admin console over a JSON HTTP API mounted at
// /api/v1.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"fpadmin/internal/core"
)

// Metrics is the collector surface the API records to and exposes.
type Metrics interface {
	HTTPMetrics
	Handler() http.Handler
}

// Deps bundles the services served by the API. Metrics is optional; when set
// its handler is mounted at /metrics.
type Deps struct {
	Records     *core.RecordsService
	Meetings    *core.MeetingService
	Settings    *core.SettingsService
	Metrics     Metrics
	Logger      *zap.Logger
	CORSOrigins []string
}

// Server routes admin API requests to the services.
type Server struct {
	records  *core.RecordsService
	meetings *core.MeetingService
	settings *core.SettingsService
	logger   *zap.Logger
	router   chi.Router
}

// NewServer builds the router and its middleware chain.
func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		records:  deps.Records,
		meetings: deps.Meetings,
		settings: deps.Settings,
		logger:   logger.Named("http"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	if deps.Metrics != nil {
		r.Use(instrument(deps.Metrics))
	}
	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		if deps.Metrics != nil {
			r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
		}
		r.Get("/admin/tabs", s.handleTabs)

		if s.records != nil {
			s.mountRecords(r)
			r.Route("/selector", func(r chi.Router) {
				r.Get("/options", s.handleSelectorOptions)
				r.Post("/toggle", s.handleSelectorToggle)
			})
		}
		r.Route("/config", func(r chi.Router) {
			if s.meetings != nil {
				r.Get("/meeting", s.handleGetMeeting)
				r.Put("/meeting", s.handlePutMeeting)
				r.Post("/meeting/url", s.handleMeetingURL)
			}
			if s.settings != nil {
				r.Get("/branding", s.handleGetBranding)
				r.Put("/branding", s.handlePutBranding)
				r.Get("/email", s.handleGetEmail)
				r.Put("/email", s.handlePutEmail)
			}
		})
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
