package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"doordeck/internal/config"
	localMiddleware "doordeck/internal/middleware"
)

// RouterOptions allows customization of router setup for tests
type RouterOptions struct {
	DisableRateLimiting  bool
	DisableRequestLogger bool
	StaticDir            string // defaults to the fetch image directory
	Logger               *zap.Logger
}

// SetupRouter creates the preview router with all routes and middleware
func SetupRouter(h *Handler, cfg *config.Config, opts *RouterOptions) *chi.Mux {
	if opts == nil {
		opts = &RouterOptions{}
	}
	if opts.StaticDir == "" {
		opts.StaticDir = cfg.Fetch.ImageDir
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if !opts.DisableRequestLogger {
		r.Use(localMiddleware.RequestLogger(opts.Logger))
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(localMiddleware.SecurityHeaders())

	if !opts.DisableRateLimiting {
		rateLimiter := localMiddleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitBurst)
		r.Use(rateLimiter.Middleware())
	}

	// Fetched images
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))

	r.Get("/", h.Home)
	r.Get("/slide/{n}.png", h.Slide)
	r.Get("/sheet.png", h.Sheet)
	r.Get("/deck.pptx", h.Download)
	r.Get("/qr.png", h.QRCode)

	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
