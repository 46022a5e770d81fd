package router

import (
	"net/http"
	"os"

	mem "rescue-revolution/internal/adapters/backend/memory"
	rest "rescue-revolution/internal/adapters/backend/rest"
	"rescue-revolution/internal/adapters/geo/bigdatacloud"
	"rescue-revolution/internal/domain/auth"
	"rescue-revolution/internal/domain/dashboard"
	"rescue-revolution/internal/domain/forms"
	"rescue-revolution/internal/domain/geolocate"
	"rescue-revolution/internal/domain/home"
	"rescue-revolution/internal/domain/incidents"
	"rescue-revolution/internal/domain/pets"
	"rescue-revolution/internal/domain/session"
	"rescue-revolution/internal/domain/toasts"
	"rescue-revolution/internal/middleware"
	"rescue-revolution/internal/platform/logger"
	"rescue-revolution/internal/ports/backend"
	"rescue-revolution/internal/ports/geo"
	"rescue-revolution/internal/views"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	Log logger.Logger

	// Opcional: si vienen, se usan tal cual. Si no, se resuelven por env:
	// BACKEND_URL => cliente REST; sin BACKEND_URL => backend in-memory.
	Auth      backend.AuthAPI
	Pets      backend.PetAPI
	Incidents backend.IncidentAPI

	Geo geo.Resolver

	Sessions *session.Store
	Toasts   *toasts.Manager
	Gate     *forms.Gate
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	sessions := opts.Sessions
	if sessions == nil {
		sessions = session.NewStore([]byte(os.Getenv("SESSION_KEY")))
	}

	toastMgr := opts.Toasts
	if toastMgr == nil {
		toastMgr = toasts.NewManager(toasts.DefaultTTL)
	}

	gate := opts.Gate
	if gate == nil {
		gate = forms.NewGate()
	}

	authAPI, petAPI, incidentAPI := resolveBackend(opts, log)

	resolver := opts.Geo
	if resolver == nil {
		gc, err := bigdatacloud.NewClient(bigdatacloud.Config{BaseURL: os.Getenv("GEOCODE_URL")})
		if err == nil {
			resolver = gc
		}
	}

	renderer, err := views.New(log)
	if err != nil {
		// Los templates van embebidos; si no parsean es un bug de build,
		// no una condición recuperable en runtime.
		panic(err)
	}

	r.Use(middleware.AuthContext(sessions))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/static/*", views.Static())

	// Rutas por módulo
	home.RegisterRoutes(r, home.Deps{Renderer: renderer, Sessions: sessions, Toasts: toastMgr})
	auth.RegisterRoutes(r, auth.Deps{Renderer: renderer, Sessions: sessions, Toasts: toastMgr, Gate: gate, API: authAPI, Log: log})
	pets.RegisterRoutes(r, pets.Deps{Renderer: renderer, Sessions: sessions, Toasts: toastMgr, Gate: gate, API: petAPI, Log: log})
	incidents.RegisterRoutes(r, incidents.Deps{Renderer: renderer, Sessions: sessions, Toasts: toastMgr, Gate: gate, API: incidentAPI, Log: log})
	dashboard.RegisterRoutes(r, dashboard.Deps{Renderer: renderer, Sessions: sessions, Toasts: toastMgr, Auth: authAPI, Pets: petAPI, Incidents: incidentAPI, Log: log})
	geolocate.RegisterRoutes(r, geolocate.Deps{Sessions: sessions, Toasts: toastMgr, Resolver: resolver, Log: log})
	toasts.RegisterRoutes(r, toastMgr, sessions)

	return r
}

func resolveBackend(opts Options, log logger.Logger) (backend.AuthAPI, backend.PetAPI, backend.IncidentAPI) {
	if opts.Auth != nil && opts.Pets != nil && opts.Incidents != nil {
		return opts.Auth, opts.Pets, opts.Incidents
	}

	if baseURL := os.Getenv("BACKEND_URL"); baseURL != "" {
		c, err := rest.New(baseURL)
		if err == nil {
			log.Info("using REST backend", logger.Fields{"base_url": baseURL})
			return c, c, c
		}
		log.Error("invalid BACKEND_URL, falling back to in-memory backend", logger.Fields{"err": err.Error()})
	}

	// Sin backend configurado: stand-in in-memory (para dev/handoff)
	log.Info("using in-memory backend", nil)
	s := mem.NewStore()
	return s, s, s
}
