package dashboard

import (
	"net/http"

	"rescue-revolution/internal/domain/session"
	"rescue-revolution/internal/domain/toasts"
	"rescue-revolution/internal/middleware"
	"rescue-revolution/internal/platform/logger"
	"rescue-revolution/internal/ports/backend"
	"rescue-revolution/internal/views"

	"github.com/go-chi/chi/v5"
)

type Deps struct {
	Renderer  *views.Renderer
	Sessions  *session.Store
	Toasts    *toasts.Manager
	Auth      backend.AuthAPI
	Pets      backend.PetAPI
	Incidents backend.IncidentAPI
	Log       logger.Logger
}

func RegisterRoutes(r chi.Router, d Deps) {
	r.Group(func(dr chi.Router) {
		dr.Use(middleware.RequireUser)
		dr.Get("/dashboard", dashboardHandler(d))
	})
}

type page struct {
	views.Base
	MyPets      []backend.Pet
	MyIncidents []backend.Incident
}

func dashboardHandler(d Deps) http.HandlerFunc {
	// El dashboard trae las colecciones completas y filtra acá por
	// owner/reporter; es el único lugar donde el cliente filtra.
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := middleware.GetUser(r.Context())

		// Revalidación blanda contra el backend: si la sesión remota
		// sigue viva se usa la versión fresca del usuario; si no, la
		// copia local alcanza para mostrar el dashboard.
		if fresh, err := d.Auth.CurrentUser(r.Context(), d.Sessions.Credentials(r)); err == nil {
			user = fresh
		} else {
			d.Log.Debug("dashboard: revalidate user failed", logger.Fields{"err": err.Error()})
		}

		pets, err := d.Pets.ListPets(r.Context())
		if err != nil {
			d.Log.Warn("dashboard: list pets failed", logger.Fields{"err": err.Error()})
			pets = nil
		}
		incidents, err := d.Incidents.ListIncidents(r.Context())
		if err != nil {
			d.Log.Warn("dashboard: list incidents failed", logger.Fields{"err": err.Error()})
			incidents = nil
		}

		mine := make([]backend.Pet, 0)
		for _, p := range pets {
			if p.Owner == user.Username {
				mine = append(mine, p)
			}
		}
		reported := make([]backend.Incident, 0)
		for _, in := range incidents {
			if in.Reporter == user.Username {
				reported = append(reported, in)
			}
		}

		sid := d.Sessions.SID(w, r)
		b := views.Base{Title: "Dashboard", User: &user, Toasts: d.Toasts.For(sid).Active()}

		d.Renderer.Render(w, http.StatusOK, "dashboard.html", page{
			Base:        b,
			MyPets:      mine,
			MyIncidents: reported,
		})
	}
}
