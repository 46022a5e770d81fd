package incidents

import (
	"net/http"

	"rescue-revolution/internal/domain/forms"
	"rescue-revolution/internal/domain/session"
	"rescue-revolution/internal/domain/toasts"
	"rescue-revolution/internal/middleware"
	"rescue-revolution/internal/platform/logger"
	"rescue-revolution/internal/ports/backend"
	"rescue-revolution/internal/views"

	"github.com/go-chi/chi/v5"
)

type Deps struct {
	Renderer *views.Renderer
	Sessions *session.Store
	Toasts   *toasts.Manager
	Gate     *forms.Gate
	API      backend.IncidentAPI
	Log      logger.Logger
}

func RegisterRoutes(r chi.Router, d Deps) {
	r.Get("/incidents", listHandler(d))
	r.Get("/incidents/{incidentID}", detailHandler(d))

	r.Group(func(ir chi.Router) {
		ir.Use(middleware.RequireUser)
		ir.Get("/add-incident", newHandler(d))
		ir.Post("/add-incident", createHandler(d))
	})
}

type listPage struct {
	views.Base
	Incidents     []backend.Incident
	Filter        backend.SearchFilter
	TypeOptions   []backend.IncidentType
	StatusOptions []backend.IncidentStatus
}

type detailPage struct {
	views.Base
	Incident backend.Incident
}

type formPage struct {
	views.Base
	Form        IncidentForm
	TypeOptions []backend.IncidentType
}

func base(d Deps, w http.ResponseWriter, r *http.Request, title string) views.Base {
	sid := d.Sessions.SID(w, r)
	b := views.Base{Title: title, Toasts: d.Toasts.For(sid).Active()}
	if u, ok := middleware.GetUser(r.Context()); ok {
		b.User = &u
	}
	return b
}

func listHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := backend.SearchFilter{
			Query:  q.Get("q"),
			Type:   q.Get("type"),
			Status: q.Get("status"),
		}

		items, err := d.API.SearchIncidents(r.Context(), filter)
		if err != nil {
			d.Log.Warn("incidents: search failed", logger.Fields{"err": err.Error()})
			items = []backend.Incident{}
		}

		d.Renderer.Render(w, http.StatusOK, "incidents.html", listPage{
			Base:          base(d, w, r, "Community Incidents"),
			Incidents:     items,
			Filter:        filter,
			TypeOptions:   backend.AllIncidentTypes(),
			StatusOptions: backend.AllIncidentStatuses(),
		})
	}
}

func detailHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "incidentID")

		in, err := d.API.GetIncident(r.Context(), id)
		if err != nil {
			d.Renderer.Render(w, http.StatusNotFound, "not_found.html", views.NotFoundPage{
				Base:      base(d, w, r, "Incident Not Found"),
				Heading:   "Incident Not Found",
				Detail:    "The incident you're looking for doesn't exist or has been removed.",
				BackURL:   "/incidents",
				BackLabel: "Browse All Incidents",
			})
			return
		}

		d.Renderer.Render(w, http.StatusOK, "incident_detail.html", detailPage{
			Base:     base(d, w, r, in.Title),
			Incident: in,
		})
	}
}

func newHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Renderer.Render(w, http.StatusOK, "add_incident.html", formPage{
			Base:        base(d, w, r, "Report Incident"),
			Form:        IncidentForm{},
			TypeOptions: backend.AllIncidentTypes(),
		})
	}
}

func createHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := d.Sessions.SID(w, r)
		queue := d.Toasts.For(sid)

		rerender := func(status int, f IncidentForm) {
			d.Renderer.Render(w, status, "add_incident.html", formPage{
				Base:        base(d, w, r, "Report Incident"),
				Form:        f,
				TypeOptions: backend.AllIncidentTypes(),
			})
		}

		form, err := parseIncidentForm(r)
		if err != nil {
			queue.Show("Invalid form submission", toasts.SeverityError)
			rerender(http.StatusBadRequest, IncidentForm{})
			return
		}

		if msg := form.Validate(); msg != "" {
			queue.Show(msg, toasts.SeverityError)
			rerender(http.StatusBadRequest, form)
			return
		}

		key := sid + ":add-incident"
		if !d.Gate.TryBegin(key) {
			queue.Show("A submission is already in progress", toasts.SeverityInfo)
			rerender(http.StatusConflict, form)
			return
		}
		defer d.Gate.End(key)

		_, err = d.API.CreateIncident(r.Context(), d.Sessions.Credentials(r), form.Input())
		if err != nil {
			if backend.IsUnauthorized(err) {
				_ = d.Sessions.Clear(w, r)
				queue.Show("Your session has expired. Please log in again.", toasts.SeverityError)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			d.Log.Warn("incidents: create failed", logger.Fields{"err": err.Error()})
			queue.Show(backend.UserMessage(err, "Failed to report incident"), toasts.SeverityError)
			rerender(http.StatusOK, form)
			return
		}

		queue.Show("Incident reported successfully!", toasts.SeveritySuccess)
		http.Redirect(w, r, "/incidents", http.StatusSeeOther)
	}
}
