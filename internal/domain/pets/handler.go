package pets

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
	API      backend.PetAPI
	Log      logger.Logger
}

func RegisterRoutes(r chi.Router, d Deps) {
	r.Get("/pets", listHandler(d))
	r.Get("/pets/{petID}", detailHandler(d))

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireUser)
		pr.Get("/add-pet", newHandler(d))
		pr.Post("/add-pet", createHandler(d))
	})
}

type listPage struct {
	views.Base
	Pets           []backend.Pet
	Filter         backend.SearchFilter
	SpeciesOptions []backend.Species
	StatusOptions  []backend.PetStatus
}

type detailPage struct {
	views.Base
	Pet backend.Pet
}

type formPage struct {
	views.Base
	Form           PetForm
	SpeciesOptions []backend.Species
	StatusOptions  []backend.PetStatus
}

// base arma el chrome de la página. Duplicado a propósito en los handlers
// de cada módulo, igual que writeJSON en otros lados: todavía no amerita
// un helper compartido.
func base(d Deps, w http.ResponseWriter, r *http.Request, title string) views.Base {
	sid := d.Sessions.SID(w, r)
	b := views.Base{Title: title, Toasts: d.Toasts.For(sid).Active()}
	if u, ok := middleware.GetUser(r.Context()); ok {
		b.User = &u
	}
	return b
}

func listHandler(d Deps) http.HandlerFunc {
	// El filtrado es del backend; acá solo se forwardean los params.
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := backend.SearchFilter{
			Query:   q.Get("q"),
			Species: q.Get("species"),
			Status:  q.Get("status"),
		}

		items, err := d.API.SearchPets(r.Context(), filter)
		if err != nil {
			d.Log.Warn("pets: search failed", logger.Fields{"err": err.Error()})
			items = []backend.Pet{}
		}

		d.Renderer.Render(w, http.StatusOK, "pets.html", listPage{
			Base:           base(d, w, r, "Available Pets"),
			Pets:           items,
			Filter:         filter,
			SpeciesOptions: backend.AllSpecies(),
			StatusOptions:  backend.AllPetStatuses(),
		})
	}
}

func detailHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "petID")

		p, err := d.API.GetPet(r.Context(), id)
		if err != nil {
			// 404 del backend y fallo de transporte degradan a la misma
			// vista not-found; al usuario no le cambia nada.
			d.Renderer.Render(w, http.StatusNotFound, "not_found.html", views.NotFoundPage{
				Base:      base(d, w, r, "Pet Not Found"),
				Heading:   "Pet Not Found",
				Detail:    "The pet you're looking for doesn't exist or has been removed.",
				BackURL:   "/pets",
				BackLabel: "Browse All Pets",
			})
			return
		}

		d.Renderer.Render(w, http.StatusOK, "pet_detail.html", detailPage{
			Base: base(d, w, r, p.Name),
			Pet:  p,
		})
	}
}

func newHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Renderer.Render(w, http.StatusOK, "add_pet.html", formPage{
			Base:           base(d, w, r, "Add a Pet"),
			Form:           PetForm{Status: string(backend.PetAvailable)},
			SpeciesOptions: backend.AllSpecies(),
			StatusOptions:  backend.AllPetStatuses(),
		})
	}
}

func createHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := d.Sessions.SID(w, r)
		queue := d.Toasts.For(sid)

		rerender := func(status int, f PetForm) {
			d.Renderer.Render(w, status, "add_pet.html", formPage{
				Base:           base(d, w, r, "Add a Pet"),
				Form:           f,
				SpeciesOptions: backend.AllSpecies(),
				StatusOptions:  backend.AllPetStatuses(),
			})
		}

		form, err := parsePetForm(r)
		if err != nil {
			queue.Show("Invalid form submission", toasts.SeverityError)
			rerender(http.StatusBadRequest, PetForm{Status: string(backend.PetAvailable)})
			return
		}

		if msg := form.Validate(); msg != "" {
			queue.Show(msg, toasts.SeverityError)
			rerender(http.StatusBadRequest, form)
			return
		}

		key := sid + ":add-pet"
		if !d.Gate.TryBegin(key) {
			// Hay un envío en vuelo para este formulario; no se emite un
			// segundo request al backend.
			queue.Show("A submission is already in progress", toasts.SeverityInfo)
			rerender(http.StatusConflict, form)
			return
		}
		defer d.Gate.End(key)

		_, err = d.API.CreatePet(r.Context(), d.Sessions.Credentials(r), form.Input())
		if err != nil {
			if backend.IsUnauthorized(err) {
				_ = d.Sessions.Clear(w, r)
				queue.Show("Your session has expired. Please log in again.", toasts.SeverityError)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			d.Log.Warn("pets: create failed", logger.Fields{"err": err.Error()})
			queue.Show(backend.UserMessage(err, "Failed to add pet"), toasts.SeverityError)
			rerender(http.StatusOK, form)
			return
		}

		queue.Show("Pet added successfully!", toasts.SeveritySuccess)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}
