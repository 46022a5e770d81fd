package home

import (
	"net/http"

	"rescue-revolution/internal/domain/session"
	"rescue-revolution/internal/domain/toasts"
	"rescue-revolution/internal/middleware"
	"rescue-revolution/internal/views"

	"github.com/go-chi/chi/v5"
)

type Deps struct {
	Renderer *views.Renderer
	Sessions *session.Store
	Toasts   *toasts.Manager
}

func RegisterRoutes(r chi.Router, d Deps) {
	r.Get("/", homeHandler(d))
}

type page struct {
	views.Base
}

func homeHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := d.Sessions.SID(w, r)
		b := views.Base{Title: "Rescue Revolution", Toasts: d.Toasts.For(sid).Active()}
		if u, ok := middleware.GetUser(r.Context()); ok {
			b.User = &u
		}
		d.Renderer.Render(w, http.StatusOK, "home.html", page{Base: b})
	}
}
