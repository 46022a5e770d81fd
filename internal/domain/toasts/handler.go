package toasts

import (
	"net/http"

	"rescue-revolution/internal/domain/session"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes expone el descarte manual de toasts desde la página.
func RegisterRoutes(r chi.Router, m *Manager, sessions *session.Store) {
	r.Post("/toasts/{toastID}/dismiss", dismissHandler(m, sessions))
}

func dismissHandler(m *Manager, sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := sessions.SID(w, r)
		// Dismiss es idempotente: descartar un id ajeno o ya vencido no
		// hace nada.
		m.For(sid).Dismiss(chi.URLParam(r, "toastID"))
		w.WriteHeader(http.StatusNoContent)
	}
}
