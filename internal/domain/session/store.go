// Package session guarda la identidad del usuario y las credenciales del
// backend en una cookie firmada (gorilla/sessions). También mantiene un id
// estable por navegador que sirve de key para toasts y submission guards.
package session

import (
	"crypto/rand"
	"encoding/json"
	"net/http"
	"strings"

	"rescue-revolution/internal/ports/backend"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	cookieName = "rr_session"

	keySID   = "sid"
	keyUser  = "user"
	keyCreds = "backend_creds"
)

type Store struct {
	cookies *sessions.CookieStore
}

// NewStore crea el store con la clave de firmado. Si secret viene vacío se
// genera una clave random: suficiente para dev, pero invalida las sesiones
// en cada reinicio.
func NewStore(secret []byte) *Store {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		_, _ = rand.Read(secret)
	}

	cs := sessions.NewCookieStore(secret)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cs}
}

func (s *Store) session(r *http.Request) *sessions.Session {
	// CookieStore solo falla con cookie corrupta; en ese caso retorna
	// una sesión nueva igual de usable.
	sess, _ := s.cookies.Get(r, cookieName)
	return sess
}

// SID retorna el id estable de la sesión, creándolo (y persistiéndolo) si
// no existe aún. Llamar antes de escribir el body.
func (s *Store) SID(w http.ResponseWriter, r *http.Request) string {
	sess := s.session(r)
	if sid, ok := sess.Values[keySID].(string); ok && sid != "" {
		return sid
	}

	sid := uuid.NewString()
	sess.Values[keySID] = sid
	_ = sess.Save(r, w)
	return sid
}

// CurrentUser retorna la copia efímera del usuario, si hay sesión activa.
func (s *Store) CurrentUser(r *http.Request) (backend.User, bool) {
	sess := s.session(r)
	raw, ok := sess.Values[keyUser].(string)
	if !ok || raw == "" {
		return backend.User{}, false
	}

	var u backend.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return backend.User{}, false
	}
	if strings.TrimSpace(u.Username) == "" {
		return backend.User{}, false
	}
	return u, true
}

// Credentials retorna la cookie de sesión del backend asociada al usuario.
func (s *Store) Credentials(r *http.Request) backend.Credentials {
	sess := s.session(r)
	raw, _ := sess.Values[keyCreds].(string)
	return backend.Credentials(raw)
}

// SetUser establece la sesión tras un login/registro exitoso.
func (s *Store) SetUser(w http.ResponseWriter, r *http.Request, u backend.User, creds backend.Credentials) error {
	sess := s.session(r)

	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}

	if _, ok := sess.Values[keySID].(string); !ok {
		sess.Values[keySID] = uuid.NewString()
	}
	sess.Values[keyUser] = string(raw)
	sess.Values[keyCreds] = string(creds)
	return sess.Save(r, w)
}

// Clear descarta usuario y credenciales pero conserva el sid, así los
// toasts pendientes siguen siendo de este navegador.
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	sess := s.session(r)
	delete(sess.Values, keyUser)
	delete(sess.Values, keyCreds)
	return sess.Save(r, w)
}
