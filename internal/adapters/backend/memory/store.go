// Package memory es un stand-in del REST backend para dev y tests.
// Implementa los ports backend.* con maps protegidos por mutex; no
// persiste nada entre reinicios.
package memory

import (
	"sync"
	"time"

	"rescue-revolution/internal/ports/backend"
)

type userRecord struct {
	ID           int
	Username     string
	Email        string
	PasswordHash []byte
	IsAdmin      bool
	CreatedAt    time.Time
}

type Store struct {
	mu sync.RWMutex

	users     map[string]*userRecord // por username
	pets      map[int]backend.Pet
	incidents map[int]backend.Incident

	// sesiones del "backend": token de cookie => username
	sessions map[string]string

	nextUserID     int
	nextPetID      int
	nextIncidentID int

	// última creación de pet, para inspección en tests
	lastPetCreate *backend.CreatePetInput

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:          make(map[string]*userRecord),
		pets:           make(map[int]backend.Pet),
		incidents:      make(map[int]backend.Incident),
		sessions:       make(map[string]string),
		nextUserID:     1,
		nextPetID:      1,
		nextIncidentID: 1,
		now:            time.Now,
	}
}

// ExpireAllSessions invalida toda sesión activa del backend simulado.
// Sirve para ejercitar los flujos de sesión expirada y logout fallido.
func (s *Store) ExpireAllSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]string)
}

// LastPetCreate retorna el último input recibido por CreatePet (o nil).
func (s *Store) LastPetCreate() *backend.CreatePetInput {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastPetCreate == nil {
		return nil
	}
	cp := *s.lastPetCreate
	return &cp
}

// usernameFor resuelve las credenciales a un username, o "" si la sesión
// no existe (expiró o nunca se creó).
func (s *Store) usernameFor(creds backend.Credentials) string {
	token := string(creds)
	if token == "" {
		return ""
	}
	return s.sessions[token]
}

func (s *Store) timestamp() string {
	// Mismo formato isoformat() sin zona que emite el backend real.
	return s.now().UTC().Format("2006-01-02T15:04:05")
}
