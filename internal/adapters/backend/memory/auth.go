package memory

import (
	"context"
	"net/http"
	"strings"

	"rescue-revolution/internal/ports/backend"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Los mensajes replican los del backend real para que los toasts
// se vean iguales contra el stand-in.
const (
	msgUsernameTaken      = "Username already exists"
	msgEmailTaken         = "Email already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgUnauthorized       = "Unauthorized"
)

func (s *Store) Register(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return &backend.APIError{StatusCode: http.StatusBadRequest, Message: msgUsernameTaken}
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &backend.APIError{StatusCode: http.StatusBadRequest, Message: msgEmailTaken}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.users[username] = &userRecord{
		ID:           s.nextUserID,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	s.nextUserID++
	return nil
}

func (s *Store) Login(ctx context.Context, username, password string) (backend.User, backend.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[strings.TrimSpace(username)]
	if !ok {
		return backend.User{}, "", &backend.APIError{StatusCode: http.StatusUnauthorized, Message: msgInvalidCredentials}
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return backend.User{}, "", &backend.APIError{StatusCode: http.StatusUnauthorized, Message: msgInvalidCredentials}
	}

	token := "session=" + uuid.NewString()
	s.sessions[token] = u.Username

	return backend.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05"),
	}, backend.Credentials(token), nil
}

func (s *Store) CurrentUser(ctx context.Context, creds backend.Credentials) (backend.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	username := s.usernameFor(creds)
	if username == "" {
		return backend.User{}, &backend.APIError{StatusCode: http.StatusUnauthorized, Message: msgUnauthorized}
	}
	u := s.users[username]
	return backend.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05"),
	}, nil
}

func (s *Store) Logout(ctx context.Context, creds backend.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := string(creds)
	if _, ok := s.sessions[token]; !ok {
		return &backend.APIError{StatusCode: http.StatusUnauthorized, Message: msgUnauthorized}
	}
	delete(s.sessions, token)
	return nil
}
