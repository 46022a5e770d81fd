package backend

import (
	"context"
	"errors"
	"fmt"
)

// APIError es un rechazo del backend con mensaje para el usuario
// (campo `error` del body JSON). Message puede venir vacío si el body
// no traía nada parseable.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend rejected: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("backend rejected: status=%d error=%s", e.StatusCode, e.Message)
}

// UserMessage devuelve el mensaje del backend si existe, o fallback.
// Un fallo de transporte y un rechazo del backend se presentan igual al
// usuario; la distinción solo vive en logs.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsUnauthorized detecta expiración de sesión del backend (401).
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

// AuthAPI expone registro/login/logout contra el backend.
type AuthAPI interface {
	Register(ctx context.Context, username, email, password string) error
	// Login retorna el usuario y las credenciales (cookie de sesión del
	// backend) que deben acompañar los requests mutantes posteriores.
	Login(ctx context.Context, username, password string) (User, Credentials, error)
	Logout(ctx context.Context, creds Credentials) error
	// CurrentUser revalida las credenciales contra el backend y retorna
	// la versión fresca del usuario (401 si la sesión remota expiró).
	CurrentUser(ctx context.Context, creds Credentials) (User, error)
}

// PetAPI es la vista de solo-consumo sobre /api/pets y /api/search/pets.
type PetAPI interface {
	SearchPets(ctx context.Context, f SearchFilter) ([]Pet, error)
	GetPet(ctx context.Context, id string) (Pet, error)
	ListPets(ctx context.Context) ([]Pet, error)
	CreatePet(ctx context.Context, creds Credentials, in CreatePetInput) (Pet, error)
}

type IncidentAPI interface {
	SearchIncidents(ctx context.Context, f SearchFilter) ([]Incident, error)
	GetIncident(ctx context.Context, id string) (Incident, error)
	ListIncidents(ctx context.Context) ([]Incident, error)
	CreateIncident(ctx context.Context, creds Credentials, in CreateIncidentInput) (Incident, error)
}
