package memory

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"rescue-revolution/internal/ports/backend"
)

const msgNotFound = "Not found"

func (s *Store) SearchPets(ctx context.Context, f backend.SearchFilter) ([]backend.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]backend.Pet, 0)
	for _, p := range s.pets {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if f.Species != "" && p.Species != f.Species {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, p)
	}

	sortPets(out)
	return out, nil
}

func (s *Store) GetPet(ctx context.Context, id string) (backend.Pet, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return backend.Pet{}, &backend.APIError{StatusCode: http.StatusNotFound, Message: msgNotFound}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pets[n]
	if !ok {
		return backend.Pet{}, &backend.APIError{StatusCode: http.StatusNotFound, Message: msgNotFound}
	}
	return p, nil
}

func (s *Store) ListPets(ctx context.Context) ([]backend.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]backend.Pet, 0, len(s.pets))
	for _, p := range s.pets {
		out = append(out, p)
	}
	sortPets(out)
	return out, nil
}

func (s *Store) CreatePet(ctx context.Context, creds backend.Credentials, in backend.CreatePetInput) (backend.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner := s.usernameFor(creds)
	if owner == "" {
		return backend.Pet{}, &backend.APIError{StatusCode: http.StatusUnauthorized, Message: msgUnauthorized}
	}

	cp := in
	s.lastPetCreate = &cp

	// El backend real guardaría el archivo y derivaría una URL; acá solo
	// sintetizamos un path estable.
	imageURL := in.ImageURL
	if len(in.ImageData) > 0 {
		imageURL = "/uploads/" + in.ImageName
	}

	status := in.Status
	if status == "" {
		status = string(backend.PetAvailable)
	}

	p := backend.Pet{
		ID:          s.nextPetID,
		Name:        in.Name,
		Species:     in.Species,
		Breed:       in.Breed,
		Age:         in.Age,
		Description: in.Description,
		ImageURL:    imageURL,
		Status:      status,
		Location:    in.Location,
		ContactInfo: in.ContactInfo,
		CreatedAt:   s.timestamp(),
		Owner:       owner,
	}
	s.pets[p.ID] = p
	s.nextPetID++
	return p, nil
}

// Orden estable por id asc (solo para consistencia en dev).
func sortPets(items []backend.Pet) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
}
