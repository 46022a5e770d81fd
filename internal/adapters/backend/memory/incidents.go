package memory

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"rescue-revolution/internal/ports/backend"
)

func (s *Store) SearchIncidents(ctx context.Context, f backend.SearchFilter) ([]backend.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]backend.Incident, 0)
	for _, in := range s.incidents {
		if q != "" &&
			!strings.Contains(strings.ToLower(in.Title), q) &&
			!strings.Contains(strings.ToLower(in.Description), q) {
			continue
		}
		if f.Type != "" && in.IncidentType != f.Type {
			continue
		}
		if f.Status != "" && in.Status != f.Status {
			continue
		}
		out = append(out, in)
	}

	sortIncidents(out)
	return out, nil
}

func (s *Store) GetIncident(ctx context.Context, id string) (backend.Incident, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return backend.Incident{}, &backend.APIError{StatusCode: http.StatusNotFound, Message: msgNotFound}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	in, ok := s.incidents[n]
	if !ok {
		return backend.Incident{}, &backend.APIError{StatusCode: http.StatusNotFound, Message: msgNotFound}
	}
	return in, nil
}

func (s *Store) ListIncidents(ctx context.Context) ([]backend.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]backend.Incident, 0, len(s.incidents))
	for _, in := range s.incidents {
		out = append(out, in)
	}
	sortIncidents(out)
	return out, nil
}

func (s *Store) CreateIncident(ctx context.Context, creds backend.Credentials, in backend.CreateIncidentInput) (backend.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reporter := s.usernameFor(creds)
	if reporter == "" {
		return backend.Incident{}, &backend.APIError{StatusCode: http.StatusUnauthorized, Message: msgUnauthorized}
	}

	rec := backend.Incident{
		ID:           s.nextIncidentID,
		Title:        in.Title,
		Description:  in.Description,
		Location:     in.Location,
		IncidentType: in.IncidentType,
		ContactInfo:  in.ContactInfo,
		Status:       string(backend.IncidentOpen),
		CreatedAt:    s.timestamp(),
		Reporter:     reporter,
	}
	s.incidents[rec.ID] = rec
	s.nextIncidentID++
	return rec, nil
}

func sortIncidents(items []backend.Incident) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
}
