package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rescue-revolution/internal/ports/backend"
)

func login(t *testing.T, s *Store, username string) backend.Credentials {
	t.Helper()
	require.NoError(t, s.Register(context.Background(), username, username+"@example.com", "secret123"))
	_, creds, err := s.Login(context.Background(), username, "secret123")
	require.NoError(t, err)
	return creds
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "ana", "ana@example.com", "secret123"))

	err := s.Register(ctx, "ana", "otra@example.com", "secret123")
	assert.Equal(t, "Username already exists", backend.UserMessage(err, ""))

	err = s.Register(ctx, "otra", "ana@example.com", "secret123")
	assert.Equal(t, "Email already exists", backend.UserMessage(err, ""))
}

func TestLoginWrongPassword(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "ana", "ana@example.com", "secret123"))

	_, _, err := s.Login(ctx, "ana", "nope")
	assert.Equal(t, "Invalid credentials", backend.UserMessage(err, ""))
	assert.True(t, backend.IsUnauthorized(err))
}

func TestCreatePetRequiresSession(t *testing.T) {
	s := NewStore()

	_, err := s.CreatePet(context.Background(), "session=bogus", backend.CreatePetInput{
		Name: "Luna", Species: "dog", Status: "available",
	})
	assert.True(t, backend.IsUnauthorized(err))
}

func TestCreatePetRecordsOwnerAndImage(t *testing.T) {
	s := NewStore()
	creds := login(t, s, "ana")

	pet, err := s.CreatePet(context.Background(), creds, backend.CreatePetInput{
		Name:      "Luna",
		Species:   "dog",
		Status:    "available",
		ImageName: "luna.png",
		ImageData: []byte("png-bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, "ana", pet.Owner)
	assert.Equal(t, "/uploads/luna.png", pet.ImageURL)

	last := s.LastPetCreate()
	require.NotNil(t, last)
	assert.Equal(t, []byte("png-bytes"), last.ImageData)
}

func TestSearchPetsFilters(t *testing.T) {
	s := NewStore()
	creds := login(t, s, "ana")
	ctx := context.Background()

	_, err := s.CreatePet(ctx, creds, backend.CreatePetInput{Name: "Luna", Species: "dog", Status: "available", Description: "playful husky"})
	require.NoError(t, err)
	_, err = s.CreatePet(ctx, creds, backend.CreatePetInput{Name: "Michi", Species: "cat", Status: "adopted"})
	require.NoError(t, err)

	byQuery, err := s.SearchPets(ctx, backend.SearchFilter{Query: "HUSKY"})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "Luna", byQuery[0].Name)

	bySpecies, err := s.SearchPets(ctx, backend.SearchFilter{Species: "cat"})
	require.NoError(t, err)
	require.Len(t, bySpecies, 1)
	assert.Equal(t, "Michi", bySpecies[0].Name)

	byStatus, err := s.SearchPets(ctx, backend.SearchFilter{Species: "cat", Status: "available"})
	require.NoError(t, err)
	assert.Empty(t, byStatus)
}

func TestGetPetNotFound(t *testing.T) {
	s := NewStore()

	_, err := s.GetPet(context.Background(), "999")
	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestIncidentLifecycle(t *testing.T) {
	s := NewStore()
	creds := login(t, s, "ana")
	ctx := context.Background()

	created, err := s.CreateIncident(ctx, creds, backend.CreateIncidentInput{
		Title:        "Lost husky near the park",
		Description:  "White and grey, blue collar",
		Location:     "Palermo",
		IncidentType: "lost_pet",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana", created.Reporter)
	assert.Equal(t, "open", created.Status)

	byType, err := s.SearchIncidents(ctx, backend.SearchFilter{Type: "lost_pet"})
	require.NoError(t, err)
	assert.Len(t, byType, 1)

	byQuery, err := s.SearchIncidents(ctx, backend.SearchFilter{Query: "collar"})
	require.NoError(t, err)
	assert.Len(t, byQuery, 1)
}

func TestCurrentUser(t *testing.T) {
	s := NewStore()
	creds := login(t, s, "ana")

	u, err := s.CurrentUser(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)

	s.ExpireAllSessions()

	_, err = s.CurrentUser(context.Background(), creds)
	assert.True(t, backend.IsUnauthorized(err))
}

func TestExpireAllSessions(t *testing.T) {
	s := NewStore()
	creds := login(t, s, "ana")

	s.ExpireAllSessions()

	_, err := s.CreatePet(context.Background(), creds, backend.CreatePetInput{Name: "Luna", Species: "dog", Status: "available"})
	assert.True(t, backend.IsUnauthorized(err))
}
