package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"rescue-revolution/internal/ports/backend"
)

type createPetRequest struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Breed       string `json:"breed,omitempty"`
	Age         *int   `json:"age"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Status      string `json:"status"`
	Location    string `json:"location,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
}

func (c *Client) SearchPets(ctx context.Context, f backend.SearchFilter) ([]backend.Pet, error) {
	q := url.Values{}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.Species != "" {
		q.Set("species", f.Species)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}

	path := "/api/search/pets"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []backend.Pet
	if err := c.http.DoJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (c *Client) GetPet(ctx context.Context, id string) (backend.Pet, error) {
	var out backend.Pet
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/pets/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return backend.Pet{}, mapErr(err)
	}
	return out, nil
}

func (c *Client) ListPets(ctx context.Context) ([]backend.Pet, error) {
	var out []backend.Pet
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/pets", nil, nil, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

// Create decide el encoding según la imagen: con archivo adjunto el request
// va como multipart (y la URL de imagen NO viaja); sin archivo va como JSON
// con image_url como campo normal.
func (c *Client) CreatePet(ctx context.Context, creds backend.Credentials, in backend.CreatePetInput) (backend.Pet, error) {
	if len(in.ImageData) > 0 {
		return c.createMultipart(ctx, creds, in)
	}
	return c.createJSON(ctx, creds, in)
}

func (c *Client) createJSON(ctx context.Context, creds backend.Credentials, in backend.CreatePetInput) (backend.Pet, error) {
	var out backend.Pet
	err := c.http.DoJSON(ctx, http.MethodPost, "/api/pets", credHeaders(creds), createPetRequest{
		Name:        in.Name,
		Species:     in.Species,
		Breed:       in.Breed,
		Age:         in.Age,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Status:      in.Status,
		Location:    in.Location,
		ContactInfo: in.ContactInfo,
	}, &out)
	if err != nil {
		return backend.Pet{}, mapErr(err)
	}
	return out, nil
}

func (c *Client) createMultipart(ctx context.Context, creds backend.Credentials, in backend.CreatePetInput) (backend.Pet, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":         in.Name,
		"species":      in.Species,
		"breed":        in.Breed,
		"description":  in.Description,
		"status":       in.Status,
		"location":     in.Location,
		"contact_info": in.ContactInfo,
	}
	if in.Age != nil {
		fields["age"] = strconv.Itoa(*in.Age)
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return backend.Pet{}, fmt.Errorf("rest: multipart field %s: %w", k, err)
		}
	}

	name := in.ImageName
	if name == "" {
		name = "image"
	}
	part, err := mw.CreateFormFile("image", name)
	if err != nil {
		return backend.Pet{}, fmt.Errorf("rest: multipart image: %w", err)
	}
	if _, err := part.Write(in.ImageData); err != nil {
		return backend.Pet{}, fmt.Errorf("rest: multipart image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return backend.Pet{}, fmt.Errorf("rest: multipart close: %w", err)
	}

	res, err := c.http.Do(ctx, http.MethodPost, "/api/pets", credHeaders(creds), mw.FormDataContentType(), &buf)
	if err != nil {
		return backend.Pet{}, mapErr(err)
	}

	var out backend.Pet
	if err := json.Unmarshal(res.Body, &out); err != nil {
		return backend.Pet{}, fmt.Errorf("rest: create pet response: %w", err)
	}
	return out, nil
}
