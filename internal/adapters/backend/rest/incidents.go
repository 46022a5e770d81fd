package rest

import (
	"context"
	"net/http"
	"net/url"

	"rescue-revolution/internal/ports/backend"
)

type createIncidentRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	IncidentType string `json:"incident_type"`
	ContactInfo  string `json:"contact_info,omitempty"`
}

func (c *Client) SearchIncidents(ctx context.Context, f backend.SearchFilter) ([]backend.Incident, error) {
	q := url.Values{}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}

	path := "/api/search/incidents"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []backend.Incident
	if err := c.http.DoJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (c *Client) GetIncident(ctx context.Context, id string) (backend.Incident, error) {
	var out backend.Incident
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/incidents/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return backend.Incident{}, mapErr(err)
	}
	return out, nil
}

func (c *Client) ListIncidents(ctx context.Context) ([]backend.Incident, error) {
	var out []backend.Incident
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/incidents", nil, nil, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (c *Client) CreateIncident(ctx context.Context, creds backend.Credentials, in backend.CreateIncidentInput) (backend.Incident, error) {
	var out backend.Incident
	err := c.http.DoJSON(ctx, http.MethodPost, "/api/incidents", credHeaders(creds), createIncidentRequest{
		Title:        in.Title,
		Description:  in.Description,
		Location:     in.Location,
		IncidentType: in.IncidentType,
		ContactInfo:  in.ContactInfo,
	}, &out)
	if err != nil {
		return backend.Incident{}, mapErr(err)
	}
	return out, nil
}
