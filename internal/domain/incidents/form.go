package incidents

import (
	"net/http"
	"strings"

	"rescue-revolution/internal/ports/backend"
)

// IncidentForm replica los campos del formulario de reporte, con structs
// explícitos en lugar de bags dinámicos.
type IncidentForm struct {
	Title        string
	Description  string
	Location     string
	IncidentType string
	ContactInfo  string
}

func parseIncidentForm(r *http.Request) (IncidentForm, error) {
	if err := r.ParseForm(); err != nil {
		return IncidentForm{}, err
	}
	return IncidentForm{
		Title:        strings.TrimSpace(r.FormValue("title")),
		Description:  strings.TrimSpace(r.FormValue("description")),
		Location:     strings.TrimSpace(r.FormValue("location")),
		IncidentType: strings.TrimSpace(r.FormValue("incident_type")),
		ContactInfo:  strings.TrimSpace(r.FormValue("contact_info")),
	}, nil
}

func (f IncidentForm) Validate() string {
	if f.IncidentType == "" {
		return "Incident type is required"
	}
	if f.Title == "" {
		return "Title is required"
	}
	if f.Description == "" {
		return "Description is required"
	}
	if f.Location == "" {
		return "Location is required"
	}
	return ""
}

func (f IncidentForm) Input() backend.CreateIncidentInput {
	return backend.CreateIncidentInput{
		Title:        f.Title,
		Description:  f.Description,
		Location:     f.Location,
		IncidentType: f.IncidentType,
		ContactInfo:  f.ContactInfo,
	}
}
