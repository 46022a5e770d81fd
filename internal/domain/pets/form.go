package pets

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"rescue-revolution/internal/ports/backend"
)

const maxUploadBytes = 10 << 20 // 10MB

// PetForm son los campos del formulario de alta, con nombres explícitos
// (nada de bags dinámicos keyed por string). Los valores se conservan
// tal cual se tipearon para poder re-renderizar tras un fallo.
type PetForm struct {
	Name        string
	Species     string
	Breed       string
	Age         string
	Description string
	ImageURL    string
	Location    string
	ContactInfo string
	Status      string

	ImageName string
	ImageData []byte
}

func parsePetForm(r *http.Request) (PetForm, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return PetForm{}, err
		}
	} else if err := r.ParseForm(); err != nil {
		return PetForm{}, err
	}

	f := PetForm{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Species:     strings.TrimSpace(r.FormValue("species")),
		Breed:       strings.TrimSpace(r.FormValue("breed")),
		Age:         strings.TrimSpace(r.FormValue("age")),
		Description: strings.TrimSpace(r.FormValue("description")),
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
		Location:    strings.TrimSpace(r.FormValue("location")),
		ContactInfo: strings.TrimSpace(r.FormValue("contact_info")),
		Status:      strings.TrimSpace(r.FormValue("status")),
	}
	if f.Status == "" {
		f.Status = string(backend.PetAvailable)
	}

	if file, hdr, err := r.FormFile("image"); err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if readErr == nil && len(data) > 0 {
			f.ImageName = hdr.Filename
			f.ImageData = data
		}
	}

	return f, nil
}

// Validate re-chequea lo que el markup ya exige con `required`; un request
// armado a mano puede saltarse las constraints nativas.
func (f PetForm) Validate() string {
	if f.Name == "" {
		return "Pet name is required"
	}
	if f.Species == "" {
		return "Species is required"
	}
	if f.Age != "" {
		if _, err := strconv.Atoi(f.Age); err != nil {
			return "Age must be a number"
		}
	}
	return ""
}

// Input arma el payload para el backend. Si hay archivo adjunto, ese
// archivo tiene precedencia y la URL de imagen no se envía.
func (f PetForm) Input() backend.CreatePetInput {
	in := backend.CreatePetInput{
		Name:        f.Name,
		Species:     f.Species,
		Breed:       f.Breed,
		Description: f.Description,
		Location:    f.Location,
		ContactInfo: f.ContactInfo,
		Status:      f.Status,
	}

	if f.Age != "" {
		if n, err := strconv.Atoi(f.Age); err == nil {
			in.Age = &n
		}
	}

	if len(f.ImageData) > 0 {
		in.ImageName = f.ImageName
		in.ImageData = f.ImageData
	} else {
		in.ImageURL = f.ImageURL
	}

	return in
}
