package backend

// Species define las especies soportadas por el backend.
// @Enum dog, cat, bird, rabbit, hamster, fish, other
type Species string

const (
	SpeciesDog     Species = "dog"
	SpeciesCat     Species = "cat"
	SpeciesBird    Species = "bird"
	SpeciesRabbit  Species = "rabbit"
	SpeciesHamster Species = "hamster"
	SpeciesFish    Species = "fish"
	SpeciesOther   Species = "other"
)

// PetStatus define los estados de adopción.
// @Enum available, adopted, lost
type PetStatus string

const (
	PetAvailable PetStatus = "available"
	PetAdopted   PetStatus = "adopted"
	PetLost      PetStatus = "lost"
)

// IncidentType define los tipos de reporte comunitario.
// @Enum lost_pet, found_pet, abuse, emergency
type IncidentType string

const (
	IncidentLostPet   IncidentType = "lost_pet"
	IncidentFoundPet  IncidentType = "found_pet"
	IncidentAbuse     IncidentType = "abuse"
	IncidentEmergency IncidentType = "emergency"
)

// IncidentStatus define el ciclo de vida de un reporte.
// @Enum open, resolved, closed
type IncidentStatus string

const (
	IncidentOpen     IncidentStatus = "open"
	IncidentResolved IncidentStatus = "resolved"
	IncidentClosed   IncidentStatus = "closed"
)

func AllSpecies() []Species {
	return []Species{SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesHamster, SpeciesFish, SpeciesOther}
}

func AllPetStatuses() []PetStatus {
	return []PetStatus{PetAvailable, PetAdopted, PetLost}
}

func AllIncidentTypes() []IncidentType {
	return []IncidentType{IncidentLostPet, IncidentFoundPet, IncidentAbuse, IncidentEmergency}
}

func AllIncidentStatuses() []IncidentStatus {
	return []IncidentStatus{IncidentOpen, IncidentResolved, IncidentClosed}
}

// User es la copia efímera de la identidad que vive en la sesión.
// El ciclo de vida real lo maneja el backend.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Pet tal como lo transmite el backend. Timestamps viajan como ISO strings;
// esta capa no los interpreta más allá de formatearlos para mostrar.
type Pet struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Species     string `json:"species"`
	Breed       string `json:"breed,omitempty"`
	Age         *int   `json:"age,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Status      string `json:"status"`
	Location    string `json:"location,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
	CreatedAt   string `json:"created_at"`
	Owner       string `json:"owner"`
}

type Incident struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	IncidentType string `json:"incident_type"`
	ContactInfo  string `json:"contact_info,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	Reporter     string `json:"reporter"`
}

// SearchFilter se forwardea tal cual como query params; el filtrado
// es 100% responsabilidad del backend.
type SearchFilter struct {
	Query   string // q
	Species string // pets
	Status  string
	Type    string // incidents
}

// CreatePetInput admite imagen como archivo adjunto o como URL.
// Si ImageData está presente, ImageURL se ignora (el archivo tiene precedencia).
type CreatePetInput struct {
	Name        string
	Species     string
	Breed       string
	Age         *int
	Description string
	Location    string
	ContactInfo string
	Status      string

	ImageURL  string
	ImageName string
	ImageData []byte
}

type CreateIncidentInput struct {
	Title        string
	Description  string
	Location     string
	IncidentType string
	ContactInfo  string
}

// Credentials es la cookie de sesión del backend, opaca para esta capa.
// Viaja en el header Cookie de cada request mutante.
type Credentials string
