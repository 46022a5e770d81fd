package geo

import (
	"context"
	"strings"
)

// Place es el resultado crudo de un reverse-geocode.
type Place struct {
	Locality             string
	City                 string
	PrincipalSubdivision string
	Postcode             string
}

// Address sintetiza una dirección legible: locality, city, subdivision y
// postcode, en ese orden, omitiendo los vacíos.
func (p Place) Address() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.Locality, p.City, p.PrincipalSubdivision, p.Postcode} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, ", ")
}

// Resolver convierte coordenadas en un Place vía un servicio externo.
type Resolver interface {
	Reverse(ctx context.Context, latitude, longitude float64) (Place, error)
}
