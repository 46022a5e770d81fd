package geolocate

// Códigos del GeolocationPositionError del navegador.
const (
	codePermissionDenied    = 1
	codePositionUnavailable = 2
	codeTimeout             = 3
)

// Classify mapea el código de error del proveedor de ubicación a un
// mensaje para el usuario; cualquier código desconocido cae al genérico.
func Classify(code int) string {
	switch code {
	case codePermissionDenied:
		return "Location access was denied. Please allow location access and try again."
	case codePositionUnavailable:
		return "Your current position is unavailable."
	case codeTimeout:
		return "Timed out while getting your location."
	default:
		return "Could not determine your location."
	}
}
