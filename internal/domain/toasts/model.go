package toasts

import "time"

// Severity define los niveles visuales de un toast.
// @Enum success, error, info
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Toast es una notificación efímera. Vive solo en la cola de su sesión;
// no se persiste ni sobrevive al proceso.
type Toast struct {
	ID        string
	Message   string
	Severity  Severity
	CreatedAt time.Time
}
