package toasts

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL es cuánto vive un toast si nadie lo descarta antes.
const DefaultTTL = 5 * time.Second

// Queue mantiene los toasts activos de UNA sesión, en orden de inserción.
// Cada Show agenda una tarea de auto-descarte keyed por id; el descarte
// manual cancela esa tarea. Dismiss sobre un id inexistente es no-op.
type Queue struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	items  []Toast
	timers map[string]*time.Timer
}

func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		ttl:    ttl,
		now:    time.Now,
		timers: make(map[string]*time.Timer),
	}
}

// Show agrega un toast al final de la cola y agenda su expiración.
// Fire-and-forget: no retorna nada. Mensajes duplicados producen
// entradas duplicadas; nunca se dedupea ni se mergea.
func (q *Queue) Show(message string, severity Severity) {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := uuid.NewString()
	q.items = append(q.items, Toast{
		ID:        id,
		Message:   message,
		Severity:  severity,
		CreatedAt: q.now(),
	})

	// El timer dispara exactamente una vez; si el toast ya fue
	// descartado a mano, Dismiss es no-op.
	q.timers[id] = time.AfterFunc(q.ttl, func() {
		q.Dismiss(id)
	})
}

// Dismiss remueve el toast con ese id si sigue activo. Idempotente.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}

	for i, item := range q.items {
		if item.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Active retorna una copia de los toasts vigentes en orden de display.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Toast, len(q.items))
	copy(out, q.items)
	return out
}

// Manager reparte una Queue por sesión, creándolas on demand.
// Es el "contexto de toasts" que se inyecta a los handlers; no hay
// estado global de paquete.
type Manager struct {
	mu     sync.Mutex
	ttl    time.Duration
	queues map[string]*Queue
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:    ttl,
		queues: make(map[string]*Queue),
	}
}

func (m *Manager) For(sessionID string) *Queue {
	m.mu.Lock()
	defer m.mu.Unlock()

	q, ok := m.queues[sessionID]
	if !ok {
		q = NewQueue(m.ttl)
		m.queues[sessionID] = q
	}
	return q
}
