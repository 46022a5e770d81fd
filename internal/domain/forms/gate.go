// Package forms contiene el guard de envío único por formulario.
package forms

import "sync"

// Gate implementa el estado Submitting de un formulario: mientras un envío
// para una key (sesión + formulario) sigue en vuelo, cualquier reintento
// se rechaza sin llegar al backend. Un envío por vez por formulario; no se
// encolan envíos concurrentes.
type Gate struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewGate() *Gate {
	return &Gate{inflight: make(map[string]struct{})}
}

// TryBegin intenta tomar la key. Retorna false si ya hay un envío activo.
func (g *Gate) TryBegin(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inflight[key]; busy {
		return false
	}
	g.inflight[key] = struct{}{}
	return true
}

// End libera la key. Llamar siempre (defer) al resolver el envío.
func (g *Gate) End(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, key)
}
