package toasts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueShowKeepsInsertionOrder(t *testing.T) {
	q := NewQueue(time.Minute)

	q.Show("first", SeveritySuccess)
	q.Show("second", SeverityError)
	q.Show("third", SeverityInfo)

	active := q.Active()
	require.Len(t, active, 3)
	assert.Equal(t, "first", active[0].Message)
	assert.Equal(t, "second", active[1].Message)
	assert.Equal(t, "third", active[2].Message)
}

func TestQueueAssignsUniqueIDs(t *testing.T) {
	q := NewQueue(time.Minute)

	// Mismo mensaje y severidad: deben quedar como entradas distintas.
	q.Show("saved", SeveritySuccess)
	q.Show("saved", SeveritySuccess)

	active := q.Active()
	require.Len(t, active, 2)
	assert.NotEqual(t, active[0].ID, active[1].ID)
}

func TestQueueDismissRemovesOnlyTarget(t *testing.T) {
	q := NewQueue(time.Minute)

	q.Show("a", SeverityInfo)
	q.Show("b", SeverityInfo)
	q.Show("c", SeverityInfo)

	target := q.Active()[1]
	q.Dismiss(target.ID)

	active := q.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].Message)
	assert.Equal(t, "c", active[1].Message)
}

func TestQueueDismissIsIdempotent(t *testing.T) {
	q := NewQueue(time.Minute)

	q.Show("only", SeverityInfo)
	id := q.Active()[0].ID

	q.Dismiss(id)
	q.Dismiss(id)
	q.Dismiss("no-such-id")

	assert.Empty(t, q.Active())
}

func TestQueueAutoExpires(t *testing.T) {
	q := NewQueue(20 * time.Millisecond)

	q.Show("short lived", SeverityInfo)
	require.Len(t, q.Active(), 1)

	assert.Eventually(t, func() bool {
		return len(q.Active()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestQueueManualDismissCancelsExpiry(t *testing.T) {
	q := NewQueue(20 * time.Millisecond)

	q.Show("gone early", SeverityInfo)
	q.Dismiss(q.Active()[0].ID)

	// Espera a que el timer hubiese disparado; no debe pasar nada raro.
	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, q.Active())
}

func TestManagerIsolatesSessions(t *testing.T) {
	m := NewManager(time.Minute)

	m.For("session-a").Show("for a", SeverityInfo)

	assert.Len(t, m.For("session-a").Active(), 1)
	assert.Empty(t, m.For("session-b").Active())
}

func TestManagerReturnsSameQueue(t *testing.T) {
	m := NewManager(time.Minute)

	assert.Same(t, m.For("sid"), m.For("sid"))
}
