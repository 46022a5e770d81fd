package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateRejectsSecondBegin(t *testing.T) {
	g := NewGate()

	assert.True(t, g.TryBegin("sid:add-pet"))
	assert.False(t, g.TryBegin("sid:add-pet"))
}

func TestGateKeysAreIndependent(t *testing.T) {
	g := NewGate()

	assert.True(t, g.TryBegin("sid:add-pet"))
	assert.True(t, g.TryBegin("sid:add-incident"))
	assert.True(t, g.TryBegin("other:add-pet"))
}

func TestGateEndReleasesKey(t *testing.T) {
	g := NewGate()

	assert.True(t, g.TryBegin("k"))
	g.End("k")
	assert.True(t, g.TryBegin("k"))
}

func TestGateEndWithoutBeginIsNoop(t *testing.T) {
	g := NewGate()

	g.End("never-started")
	assert.True(t, g.TryBegin("never-started"))
}
