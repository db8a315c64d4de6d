package nametable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	a, b := NewName("Door 1"), NewName("Door 1")
	assert.True(t, a == b)
	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, NewName("door 1"), a)
	assert.NotEqual(t, NewName("Door 1 "), a)
	assert.Equal(t, "Door 1", a.String())
	assert.False(t, a.IsEmpty())
	assert.True(t, NewName("").IsEmpty())

	buf := a.Bytes()
	buf[0] = 'X'
	assert.Equal(t, "Door 1", a.String(), "Bytes returns a copy")
}
