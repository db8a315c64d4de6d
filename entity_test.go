package nametable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntities_CreateDeleteReuse(t *testing.T) {
	var es Entities
	a := es.Create()
	b := es.Create()
	assert.Equal(t, Entity{0, 1}, a)
	assert.Equal(t, Entity{1, 1}, b)
	assert.False(t, a.IsZero())
	assert.True(t, Entity{}.IsZero())
	assert.Equal(t, "1v1", b.String())

	require.True(t, es.delete(a))
	assert.False(t, es.delete(a))
	assert.False(t, es.IsAlive(a))
	assert.Equal(t, 1, es.Len())

	c := es.Create()
	assert.Equal(t, Entity{0, 2}, c)
	assert.True(t, es.IsAlive(c))
	assert.False(t, es.IsAlive(a), "old generation stays dead")
	assert.False(t, es.IsAlive(Entity{7, 1}))
	assert.Equal(t, []Entity{c, b}, es.All())
}

func TestEntities_Restore(t *testing.T) {
	var es Entities
	es.restore(0, 3, false)
	es.restore(1, 1, true)
	es.restore(2, 5, false)
	es.rebuildFreeList()

	assert.Equal(t, 1, es.Len())
	assert.Equal(t, 3, es.slots())
	assert.True(t, es.IsAlive(Entity{1, 1}))

	assert.Equal(t, Entity{0, 4}, es.Create())
	assert.Equal(t, Entity{2, 6}, es.Create())
	assert.Equal(t, Entity{3, 1}, es.Create())

	assert.Panics(t, func() { es.restore(9, 1, true) })
}
