package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnv(t *testing.T) {
	t.Parallel()

	var empty *Env
	_, ok := empty.Lookup("x")
	assert.False(t, ok)
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Map())
	_, conflict := empty.Conflict()
	assert.False(t, conflict)

	one := empty.Extend("x", 1)
	two := one.Extend("y", 2)

	v, ok := two.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, map[string]any{"x": 1, "y": 2}, two.Map())

	// extending never changes the parent
	_, ok = one.Lookup("y")
	assert.False(t, ok)
	assert.Equal(t, 1, one.Len())
}

func TestEnvConflict(t *testing.T) {
	t.Parallel()

	env := (*Env)(nil).Extend("x", 1).Extend("y", 2)
	again := env.Extend("x", 3)

	name, ok := again.Conflict()
	assert.True(t, ok)
	assert.Equal(t, "x", name)

	// the mark is inherited and keeps the first name
	later := again.Extend("y", 4).Extend("z", 5)
	name, ok = later.Conflict()
	assert.True(t, ok)
	assert.Equal(t, "x", name)

	_, ok = env.Conflict()
	assert.False(t, ok)
}

func TestEnvOverwrite(t *testing.T) {
	t.Parallel()

	env := (*Env)(nil).Extend("r", 1).Overwrite("r", []any{2})
	_, conflict := env.Conflict()
	assert.False(t, conflict)
	assert.Equal(t, map[string]any{"r": []any{2}}, env.Map())
	assert.Equal(t, 1, env.Len())
}
