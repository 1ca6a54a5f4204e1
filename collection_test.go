package loci

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestCollectionBuild(t *testing.T) {
	c := NewCollection()
	Add[Greeting](c, NewDefaultGreeting)
	Add[Greeting](c, NewEmployeeGreeting, ForContext[Employee]())
	AddInstance[PageRenderer](c, staticRenderer{page: "home"})

	assert.Equal(t, 3, c.Count())

	l, err := c.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, l.Size())

	g, err := Resolve[Greeting](l)
	require.NoError(t, err)
	assert.Equal(t, "hello", g.Greet())

	g, err = Resolve[Greeting](l, WithContext(Employee{Name: "sam"}))
	require.NoError(t, err)
	assert.Equal(t, "hello, sam", g.Greet())
}

func TestCollectionPreservesLIFO(t *testing.T) {
	c := NewCollection()
	AddInstance[PageRenderer](c, staticRenderer{page: "first"})
	AddInstance[PageRenderer](c, staticRenderer{page: "second"})

	l, err := c.Build()
	require.NoError(t, err)

	r, err := Resolve[PageRenderer](l)
	require.NoError(t, err)
	assert.Equal(t, "second", r.Render())
}

func TestCollectionAggregatesErrors(t *testing.T) {
	c := NewCollection()
	Add[Greeting](c, 42)        // not assignable
	Add[Greeting](c, func() {}) // no returns
	Add[Greeting](c, NewDefaultGreeting)

	l, err := c.Build()
	require.Error(t, err)
	assert.Nil(t, l)

	// Every failure is reported, not just the first.
	assert.Len(t, multierr.Errors(err), 2)

	var invalid InvalidRegistrationError
	assert.True(t, errors.As(err, &invalid))
}

func TestCollectionAddInstanceForcesValue(t *testing.T) {
	fn := func() string { return "x" }
	c := NewCollection()
	AddInstance[func() string](c, fn)

	l, err := c.Build()
	require.NoError(t, err)

	got, err := Resolve[func() string](l)
	require.NoError(t, err)
	assert.Equal(t, "x", got())
}

func TestCollectionBuildWithLogger(t *testing.T) {
	c := NewCollection()
	Add[Greeting](c, NewDefaultGreeting)

	l, err := c.Build(WithLogger(NopLogger{}))
	require.NoError(t, err)
	assert.NotNil(t, l)
}
