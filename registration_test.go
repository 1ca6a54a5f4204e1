package loci

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistrationInstance(t *testing.T) {
	reg, err := NewRegistration(TypeOf[Greeting](), DefaultGreeting{})
	require.NoError(t, err)

	assert.True(t, reg.IsInstance())
	assert.Equal(t, DefaultGreeting{}, reg.Instance())
	assert.Equal(t, TypeOf[Greeting](), reg.ServiceType())
	assert.Nil(t, reg.ContextType())

	_, ok := reg.Location()
	assert.False(t, ok)
}

func TestNewRegistrationConstructor(t *testing.T) {
	reg, err := NewRegistration(TypeOf[Greeting](), NewDefaultGreeting)
	require.NoError(t, err)

	assert.False(t, reg.IsInstance())
	assert.Nil(t, reg.Instance())
	// Input metadata is extracted eagerly, at registration time.
	require.NotNil(t, reg.ctorInfo)
}

func TestNewRegistrationOptions(t *testing.T) {
	reg, err := NewRegistration(TypeOf[Greeting](), NewEmployeeGreeting,
		ForContext[Employee](), AtPath("/admin"))
	require.NoError(t, err)

	assert.Equal(t, TypeOf[Employee](), reg.ContextType())
	loc, ok := reg.Location()
	require.True(t, ok)
	assert.Equal(t, "/admin", loc.String())
}

func TestNewRegistrationFuncAsInstance(t *testing.T) {
	// A func registered for a func-typed service is a value, not a constructor.
	type handler = func() string
	impl := func() string { return "ok" }

	reg, err := NewRegistration(TypeOf[handler](), impl)
	require.NoError(t, err)
	assert.True(t, reg.IsInstance())

	// AsInstance forces the same treatment for any func.
	reg, err = NewRegistration(TypeOf[any](), impl, AsInstance())
	require.NoError(t, err)
	assert.True(t, reg.IsInstance())
}

func TestNewRegistrationInvalid(t *testing.T) {
	tests := []struct {
		name string
		impl any
	}{
		{name: "nil implementation", impl: nil},
		{name: "typed nil constructor", impl: (func() Greeting)(nil)},
		{name: "instance not assignable", impl: 42},
		{name: "constructor wrong return", impl: func() int { return 0 }},
		{name: "constructor no returns", impl: func() {}},
		{name: "constructor error only", impl: func() error { return nil }},
		{name: "variadic constructor", impl: func(...int) Greeting { return nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistration(TypeOf[Greeting](), tt.impl)
			require.Error(t, err)

			var invalid InvalidRegistrationError
			assert.True(t, errors.As(err, &invalid), "want InvalidRegistrationError, got %T", err)
		})
	}
}

func TestNewRegistrationNilServiceType(t *testing.T) {
	_, err := NewRegistration(nil, DefaultGreeting{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceTypeNil)
}

func TestMustNewRegistration(t *testing.T) {
	assert.NotPanics(t, func() {
		MustNewRegistration(TypeOf[Greeting](), DefaultGreeting{})
	})
	assert.Panics(t, func() {
		MustNewRegistration(TypeOf[Greeting](), 42)
	})
}

func TestRegistrationString(t *testing.T) {
	reg := MustNewRegistration(TypeOf[Greeting](), NewEmployeeGreeting,
		ForContext[Employee](), AtPath("/hr"))
	s := reg.String()
	assert.Contains(t, s, "Greeting")
	assert.Contains(t, s, "constructor")
	assert.Contains(t, s, "Employee")
	assert.Contains(t, s, "/hr")
}
