package reflection

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLocation struct {
	path string
}

type testService struct {
	Name string
}

func TestAnalyzeSimpleConstructor(t *testing.T) {
	a := NewAnalyzer(nil)

	info, err := a.Analyze(func(s string, n int) *testService { return nil })
	require.NoError(t, err)

	assert.False(t, info.IsParamObject)
	assert.False(t, info.HasErrorReturn)
	assert.Equal(t, reflect.TypeOf(&testService{}), info.ReturnType)
	require.Len(t, info.Dependencies, 2)
	assert.Equal(t, reflect.TypeOf(""), info.Dependencies[0].Type)
	assert.Equal(t, InjectService, info.Dependencies[0].Inject)
	assert.Equal(t, 1, info.Dependencies[1].Index)
}

func TestAnalyzeErrorReturn(t *testing.T) {
	a := NewAnalyzer(nil)

	info, err := a.Analyze(func() (*testService, error) { return nil, nil })
	require.NoError(t, err)
	assert.True(t, info.HasErrorReturn)
	assert.Equal(t, reflect.TypeOf(&testService{}), info.ReturnType)
}

func TestAnalyzeLocationType(t *testing.T) {
	locType := reflect.TypeOf(testLocation{})
	a := NewAnalyzer(locType)

	info, err := a.Analyze(func(where testLocation) *testService { return nil })
	require.NoError(t, err)
	require.Len(t, info.Dependencies, 1)
	assert.Equal(t, InjectLocation, info.Dependencies[0].Inject)
}

func TestAnalyzeInvalidConstructors(t *testing.T) {
	a := NewAnalyzer(nil)

	tests := []struct {
		name string
		ctor any
	}{
		{name: "nil", ctor: nil},
		{name: "not a function", ctor: 42},
		{name: "typed nil function", ctor: (func() *testService)(nil)},
		{name: "no returns", ctor: func() {}},
		{name: "error only", ctor: func() error { return nil }},
		{name: "error first", ctor: func() (error, *testService) { return nil, nil }},
		{name: "three returns", ctor: func() (*testService, *testService, error) { return nil, nil, nil }},
		{name: "second return not error", ctor: func() (*testService, int) { return nil, 0 }},
		{name: "variadic", ctor: func(...string) *testService { return nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Analyze(tt.ctor)
			assert.Error(t, err)
		})
	}
}

func TestAnalyzeCachesByFunctionPointer(t *testing.T) {
	a := NewAnalyzer(nil)
	ctor := func() *testService { return nil }

	info1, err := a.Analyze(ctor)
	require.NoError(t, err)
	info2, err := a.Analyze(ctor)
	require.NoError(t, err)

	assert.Same(t, info1, info2)
}

type testParams struct {
	In

	Service  *testService
	Where    testLocation `inject:"location"`
	Who      any          `inject:"context"`
	Optional *testService `optional:"true"`
	Limit    int          `default:"10"`

	unexported string
}

func TestAnalyzeParamObject(t *testing.T) {
	a := NewAnalyzer(nil)

	info, err := a.Analyze(func(p testParams) *testService { return nil })
	require.NoError(t, err)

	assert.True(t, info.IsParamObject)
	require.Len(t, info.Dependencies, 5) // In marker and unexported field skipped

	byName := map[string]*Dependency{}
	for _, dep := range info.Dependencies {
		byName[dep.FieldName] = dep
	}

	assert.Equal(t, InjectService, byName["Service"].Inject)
	assert.Equal(t, InjectLocation, byName["Where"].Inject)
	assert.Equal(t, InjectContext, byName["Who"].Inject)
	assert.True(t, byName["Optional"].Optional)
	assert.Equal(t, InjectDefault, byName["Limit"].Inject)
	assert.Equal(t, "10", byName["Limit"].Default)
}

func TestAnalyzeParamObjectInvalidTag(t *testing.T) {
	type badParams struct {
		In
		X int `inject:"nonsense"`
	}

	a := NewAnalyzer(nil)
	_, err := a.Analyze(func(p badParams) *testService { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inject")
}

func TestDependencyDefaultValue(t *testing.T) {
	tests := []struct {
		name    string
		typ     reflect.Type
		literal string
		want    any
		wantErr bool
	}{
		{name: "string", typ: reflect.TypeOf(""), literal: "abc", want: "abc"},
		{name: "int", typ: reflect.TypeOf(0), literal: "42", want: 42},
		{name: "uint", typ: reflect.TypeOf(uint(0)), literal: "7", want: uint(7)},
		{name: "bool", typ: reflect.TypeOf(false), literal: "true", want: true},
		{name: "float", typ: reflect.TypeOf(0.0), literal: "1.5", want: 1.5},
		{name: "bad int", typ: reflect.TypeOf(0), literal: "abc", wantErr: true},
		{name: "unsupported kind", typ: reflect.TypeOf([]string{}), literal: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dep := &Dependency{Type: tt.typ, Default: tt.literal, Inject: InjectDefault}
			v, err := dep.DefaultValue()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Interface())
		})
	}
}
