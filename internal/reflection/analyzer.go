package reflection

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"
)

// In is the marker type for parameter objects. A constructor taking a single
// struct parameter with In embedded anonymously has its exported fields
// treated as individual inputs, with per-field tags controlling how each one
// is obtained.
type In struct{}

var (
	inType  = reflect.TypeOf((*In)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// InjectKind says how a single constructor input is obtained at build time.
type InjectKind int

const (
	// InjectService resolves the input through the locator.
	InjectService InjectKind = iota

	// InjectContext supplies the request's context value.
	InjectContext

	// InjectLocation supplies the request's location value.
	InjectLocation

	// InjectDefault supplies a static default parsed from a struct tag.
	InjectDefault
)

// Dependency describes one input of a constructor, extracted once at
// registration time. The resolver consuming it trusts this metadata verbatim.
type Dependency struct {
	// Type of the value the constructor expects.
	Type reflect.Type

	// Index is the parameter position, or the field index in a param object.
	Index int

	// FieldName is the field name for param objects, "" for positional
	// parameters.
	FieldName string

	// Optional inputs fall back to their zero value when unresolvable.
	Optional bool

	// Inject says where the value comes from.
	Inject InjectKind

	// Default holds the raw default literal when Inject is InjectDefault.
	Default string
}

// DefaultValue parses the dependency's default literal into a value of the
// dependency's type. Only strings, bools, integers, and floats are supported.
func (d *Dependency) DefaultValue() (reflect.Value, error) {
	v := reflect.New(d.Type).Elem()
	switch d.Type.Kind() {
	case reflect.String:
		v.SetString(d.Default)
	case reflect.Bool:
		b, err := strconv.ParseBool(d.Default)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid bool default %q: %w", d.Default, err)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(d.Default, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid int default %q: %w", d.Default, err)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(d.Default, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid uint default %q: %w", d.Default, err)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(d.Default, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid float default %q: %w", d.Default, err)
		}
		v.SetFloat(f)
	default:
		return reflect.Value{}, fmt.Errorf("default tag not supported for %s fields", d.Type.Kind())
	}
	return v, nil
}

// ConstructorInfo contains analyzed information about a constructor function.
type ConstructorInfo struct {
	Type           reflect.Type
	Value          reflect.Value
	Dependencies   []*Dependency
	ReturnType     reflect.Type
	HasErrorReturn bool

	// IsParamObject is true when the constructor takes a single struct
	// parameter with In embedded.
	IsParamObject bool
	paramType     reflect.Type
}

// Analyzer performs reflection-based analysis of constructors and caches the
// results, so the expensive reflective walk happens once per constructor.
type Analyzer struct {
	mu    sync.RWMutex
	cache map[uintptr]*ConstructorInfo

	// locationType is recognized as a location input regardless of tags.
	locationType reflect.Type
}

// NewAnalyzer creates an Analyzer. locationType, when non-nil, marks the type
// whose parameters receive the request's location value.
func NewAnalyzer(locationType reflect.Type) *Analyzer {
	return &Analyzer{
		cache:        make(map[uintptr]*ConstructorInfo),
		locationType: locationType,
	}
}

// Analyze inspects a constructor function and extracts its input metadata.
// Results are cached by function pointer.
func (a *Analyzer) Analyze(constructor any) (*ConstructorInfo, error) {
	if constructor == nil {
		return nil, fmt.Errorf("constructor cannot be nil")
	}

	val := reflect.ValueOf(constructor)
	if !val.IsValid() || val.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a function, got %T", constructor)
	}
	if val.IsNil() {
		return nil, fmt.Errorf("constructor cannot be nil")
	}

	key := val.Pointer()
	a.mu.RLock()
	cached, ok := a.cache[key]
	a.mu.RUnlock()
	if ok {
		return cached, nil
	}

	info, err := a.analyze(val)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	// Another goroutine may have analyzed the same constructor in the
	// meantime; both computed the same info, either may win.
	if existing, ok := a.cache[key]; ok {
		info = existing
	} else {
		a.cache[key] = info
	}
	a.mu.Unlock()

	return info, nil
}

func (a *Analyzer) analyze(val reflect.Value) (*ConstructorInfo, error) {
	typ := val.Type()

	if typ.IsVariadic() {
		return nil, fmt.Errorf("variadic constructors are not supported")
	}

	returnType, hasErr, err := a.analyzeReturns(typ)
	if err != nil {
		return nil, err
	}

	info := &ConstructorInfo{
		Type:           typ,
		Value:          val,
		ReturnType:     returnType,
		HasErrorReturn: hasErr,
	}

	if typ.NumIn() == 1 && isParamObject(typ.In(0)) {
		info.IsParamObject = true
		info.paramType = typ.In(0)
		info.Dependencies, err = a.analyzeParamObject(typ.In(0))
		if err != nil {
			return nil, err
		}
		return info, nil
	}

	for i := 0; i < typ.NumIn(); i++ {
		info.Dependencies = append(info.Dependencies, &Dependency{
			Type:   typ.In(i),
			Index:  i,
			Inject: a.injectKindForType(typ.In(i)),
		})
	}
	return info, nil
}

func (a *Analyzer) analyzeReturns(typ reflect.Type) (reflect.Type, bool, error) {
	switch typ.NumOut() {
	case 1:
		if typ.Out(0) == errType {
			return nil, false, fmt.Errorf("constructor must return a service value, not just an error")
		}
		return typ.Out(0), false, nil
	case 2:
		if typ.Out(1) != errType {
			return nil, false, fmt.Errorf("second return value must be error, got %s", typ.Out(1))
		}
		if typ.Out(0) == errType {
			return nil, false, fmt.Errorf("first return value cannot be error")
		}
		return typ.Out(0), true, nil
	default:
		return nil, false, fmt.Errorf("constructor must return (T) or (T, error), got %d return values", typ.NumOut())
	}
}

func (a *Analyzer) analyzeParamObject(typ reflect.Type) ([]*Dependency, error) {
	var deps []*Dependency
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Anonymous && field.Type == inType {
			continue
		}
		if !field.IsExported() {
			continue
		}

		dep := &Dependency{
			Type:      field.Type,
			Index:     i,
			FieldName: field.Name,
			Inject:    a.injectKindForType(field.Type),
		}

		if v, ok := field.Tag.Lookup("optional"); ok && v == "true" {
			dep.Optional = true
		}
		if v, ok := field.Tag.Lookup("default"); ok {
			dep.Inject = InjectDefault
			dep.Default = v
		}
		if v, ok := field.Tag.Lookup("inject"); ok {
			switch v {
			case "context":
				dep.Inject = InjectContext
			case "location":
				dep.Inject = InjectLocation
			default:
				return nil, fmt.Errorf("invalid inject tag %q on field %s (want \"context\" or \"location\")", v, field.Name)
			}
		}

		deps = append(deps, dep)
	}
	return deps, nil
}

func (a *Analyzer) injectKindForType(t reflect.Type) InjectKind {
	if a.locationType != nil && t == a.locationType {
		return InjectLocation
	}
	return InjectService
}

// isParamObject reports whether a type is a struct with In embedded.
func isParamObject(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type == inType {
			return true
		}
	}
	return false
}
