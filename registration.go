package loci

import (
	"fmt"
	"reflect"

	"github.com/loci-dev/loci/internal/reflection"
)

// globalAnalyzer caches constructor analysis across all registrations.
// Location-typed inputs are recognized structurally, without tags.
var globalAnalyzer = reflection.NewAnalyzer(reflect.TypeOf(Location{}))

// Registration is an immutable record describing one candidate implementation
// of a service type: either a prebuilt singleton value or a constructor to be
// invoked with resolved inputs, plus optional context and location predicates.
//
// Input metadata for constructors is extracted exactly once here, at
// registration time. Resolution never re-analyzes a constructor.
type Registration struct {
	serviceType reflect.Type

	// contextType is the optional context predicate; nil matches any request.
	contextType reflect.Type

	// location is the optional placement predicate; a registration with
	// hasLocation set is only available at that location or its descendants.
	location    Location
	hasLocation bool

	// Exactly one of these two shapes is populated.
	instance   any
	isInstance bool
	ctorInfo   *reflection.ConstructorInfo

	// seq is the insertion sequence number, assigned by the store. Higher
	// means more recently registered.
	seq uint64
}

// RegistrationOption modifies how a Registration is built.
type RegistrationOption interface {
	applyRegistrationOption(*registrationOptions)
}

type registrationOptions struct {
	contextType reflect.Type
	location    Location
	hasLocation bool
	asInstance  bool
}

type contextTypeOption struct {
	t reflect.Type
}

func (o contextTypeOption) applyRegistrationOption(opts *registrationOptions) {
	opts.contextType = o.t
}

// ForContext constrains a registration to requests whose context value is of
// type T (or a subtype, which scores lower).
func ForContext[T any]() RegistrationOption {
	return contextTypeOption{t: TypeOf[T]()}
}

// ForContextType is the non-generic form of ForContext.
func ForContextType(t reflect.Type) RegistrationOption {
	return contextTypeOption{t: t}
}

type instanceOption struct{}

func (instanceOption) applyRegistrationOption(opts *registrationOptions) {
	opts.asInstance = true
}

// AsInstance forces the implementation to be treated as a prebuilt singleton
// value even when it is a function. Without it, functions are constructors.
func AsInstance() RegistrationOption {
	return instanceOption{}
}

// LocationOption scopes an operation to a location. It applies both to
// registrations (via NewRegistration, Collection.Add, ...) and to resolution
// requests (via Locator.Resolve).
type LocationOption struct {
	loc Location
}

func (o LocationOption) applyRegistrationOption(opts *registrationOptions) {
	opts.location = o.loc
	opts.hasLocation = true
}

func (o LocationOption) applyResolveOption(req *request) {
	req.location = o.loc
	req.hasLocation = true
}

// At scopes a registration, or a resolution request, to a location.
func At(loc Location) LocationOption {
	return LocationOption{loc: loc}
}

// AtPath is shorthand for At(ParseLocation(path)).
func AtPath(path string) LocationOption {
	return At(ParseLocation(path))
}

// TypeOf returns the reflect.Type of T. Unlike reflect.TypeOf on a value, it
// works for interface types: TypeOf[io.Writer]() is the interface type itself.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// NewRegistration builds an immutable Registration of impl for serviceType.
//
// A function impl is treated as a constructor and analyzed eagerly; anything
// else is a prebuilt singleton value. A function whose own type is the
// service type (the service is a func type) is treated as a value. Structural
// problems - nil implementation, a value not assignable to the service type,
// a constructor that cannot produce the service type - fail here with
// InvalidRegistrationError, never at resolution time.
func NewRegistration(serviceType reflect.Type, impl any, opts ...RegistrationOption) (*Registration, error) {
	if serviceType == nil {
		return nil, InvalidRegistrationError{Cause: ErrServiceTypeNil}
	}
	if impl == nil {
		return nil, InvalidRegistrationError{ServiceType: serviceType, Cause: ErrImplementationNil}
	}

	options := &registrationOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt.applyRegistrationOption(options)
		}
	}

	implValue := reflect.ValueOf(impl)
	if !implValue.IsValid() || (implValue.Kind() == reflect.Pointer && implValue.IsNil()) ||
		(implValue.Kind() == reflect.Func && implValue.IsNil()) {
		return nil, InvalidRegistrationError{ServiceType: serviceType, Cause: ErrImplementationNil}
	}
	implType := implValue.Type()

	reg := &Registration{
		serviceType: serviceType,
		contextType: options.contextType,
		location:    options.location,
		hasLocation: options.hasLocation,
	}

	isInstance := implType.Kind() != reflect.Func ||
		options.asInstance ||
		(serviceType.Kind() == reflect.Func && implType.AssignableTo(serviceType))

	if isInstance {
		if !implType.AssignableTo(serviceType) {
			return nil, InvalidRegistrationError{
				ServiceType: serviceType,
				Cause:       fmt.Errorf("instance of type %s is not assignable to %s", formatType(implType), formatType(serviceType)),
			}
		}
		reg.instance = impl
		reg.isInstance = true
		return reg, nil
	}

	info, err := globalAnalyzer.Analyze(impl)
	if err != nil {
		return nil, InvalidRegistrationError{ServiceType: serviceType, Cause: err}
	}
	if !info.ReturnType.AssignableTo(serviceType) {
		return nil, InvalidRegistrationError{
			ServiceType: serviceType,
			Cause:       fmt.Errorf("constructor returns %s, not assignable to %s", formatType(info.ReturnType), formatType(serviceType)),
		}
	}
	reg.ctorInfo = info
	return reg, nil
}

// MustNewRegistration is NewRegistration, panicking on error. Intended for
// package-level registrations where failure is a programming error.
func MustNewRegistration(serviceType reflect.Type, impl any, opts ...RegistrationOption) *Registration {
	reg, err := NewRegistration(serviceType, impl, opts...)
	if err != nil {
		panic(err)
	}
	return reg
}

// ServiceType returns the service type this registration satisfies.
func (r *Registration) ServiceType() reflect.Type {
	return r.serviceType
}

// ContextType returns the context predicate, nil when unconstrained.
func (r *Registration) ContextType() reflect.Type {
	return r.contextType
}

// Location returns the location predicate and whether one is set.
func (r *Registration) Location() (Location, bool) {
	return r.location, r.hasLocation
}

// IsInstance reports whether this registration holds a prebuilt singleton
// value rather than a constructor.
func (r *Registration) IsInstance() bool {
	return r.isInstance
}

// Instance returns the prebuilt value, nil for constructible registrations.
func (r *Registration) Instance() any {
	return r.instance
}

// withSeq returns a copy carrying the store-assigned sequence number, leaving
// the original untouched so one record can be registered into many locators.
func (r *Registration) withSeq(seq uint64) *Registration {
	clone := *r
	clone.seq = seq
	return &clone
}

func (r *Registration) String() string {
	var shape string
	if r.isInstance {
		shape = "instance"
	} else {
		shape = "constructor"
	}
	s := fmt.Sprintf("%s (%s", formatType(r.serviceType), shape)
	if r.contextType != nil {
		s += fmt.Sprintf(", context %s", formatType(r.contextType))
	}
	if r.hasLocation {
		s += fmt.Sprintf(", at %s", r.location)
	}
	return s + ")"
}
