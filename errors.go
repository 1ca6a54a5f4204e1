package loci

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/loci-dev/loci/internal/reflection"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// These are base errors that typed errors match against via errors.Is.
// Never return these directly to users - always wrap them with context.

var (
	// Resolution errors.
	ErrServiceNotFound = errors.New("service not found")
	ErrServiceTypeNil  = errors.New("service type cannot be nil")
	ErrLocatorNil      = errors.New("locator cannot be nil")

	// Registration errors.
	ErrImplementationNil = errors.New("implementation cannot be nil")
	ErrRegistrationNil   = errors.New("registration cannot be nil")
)

var (
	_ error = UnregisteredServiceError{}
	_ error = NoMatchError{}
	_ error = InvalidRegistrationError{}
	_ error = ConstructorInvocationError{}
	_ error = ResolutionDepthError{}
	_ error = ModuleError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// UnregisteredServiceError indicates the service type has zero registrations,
// under any context or location. The fix is to register something.
type UnregisteredServiceError struct {
	ServiceType reflect.Type
}

func (e UnregisteredServiceError) Error() string {
	return fmt.Sprintf("no registrations for service %s", formatType(e.ServiceType))
}

func (e UnregisteredServiceError) Is(target error) bool {
	return target == ErrServiceNotFound
}

// NoMatchError indicates the service type has registrations, but none are
// eligible for the request's context/location pair. The fix is to loosen the
// request or register an unconstrained fallback - distinct from
// UnregisteredServiceError, where nothing is registered at all.
type NoMatchError struct {
	ServiceType reflect.Type
	ContextType reflect.Type // nil when the request carried no context
	Location    *Location    // nil when the request carried no location
	Registered  int          // registrations that exist for ServiceType
}

func (e NoMatchError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("no eligible registration for service %s", formatType(e.ServiceType)))

	switch {
	case e.ContextType != nil && e.Location != nil:
		b.WriteString(fmt.Sprintf(" with context %s at %s", formatType(e.ContextType), e.Location))
	case e.ContextType != nil:
		b.WriteString(fmt.Sprintf(" with context %s", formatType(e.ContextType)))
	case e.Location != nil:
		b.WriteString(fmt.Sprintf(" at %s", e.Location))
	default:
		b.WriteString(" without context or location")
	}

	b.WriteString(fmt.Sprintf(" (%d registration(s) exist, none match)", e.Registered))
	return b.String()
}

func (e NoMatchError) Is(target error) bool {
	return target == ErrServiceNotFound
}

// InvalidRegistrationError indicates an implementation is structurally
// unusable. It is raised at registration time, never at resolution time.
type InvalidRegistrationError struct {
	ServiceType reflect.Type
	Cause       error
}

func (e InvalidRegistrationError) Error() string {
	if e.ServiceType != nil {
		return fmt.Sprintf("invalid registration for %s: %v", formatType(e.ServiceType), e.Cause)
	}
	return fmt.Sprintf("invalid registration: %v", e.Cause)
}

func (e InvalidRegistrationError) Unwrap() error {
	return e.Cause
}

// ConstructorInvocationError wraps failures while building a constructible's
// value. The cause keeps its original identity via Unwrap, so callers can
// tell "selection failed" apart from "construction failed".
type ConstructorInvocationError struct {
	ServiceType reflect.Type
	Constructor reflect.Type
	Cause       error
}

func (e ConstructorInvocationError) Error() string {
	return fmt.Sprintf("failed to construct %s via %s: %v",
		formatType(e.ServiceType), formatType(e.Constructor), e.Cause)
}

func (e ConstructorInvocationError) Unwrap() error {
	return e.Cause
}

// ConstructorPanicError is returned when a constructor panics, carrying the
// panic value and stack trace.
type ConstructorPanicError = reflection.PanicError

// ResolutionDepthError indicates resolution recursed past the depth limit,
// almost always because of a dependency cycle among constructibles.
type ResolutionDepthError struct {
	ServiceType reflect.Type
	Depth       int
}

func (e ResolutionDepthError) Error() string {
	return fmt.Sprintf("resolution of %s exceeded depth %d (dependency cycle?)", formatType(e.ServiceType), e.Depth)
}

// ModuleError wraps errors from module registration.
type ModuleError struct {
	Module string
	Cause  error
}

func (e ModuleError) Error() string {
	return fmt.Sprintf("module %q: %v", e.Module, e.Cause)
}

func (e ModuleError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err is either kind of not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrServiceNotFound)
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		// Format pointers as *Type instead of *package.Type
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Slice:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "[]" + elem.Name()
		}
		return t.String()
	case reflect.Interface, reflect.Struct:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
