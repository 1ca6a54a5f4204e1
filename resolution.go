package loci

import (
	"fmt"
	"reflect"

	"github.com/loci-dev/loci/internal/reflection"
)

// construct invokes a constructible registration's constructor with resolved
// inputs. Failures are wrapped in ConstructorInvocationError; the cause keeps
// its identity through Unwrap, so callers can still errors.Is/As against the
// original construction error.
func (l *Locator) construct(reg *Registration, req request) (any, error) {
	child := req
	child.depth++

	value, err := reflection.Invoke(reg.ctorInfo, dependencyResolver{
		locator: l,
		req:     child,
		winner:  reg,
	})
	if err != nil {
		return nil, ConstructorInvocationError{
			ServiceType: reg.serviceType,
			Constructor: reg.ctorInfo.Type,
			Cause:       err,
		}
	}
	return value, nil
}

// dependencyResolver supplies constructor inputs per their metadata flags:
// service inputs resolve through the locator (carrying the request's context
// and location down the chain), context and location inputs come from the
// request, defaults are parsed from tags.
type dependencyResolver struct {
	locator *Locator
	req     request
	winner  *Registration
}

var _ reflection.DependencyResolver = dependencyResolver{}

func (r dependencyResolver) ResolveDependency(dep *reflection.Dependency) (reflect.Value, error) {
	switch dep.Inject {
	case reflection.InjectLocation:
		if !r.req.hasLocation {
			if dep.Optional {
				return reflect.Value{}, nil
			}
			return reflect.Value{}, fmt.Errorf("constructor input %s wants the request location, but the request has none", dependencyName(dep))
		}
		return reflect.ValueOf(r.req.location), nil

	case reflection.InjectContext:
		if r.req.contextType == nil {
			if dep.Optional {
				return reflect.Value{}, nil
			}
			return reflect.Value{}, fmt.Errorf("constructor input %s wants the request context, but the request has none", dependencyName(dep))
		}
		if !r.req.contextType.AssignableTo(dep.Type) {
			return reflect.Value{}, fmt.Errorf("request context %s is not assignable to constructor input %s",
				formatType(r.req.contextType), formatType(dep.Type))
		}
		return reflect.ValueOf(r.req.contextValue), nil

	case reflection.InjectDefault:
		return dep.DefaultValue()
	}

	// Service input. A positional input typed as the winning registration's
	// own context predicate receives the context value; the registration
	// declared itself context-specific, so that is what it is asking for.
	if r.winner.contextType != nil && r.req.contextType != nil && dep.Type == r.winner.contextType {
		return reflect.ValueOf(r.req.contextValue), nil
	}

	value, _, err := r.locator.resolve(dep.Type, r.req)
	if err != nil {
		if dep.Optional && IsNotFound(err) {
			return reflect.Value{}, nil
		}
		return reflect.Value{}, err
	}
	if value == nil {
		return reflect.Zero(dep.Type), nil
	}
	return reflect.ValueOf(value), nil
}

func dependencyName(dep *reflection.Dependency) string {
	if dep.FieldName != "" {
		return dep.FieldName
	}
	return fmt.Sprintf("#%d (%s)", dep.Index, formatType(dep.Type))
}
