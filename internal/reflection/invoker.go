package reflection

import (
	"fmt"
	"reflect"
	"runtime/debug"
)

// DependencyResolver supplies values for constructor inputs. The caller owns
// all resolution policy; the invoker only assembles arguments and calls the
// constructor.
type DependencyResolver interface {
	ResolveDependency(dep *Dependency) (reflect.Value, error)
}

// PanicError is returned when a constructor panics during invocation. It
// captures the panic value and stack trace for debugging.
type PanicError struct {
	Constructor reflect.Type
	Value       any
	Stack       []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("constructor %s panicked: %v", e.Constructor, e.Value)
}

// Invoke calls the analyzed constructor with inputs obtained from resolver.
// A trailing error return is unwrapped; panics are converted to *PanicError.
func Invoke(info *ConstructorInfo, resolver DependencyResolver) (result any, err error) {
	if info == nil {
		return nil, fmt.Errorf("constructor info cannot be nil")
	}
	if resolver == nil {
		return nil, fmt.Errorf("dependency resolver cannot be nil")
	}

	var args []reflect.Value
	if info.IsParamObject {
		param := reflect.New(info.paramType).Elem()
		for _, dep := range info.Dependencies {
			v, rerr := resolver.ResolveDependency(dep)
			if rerr != nil {
				return nil, rerr
			}
			if v.IsValid() {
				param.Field(dep.Index).Set(v)
			}
		}
		args = []reflect.Value{param}
	} else {
		args = make([]reflect.Value, len(info.Dependencies))
		for i, dep := range info.Dependencies {
			v, rerr := resolver.ResolveDependency(dep)
			if rerr != nil {
				return nil, rerr
			}
			if !v.IsValid() {
				v = reflect.Zero(dep.Type)
			}
			args[i] = v
		}
	}

	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{
				Constructor: info.Type,
				Value:       r,
				Stack:       debug.Stack(),
			}
		}
	}()

	results := info.Value.Call(args)

	if info.HasErrorReturn {
		if errVal := results[1]; !errVal.IsNil() {
			return nil, errVal.Interface().(error)
		}
	}
	return results[0].Interface(), nil
}
