package loci

import "reflect"

// ModuleOption represents a registration action within a module.
type ModuleOption func(*Collection) error

// NewModule groups related registrations under a name. Failures inside the
// module are wrapped in ModuleError carrying the module's name. Modules nest.
//
// Example:
//
//	var RenderingModule = loci.NewModule("rendering",
//	    loci.Provide(loci.TypeOf[PageRenderer](), NewPublicRenderer),
//	    loci.Provide(loci.TypeOf[PageRenderer](), NewAdminRenderer, loci.AtPath("/admin")),
//	)
func NewModule(name string, builders ...ModuleOption) ModuleOption {
	return func(c *Collection) error {
		for _, builder := range builders {
			if builder == nil {
				continue
			}
			if err := builder(c); err != nil {
				return ModuleError{Module: name, Cause: err}
			}
		}
		return nil
	}
}

// Provide creates a module action registering a constructible (or, for
// non-function impls, a prebuilt value) for serviceType.
func Provide(serviceType reflect.Type, impl any, opts ...RegistrationOption) ModuleOption {
	return func(c *Collection) error {
		reg, err := NewRegistration(serviceType, impl, opts...)
		if err != nil {
			return err
		}
		c.registrations = append(c.registrations, reg)
		return nil
	}
}

// Supply creates a module action registering a prebuilt singleton value.
func Supply(serviceType reflect.Type, value any, opts ...RegistrationOption) ModuleOption {
	return Provide(serviceType, value, append(opts, AsInstance())...)
}
