package loci

import (
	"reflect"

	"go.uber.org/multierr"
)

// Collection is a batch registration builder, so callers assembling many
// registrations do not have to thread locator snapshots by hand.
//
// Collection is NOT thread-safe. Configure it in a single goroutine, then
// Build the Locator.
//
// Example:
//
//	c := loci.NewCollection()
//	loci.Add[Greeting](c, NewDefaultGreeting)
//	loci.Add[Greeting](c, NewEmployeeGreeting, loci.ForContext[Employee]())
//
//	locator, err := c.Build()
type Collection struct {
	registrations []*Registration
	errs          []error
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add registers impl for serviceType. Functions are constructors, anything
// else is a prebuilt singleton value. Errors are collected and reported
// together by Build.
func (c *Collection) Add(serviceType reflect.Type, impl any, opts ...RegistrationOption) *Collection {
	reg, err := NewRegistration(serviceType, impl, opts...)
	if err != nil {
		c.errs = append(c.errs, err)
		return c
	}
	c.registrations = append(c.registrations, reg)
	return c
}

// AddInstance registers impl as a prebuilt singleton value, even when it is
// a function.
func (c *Collection) AddInstance(serviceType reflect.Type, impl any, opts ...RegistrationOption) *Collection {
	return c.Add(serviceType, impl, append(opts, AsInstance())...)
}

// AddModules applies module configurations to the collection.
func (c *Collection) AddModules(modules ...ModuleOption) *Collection {
	for _, m := range modules {
		if m == nil {
			continue
		}
		if err := m(c); err != nil {
			c.errs = append(c.errs, err)
		}
	}
	return c
}

// Count returns the number of successfully created registrations.
func (c *Collection) Count() int {
	return len(c.registrations)
}

// Build creates a Locator holding every registration, in the order they were
// added (so the last-added wins LIFO ties). If any Add failed, Build returns
// all collected errors combined and no Locator.
func (c *Collection) Build(opts ...LocatorOption) (*Locator, error) {
	if err := multierr.Combine(c.errs...); err != nil {
		return nil, err
	}
	l := NewLocator(opts...)
	for _, reg := range c.registrations {
		l = l.Register(reg)
	}
	return l, nil
}

// Add is the generic form of Collection.Add, convenient for interface
// service types.
func Add[T any](c *Collection, impl any, opts ...RegistrationOption) *Collection {
	return c.Add(TypeOf[T](), impl, opts...)
}

// AddInstance is the generic form of Collection.AddInstance.
func AddInstance[T any](c *Collection, impl any, opts ...RegistrationOption) *Collection {
	return c.AddInstance(TypeOf[T](), impl, opts...)
}
