package loci

import (
	"reflect"
	"sync"
)

// selectionKey identifies one resolution shape: the service type plus the
// request's context type and location. Only the context value's type
// participates; the value itself never does.
type selectionKey struct {
	service     reflect.Type
	context     reflect.Type // nil when the request carries no context
	location    string       // canonical path
	hasLocation bool         // distinguishes "no location" from the root
}

func keyFor(serviceType reflect.Type, req request) selectionKey {
	k := selectionKey{service: serviceType, context: req.contextType}
	if req.hasLocation {
		k.location = req.location.path
		k.hasLocation = true
	}
	return k
}

// selectionCache memoizes matcher decisions - which registration won - not
// constructed instances. Because the matcher is pure, two goroutines racing
// on the same key compute the same winner; LoadOrStore makes the redundant
// write idempotent, so no locking around the matcher call is needed.
type selectionCache struct {
	entries sync.Map // selectionKey -> *Registration
}

func newSelectionCache() *selectionCache {
	return &selectionCache{}
}

func (c *selectionCache) load(key selectionKey) (*Registration, bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*Registration), true
}

// store records a winner and returns the registration actually cached, which
// is the first writer's on a race.
func (c *selectionCache) store(key selectionKey, reg *Registration) *Registration {
	actual, _ := c.entries.LoadOrStore(key, reg)
	return actual.(*Registration)
}

// size counts cached selections. Test and debugging aid.
func (c *selectionCache) size() int {
	n := 0
	c.entries.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}
