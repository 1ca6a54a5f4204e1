package loci

import "reflect"

// serviceEntry holds the candidate registrations for one service type, split
// by shape. Both lists are LIFO: most recently registered first.
type serviceEntry struct {
	singletons     []*Registration
	constructibles []*Registration
}

func (e *serviceEntry) count() int {
	return len(e.singletons) + len(e.constructibles)
}

// each calls fn for every candidate, singletons first. Iteration order does
// not decide recency; sequence numbers do.
func (e *serviceEntry) each(fn func(*Registration)) {
	for _, r := range e.singletons {
		fn(r)
	}
	for _, r := range e.constructibles {
		fn(r)
	}
}

// store is an append-only snapshot index from service type to its candidate
// registrations. It is never mutated after construction: with() derives a new
// store, cloning only the touched entry and sharing everything else, so a
// store can be read from any number of goroutines without locks.
type store struct {
	services map[reflect.Type]*serviceEntry

	// nextSeq numbers the next insertion; strictly increasing across a
	// chain of derived stores, giving total recency order.
	nextSeq uint64
}

func newStore() *store {
	return &store{services: make(map[reflect.Type]*serviceEntry)}
}

// entry returns the candidates for a service type, nil when never registered.
func (s *store) entry(t reflect.Type) *serviceEntry {
	return s.services[t]
}

// with derives a new store with reg prepended to the appropriate bucket for
// its service type. The receiver and the registrations it shares are left
// untouched; the inserted record is a copy stamped with the next sequence
// number.
func (s *store) with(reg *Registration) *store {
	stamped := reg.withSeq(s.nextSeq)

	services := make(map[reflect.Type]*serviceEntry, len(s.services)+1)
	for t, e := range s.services {
		services[t] = e
	}

	entry := &serviceEntry{}
	if old := s.services[reg.serviceType]; old != nil {
		entry.singletons = old.singletons
		entry.constructibles = old.constructibles
	}
	if stamped.isInstance {
		entry.singletons = prepend(entry.singletons, stamped)
	} else {
		entry.constructibles = prepend(entry.constructibles, stamped)
	}
	services[reg.serviceType] = entry

	return &store{services: services, nextSeq: s.nextSeq + 1}
}

// prepend copies the affected bucket; the registrations themselves are
// shared with the previous snapshot.
func prepend(list []*Registration, reg *Registration) []*Registration {
	out := make([]*Registration, 0, len(list)+1)
	out = append(out, reg)
	return append(out, list...)
}

// size returns the total number of registrations across all service types.
func (s *store) size() int {
	n := 0
	for _, e := range s.services {
		n += e.count()
	}
	return n
}
