// Package loci is a service locator that picks the best-matching
// implementation of a service type using two optional request signals: a
// context value (who is asking - only its runtime type matters) and a
// hierarchical location (where the request originates).
//
// # Overview
//
// Competing registrations for the same service type are scored and the
// highest combined score wins:
//
//   - An exact location match at the most specific applicable hierarchy
//     level scores 100; a registration with no location constraint is always
//     eligible but scores 0.
//   - An exact context type match scores 100, a subtype match 10, and no
//     constraint 0. A context-constrained registration that does not match
//     the request is ineligible outright.
//   - Ties fall to recency: the most recently registered candidate wins.
//
// So a registration matching both signals beats one matching either alone,
// which beats an unconstrained default.
//
// # Basic Usage
//
// Build a locator from a collection, then resolve:
//
//	c := loci.NewCollection()
//	loci.Add[Greeting](c, NewDefaultGreeting)
//	loci.Add[Greeting](c, NewEmployeeGreeting, loci.ForContext[Employee]())
//	loci.Add[PageRenderer](c, NewAdminRenderer, loci.AtPath("/admin"))
//
//	locator, err := c.Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	g, err := loci.Resolve[Greeting](locator, loci.WithContext(employee))
//	r, err := loci.Resolve[PageRenderer](locator, loci.AtPath("/admin/users"))
//
// # Immutability
//
// A Locator is an immutable snapshot. Register derives a new Locator and
// never alters the receiver, so snapshots can be shared across goroutines
// without locks; selection decisions are memoized per snapshot in a cache
// that tolerates redundant concurrent computation.
//
// # Registrations
//
// A registration holds either a prebuilt singleton value, returned as-is on
// every resolution, or a constructor invoked per resolution with resolved
// inputs. Constructor inputs are analyzed once, at registration time; inputs
// may be other services, the request's context or location, or static
// defaults (see In).
package loci
