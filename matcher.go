package loci

import "reflect"

// Scoring weights. Location dominates context so that a placement-specific
// registration outranks a context-specific one when both are eligible, and a
// registration matching both always outranks one matching either alone.
const (
	locationExactScore   = 100
	contextExactScore    = 100
	contextSubtypeScore  = 10
	contextFallbackScore = 0
)

// request carries the per-resolution inputs handed down through the matcher
// and, for constructibles, through the whole construction chain.
type request struct {
	contextValue any
	contextType  reflect.Type // reflect.TypeOf(contextValue), nil when absent
	location     Location
	hasLocation  bool
	depth        int
}

// match selects the best registration for serviceType under req. It is a
// pure function over the store snapshot: no side effects, no locks, and the
// same inputs always produce the same winner - which is what lets the
// selection cache tolerate redundant concurrent computation.
func match(s *store, serviceType reflect.Type, req request) (*Registration, error) {
	entry := s.entry(serviceType)
	if entry == nil || entry.count() == 0 {
		return nil, UnregisteredServiceError{ServiceType: serviceType}
	}

	// Walk the request location toward the root and stop at the first level
	// where some candidate is registered exactly. Only candidates at that
	// level, or with no location constraint, remain eligible.
	var stopLevel Location
	haveStop := false
	if req.hasLocation {
		for level := req.location; ; level = level.Parent() {
			found := false
			entry.each(func(r *Registration) {
				if r.hasLocation && r.location == level {
					found = true
				}
			})
			if found {
				stopLevel = level
				haveStop = true
				break
			}
			if level.IsRoot() {
				break
			}
		}
	}

	var best *Registration
	bestScore := -1
	entry.each(func(r *Registration) {
		score, eligible := scoreCandidate(r, req, stopLevel, haveStop)
		if !eligible {
			return
		}
		// Highest combined score wins; equal scores fall to recency. A
		// full tie on score and sequence keeps the earlier candidate.
		if score > bestScore || (score == bestScore && r.seq > best.seq) {
			best = r
			bestScore = score
		}
	})

	if best == nil {
		err := NoMatchError{
			ServiceType: serviceType,
			ContextType: req.contextType,
			Registered:  entry.count(),
		}
		if req.hasLocation {
			loc := req.location
			err.Location = &loc
		}
		return nil, err
	}
	return best, nil
}

// scoreCandidate computes the combined location+context score for one
// registration, or reports it ineligible for this request.
func scoreCandidate(r *Registration, req request, stopLevel Location, haveStop bool) (int, bool) {
	score := 0

	if r.hasLocation {
		// Location-scoped registrations are only available at their exact
		// location or below; outside the stopping level they are out.
		if !req.hasLocation || !haveStop || r.location != stopLevel {
			return 0, false
		}
		score += locationExactScore
	}

	if r.contextType != nil {
		if req.contextType == nil {
			return 0, false
		}
		switch {
		case req.contextType == r.contextType:
			score += contextExactScore
		case req.contextType.AssignableTo(r.contextType):
			score += contextSubtypeScore
		default:
			return 0, false
		}
	} else {
		score += contextFallbackScore
	}

	return score, true
}
