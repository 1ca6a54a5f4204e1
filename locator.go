package loci

import (
	"reflect"

	"github.com/google/uuid"
)

// maxResolutionDepth bounds recursive construction of dependencies.
const maxResolutionDepth = 100

// Locator is the resolution façade: an immutable snapshot of a registration
// store plus a selection cache memoizing matcher decisions.
//
// Register is a functional update: it derives a new Locator and leaves the
// receiver untouched, so any number of goroutines can resolve through a
// Locator while others derive new snapshots from it. Which derived snapshot
// becomes "the" locator going forward is the caller's decision; concurrent
// Register calls from the same snapshot are not merged.
type Locator struct {
	id     string
	store  *store
	cache  *selectionCache
	logger Logger
}

// LocatorOption configures a Locator at construction time.
type LocatorOption interface {
	applyLocatorOption(*locatorOptions)
}

type locatorOptions struct {
	logger Logger
}

type loggerOption struct {
	logger Logger
}

func (o loggerOption) applyLocatorOption(opts *locatorOptions) {
	opts.logger = o.logger
}

// WithLogger sets the event logger. Derived locators inherit it.
func WithLogger(logger Logger) LocatorOption {
	return loggerOption{logger: logger}
}

// NewLocator creates an empty Locator.
func NewLocator(opts ...LocatorOption) *Locator {
	options := &locatorOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt.applyLocatorOption(options)
		}
	}
	return &Locator{
		id:     uuid.NewString(),
		store:  newStore(),
		cache:  newSelectionCache(),
		logger: options.logger,
	}
}

// ID returns the snapshot's unique identifier. Each Register call yields a
// locator with a new ID.
func (l *Locator) ID() string {
	return l.id
}

// Register derives a new Locator with reg added in front of its service
// type's bucket. The receiver is never observably altered: resolutions
// through it before and after the call behave identically. The derived
// locator starts with a fresh selection cache, since selections that were
// valid for the old store may differ under the new one.
//
// Register panics on a nil registration; invalid registrations are rejected
// earlier, by NewRegistration.
func (l *Locator) Register(reg *Registration) *Locator {
	if reg == nil {
		panic(ErrRegistrationNil)
	}
	next := &Locator{
		id:     uuid.NewString(),
		store:  l.store.with(reg),
		cache:  newSelectionCache(),
		logger: l.logger,
	}
	next.log(&RegisteredEvent{Registration: reg, LocatorID: next.id})
	return next
}

// Contains reports whether any registration exists for the service type,
// regardless of context or location eligibility.
func (l *Locator) Contains(serviceType reflect.Type) bool {
	e := l.store.entry(serviceType)
	return e != nil && e.count() > 0
}

// Size returns the total number of registrations in this snapshot.
func (l *Locator) Size() int {
	return l.store.size()
}

// ResolveOption modifies a single resolution request.
type ResolveOption interface {
	applyResolveOption(*request)
}

type contextValueOption struct {
	value any
}

func (o contextValueOption) applyResolveOption(req *request) {
	req.contextValue = o.value
	req.contextType = reflect.TypeOf(o.value)
}

// WithContext supplies the request's context value. Only its runtime type
// participates in matching; the value itself is handed verbatim to
// constructors that ask for it.
func WithContext(value any) ResolveOption {
	return contextValueOption{value: value}
}

// Resolve picks the best-matching registration for serviceType under the
// request options and returns its value: the stored value as-is for
// singletons, a freshly constructed one for constructibles.
//
// Not-found outcomes are distinguishable: UnregisteredServiceError when the
// service type was never registered, NoMatchError when registrations exist
// but none are eligible for this context/location pair. Both satisfy
// errors.Is(err, ErrServiceNotFound).
func (l *Locator) Resolve(serviceType reflect.Type, opts ...ResolveOption) (any, error) {
	if serviceType == nil {
		return nil, ErrServiceTypeNil
	}

	var req request
	for _, opt := range opts {
		if opt != nil {
			opt.applyResolveOption(&req)
		}
	}

	value, info, err := l.resolve(serviceType, req)
	if err != nil {
		l.log(&ResolveFailedEvent{ServiceType: serviceType, Err: err})
		return nil, err
	}
	l.log(&ResolvedEvent{ServiceType: serviceType, Registration: info.reg, CacheHit: info.cacheHit})
	return value, nil
}

// resolvedInfo reports how a resolution was satisfied.
type resolvedInfo struct {
	reg      *Registration
	cacheHit bool
}

// resolve is the internal resolution path, also taken recursively while
// constructing dependencies. req carries the context and location down the
// whole construction chain.
func (l *Locator) resolve(serviceType reflect.Type, req request) (any, resolvedInfo, error) {
	if req.depth > maxResolutionDepth {
		return nil, resolvedInfo{}, ResolutionDepthError{ServiceType: serviceType, Depth: maxResolutionDepth}
	}

	key := keyFor(serviceType, req)
	reg, hit := l.cache.load(key)
	if !hit {
		winner, err := match(l.store, serviceType, req)
		if err != nil {
			return nil, resolvedInfo{}, err
		}
		// On a race the first writer wins; every racer computed the same
		// selection, so the write is idempotent.
		reg = l.cache.store(key, winner)
	}

	if reg.isInstance {
		return reg.instance, resolvedInfo{reg: reg, cacheHit: hit}, nil
	}

	value, err := l.construct(reg, req)
	if err != nil {
		return nil, resolvedInfo{}, err
	}
	return value, resolvedInfo{reg: reg, cacheHit: hit}, nil
}

func (l *Locator) log(event Event) {
	if l.logger != nil {
		l.logger.LogEvent(event)
	}
}

// Resolve is the generic form of Locator.Resolve.
func Resolve[T any](l *Locator, opts ...ResolveOption) (T, error) {
	var zero T
	if l == nil {
		return zero, ErrLocatorNil
	}
	value, err := l.Resolve(TypeOf[T](), opts...)
	if err != nil {
		return zero, err
	}
	// Assignability was checked at registration time; a failed assertion
	// here only means the constructor produced a nil interface value.
	typed, _ := value.(T)
	return typed, nil
}

// MustResolve is Resolve, panicking on error.
func MustResolve[T any](l *Locator, opts ...ResolveOption) T {
	value, err := Resolve[T](l, opts...)
	if err != nil {
		panic(err)
	}
	return value
}
