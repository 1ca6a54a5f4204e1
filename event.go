package loci

import (
	"reflect"

	"go.uber.org/zap"
)

// Event is a notification emitted by a Locator. Events are passed by type so
// loggers can switch on them.
type Event interface {
	event()
}

func (*RegisteredEvent) event()    {}
func (*ResolvedEvent) event()      {}
func (*ResolveFailedEvent) event() {}

// RegisteredEvent is emitted when a registration is added, on the locator
// derived by Register.
type RegisteredEvent struct {
	Registration *Registration
	LocatorID    string
}

// ResolvedEvent is emitted after a successful top-level resolution.
type ResolvedEvent struct {
	ServiceType  reflect.Type
	Registration *Registration
	CacheHit     bool
}

// ResolveFailedEvent is emitted after a failed top-level resolution.
type ResolveFailedEvent struct {
	ServiceType reflect.Type
	Err         error
}

// Logger receives locator events. Implementations must be safe for
// concurrent use; resolution may happen from any goroutine.
type Logger interface {
	LogEvent(Event)
}

// NopLogger discards all events. It is the default.
type NopLogger struct{}

// LogEvent implements Logger.
func (NopLogger) LogEvent(Event) {}

// ZapLogger logs locator events to a zap logger.
type ZapLogger struct {
	Logger *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// LogEvent implements Logger.
func (l *ZapLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *RegisteredEvent:
		l.Logger.Info("registered",
			zap.String("registration", e.Registration.String()),
			zap.String("locator", e.LocatorID),
		)
	case *ResolvedEvent:
		l.Logger.Debug("resolved",
			zap.String("type", formatType(e.ServiceType)),
			zap.String("registration", e.Registration.String()),
			zap.Bool("cached", e.CacheHit),
		)
	case *ResolveFailedEvent:
		l.Logger.Error("resolve failed",
			zap.String("type", formatType(e.ServiceType)),
			zap.Error(e.Err),
		)
	}
}
