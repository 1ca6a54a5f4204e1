package loci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := &ZapLogger{Logger: zap.New(core)}

	l := NewLocator(WithLogger(logger)).
		Register(MustNewRegistration(TypeOf[Greeting](), DefaultGreeting{}))

	registered := logs.FilterMessage("registered").All()
	require.Len(t, registered, 1)
	assert.Equal(t, l.ID(), registered[0].ContextMap()["locator"])

	_, err := l.Resolve(TypeOf[Greeting]())
	require.NoError(t, err)

	resolved := logs.FilterMessage("resolved").All()
	require.Len(t, resolved, 1)
	assert.Equal(t, "Greeting", resolved[0].ContextMap()["type"])
	assert.Equal(t, false, resolved[0].ContextMap()["cached"])

	// The second resolution is served from the selection cache.
	_, err = l.Resolve(TypeOf[Greeting]())
	require.NoError(t, err)
	resolved = logs.FilterMessage("resolved").All()
	require.Len(t, resolved, 2)
	assert.Equal(t, true, resolved[1].ContextMap()["cached"])

	_, err = l.Resolve(TypeOf[PageRenderer]())
	require.Error(t, err)
	failed := logs.FilterMessage("resolve failed").All()
	require.Len(t, failed, 1)
}

func TestLoggerInheritedByDerivedLocators(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := &ZapLogger{Logger: zap.New(core)}

	l := NewLocator(WithLogger(logger))
	l = l.Register(MustNewRegistration(TypeOf[Greeting](), DefaultGreeting{}))
	l = l.Register(MustNewRegistration(TypeOf[PageRenderer](), staticRenderer{page: "p"}))

	assert.Len(t, logs.FilterMessage("registered").All(), 2)
}

func TestNopLogger(t *testing.T) {
	// Just exercises the no-op path.
	l := NewLocator(WithLogger(NopLogger{})).
		Register(MustNewRegistration(TypeOf[Greeting](), DefaultGreeting{}))
	_, err := l.Resolve(TypeOf[Greeting]())
	assert.NoError(t, err)
}
