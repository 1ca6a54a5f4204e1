package loci

import "sync/atomic"

// defaultLocator holds the process-wide default Locator snapshot. Because
// locators are immutable, swapping the pointer atomically is all the
// synchronization replacement needs.
var defaultLocator atomic.Pointer[Locator]

// SetDefault installs l as the default Locator used by package-level
// resolution, similar to slog.SetDefault. Pass nil to remove it.
//
// Register returns a new snapshot, so publishing an updated default is
// SetDefault(Default().Register(reg)) - last writer wins.
func SetDefault(l *Locator) {
	defaultLocator.Store(l)
}

// Default returns the current default Locator, nil if none has been set.
func Default() *Locator {
	return defaultLocator.Load()
}

// ResolveDefault resolves through the default Locator.
func ResolveDefault[T any](opts ...ResolveOption) (T, error) {
	return Resolve[T](Default(), opts...)
}
