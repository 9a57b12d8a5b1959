package backend

import (
	"slices"
	"sync"
)

// Factory creates a device.
type Factory func() Device

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// priority orders Default's choice; unlisted devices come last.
	priority = []string{Soft}
)

// Register adds or replaces the factory for name.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes name from the registry.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether name has a factory.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Get creates the device registered as name, or returns nil.
func Get(name string) Device {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return factory()
}

// Default creates the highest-priority registered device, falling back to
// the first registered name in sorted order.
func Default() (Device, error) {
	for _, name := range priority {
		if d := Get(name); d != nil {
			return d, nil
		}
	}
	for _, name := range Available() {
		if d := Get(name); d != nil {
			return d, nil
		}
	}
	return nil, ErrDeviceNotAvailable
}
