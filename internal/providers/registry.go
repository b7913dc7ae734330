package providers

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/thand-io/opskit/internal/models"
)

// ProviderImpl is implemented by every wrapped external system.
type ProviderImpl interface {
	Name() models.ProviderName
	// CheckHealth probes the provider once and reports the outcome.
	CheckHealth(ctx context.Context) models.ComponentCheck
}

// Constructor builds a provider client from freshly resolved connection
// settings.
type Constructor func(conn models.ConnectionConfig) (ProviderImpl, error)

var (
	registry      = make(map[models.ProviderName]Constructor)
	registryMutex sync.RWMutex
)

func normalize(name models.ProviderName) models.ProviderName {
	return models.ProviderName(strings.ToLower(string(name)))
}

// Register adds a provider constructor to the registry. The first
// registration of a name wins.
func Register(name models.ProviderName, constructor Constructor) {
	name = normalize(name)
	registryMutex.Lock()
	defer registryMutex.Unlock()
	if _, exists := registry[name]; exists {
		return
	}
	registry[name] = constructor
}

// Set replaces a provider constructor in the registry (useful for testing)
func Set(name models.ProviderName, constructor Constructor) {
	name = normalize(name)
	registryMutex.Lock()
	defer registryMutex.Unlock()
	registry[name] = constructor
}

// Remove deletes a provider constructor from the registry.
func Remove(name models.ProviderName) {
	name = normalize(name)
	registryMutex.Lock()
	defer registryMutex.Unlock()
	delete(registry, name)
}

// Get returns the constructor registered under name.
func Get(name models.ProviderName) (Constructor, error) {
	name = normalize(name)
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	constructor, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("provider not found: %s", name)
	}
	return constructor, nil
}

// Create builds a new provider client for name.
func Create(name models.ProviderName, conn models.ConnectionConfig) (ProviderImpl, error) {
	constructor, err := Get(name)
	if err != nil {
		return nil, err
	}
	return constructor(conn)
}

// Names returns the registered provider names in sorted order.
func Names() []models.ProviderName {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	names := make([]models.ProviderName, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
