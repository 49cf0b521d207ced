// Package registry provides a global registry of hazard patterns.
// Patterns register themselves in init() functions, so the CLI and the
// viewer can discover and build scenarios without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/danmaku/internal/scenario"
)

// Pattern builds a playable scenario.
type Pattern interface {
	// ID returns a unique identifier (e.g., "spiral-garden").
	// Used for CLI arguments and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Build creates a fresh scenario. Every call must return an independent
	// world and template set.
	Build(logger *log.Logger) (*scenario.Scenario, error)
}

// PatternInfo contains metadata about a registered pattern.
type PatternInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a pattern.
type Factory func() Pattern

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a pattern factory to the registry.
// Panics if a pattern with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pattern %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered patterns, sorted by ID.
func List() []PatternInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PatternInfo, 0, len(factories))
	for id := range factories {
		result = append(result, PatternInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a pattern by its ID.
func Create(id string) (Pattern, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown pattern %q", id)
	}

	return f(), nil
}

// Build creates the pattern with the given ID and builds its scenario.
func Build(id string, logger *log.Logger) (*scenario.Scenario, error) {
	p, err := Create(id)
	if err != nil {
		return nil, err
	}
	return p.Build(logger)
}

// Exists checks if a pattern with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
