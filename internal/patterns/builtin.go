// Package patterns registers the stock hazard patterns: the scenario files
// embedded in the scenario package and a few patterns composed in Go.
package patterns

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/danmaku/internal/registry"
	"github.com/vovakirdan/danmaku/internal/scenario"
)

func init() {
	for _, id := range scenario.Builtins() {
		registry.Register(id, func() registry.Pattern { return filePattern{id: id} })
	}
	registry.Register("vortex", func() registry.Pattern { return vortex{} })
	registry.Register("fireworks", func() registry.Pattern { return fireworks{} })
}

// filePattern is an embedded scenario file.
type filePattern struct {
	id string
}

func (p filePattern) ID() string { return p.id }

func (p filePattern) Title() string {
	f, err := scenario.ReadBuiltin(p.id)
	if err != nil || f.Name == "" {
		return p.id
	}
	return f.Name
}

func (p filePattern) Build(logger *log.Logger) (*scenario.Scenario, error) {
	return scenario.LoadBuiltin(p.id, logger)
}
