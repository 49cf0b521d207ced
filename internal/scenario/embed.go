package scenario

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

//go:embed scenarios/*.yaml
var builtinFS embed.FS

// Builtins returns the IDs of the embedded scenarios, sorted.
func Builtins() []string {
	entries, err := builtinFS.ReadDir("scenarios")
	if err != nil {
		return nil
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") {
			ids = append(ids, strings.TrimSuffix(name, ".yaml"))
		}
	}
	sort.Strings(ids)
	return ids
}

// ReadBuiltin decodes an embedded scenario.
func ReadBuiltin(id string) (*File, error) {
	data, err := builtinFS.ReadFile(path.Join("scenarios", id+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("scenario: builtin %s: %w", id, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario: builtin %s: %w", id, err)
	}
	if f.ID == "" {
		f.ID = id
	}
	return f, nil
}

// LoadBuiltin reads and builds an embedded scenario.
func LoadBuiltin(id string, logger *log.Logger) (*Scenario, error) {
	f, err := ReadBuiltin(id)
	if err != nil {
		return nil, err
	}
	return f.Build(logger)
}
