package tasks

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed commands.toml
var builtinTable string

type fileTable struct {
	Commands []fileCommand `toml:"command"`
}

type fileCommand struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Program     string   `toml:"program"`
	Args        []string `toml:"args"`
	ForwardArgs bool     `toml:"forward_args"`
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry built from the embedded command table.
// The table ships with the binary, so a decode failure is a build defect.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = LoadTable(builtinTable)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("tasks: embedded command table: %v", defaultErr))
	}
	return defaultRegistry
}

// LoadTable decodes a TOML command table into a registry. Unknown keys are
// rejected so typos in the table fail loudly.
func LoadTable(raw string) (*Registry, error) {
	var table fileTable
	meta, err := toml.Decode(raw, &table)
	if err != nil {
		return nil, fmt.Errorf("decode command table: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidCommand, strings.Join(keys, ", "))
	}

	r := NewRegistry()
	for _, fc := range table.Commands {
		cmd := Command{
			Name:        strings.TrimSpace(fc.Name),
			Description: strings.TrimSpace(fc.Description),
			Program:     strings.TrimSpace(fc.Program),
			Args:        fc.Args,
			ForwardArgs: fc.ForwardArgs,
		}
		if err := r.Register(cmd); err != nil {
			return nil, err
		}
	}
	return r, nil
}
