package tasks

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrCommandExists       = errors.New("command already exists")
	ErrInvalidCommand      = errors.New("invalid command")
	ErrUnrecognizedCommand = errors.New("unrecognized command")
)

// Registry stores commands by name. Callers only ever see copies.
type Registry struct {
	items map[string]Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Command)}
}

// ValidateCommand checks required fields, name format and marker usage.
func ValidateCommand(cmd Command) error {
	name := strings.TrimSpace(cmd.Name)
	program := strings.TrimSpace(cmd.Program)
	if name == "" || program == "" {
		return fmt.Errorf("%w: name and program are required", ErrInvalidCommand)
	}
	if !isValidName(cmd.Name) {
		return fmt.Errorf("%w: invalid name format %q", ErrInvalidCommand, cmd.Name)
	}

	markers := 0
	for _, arg := range cmd.Args {
		if arg == ArgsMarker {
			markers++
			continue
		}
		if containsMarker(arg, ArgsMarker) {
			return fmt.Errorf("%w: %s must be a standalone argument in %q", ErrInvalidCommand, ArgsMarker, cmd.Name)
		}
	}
	switch {
	case cmd.ForwardArgs && markers != 1:
		return fmt.Errorf("%w: %q forwards arguments and needs exactly one %s, found %d", ErrInvalidCommand, cmd.Name, ArgsMarker, markers)
	case !cmd.ForwardArgs && markers != 0:
		return fmt.Errorf("%w: %q does not forward arguments but contains %s", ErrInvalidCommand, cmd.Name, ArgsMarker)
	}
	return nil
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd Command) error {
	if err := ValidateCommand(cmd); err != nil {
		return err
	}
	if _, ok := r.items[cmd.Name]; ok {
		return fmt.Errorf("%w: %q", ErrCommandExists, cmd.Name)
	}
	r.items[cmd.Name] = cmd.clone()
	return nil
}

// Resolve returns a command by name.
func (r *Registry) Resolve(name string) (Command, bool) {
	cmd, ok := r.items[name]
	if !ok {
		return Command{}, false
	}
	return cmd.clone(), true
}

// Names returns the sorted command names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		isLower := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		isDash := c == '-'
		if !(isLower || isDigit || isDash) {
			return false
		}
		if isDash && (i == 0 || i == len(name)-1) {
			return false
		}
	}
	return true
}

func containsMarker(arg string, marker string) bool {
	return strings.Contains(arg, marker)
}
