package command

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition describes one configured command shape. The same name may carry
// several definitions with different arities (help vs "help <command>").
type Definition struct {
	Name         string   `yaml:"name"`
	Aliases      []string `yaml:"aliases"`
	Description  string   `yaml:"description"`
	ExpectedArgs int      `yaml:"expected_args"`
	ArgHints     []string `yaml:"arg_hints"`
}

// Usage renders "name <hint> <hint>" for help listings.
func (d Definition) Usage() string {
	if len(d.ArgHints) == 0 {
		return d.Name
	}
	hints := make([]string, 0, len(d.ArgHints))
	for _, h := range d.ArgHints {
		hints = append(hints, "<"+h+">")
	}
	return d.Name + " " + strings.Join(hints, " ")
}

type commandsFile struct {
	Commands []Definition `yaml:"commands"`
}

// Registry indexes command definitions by name and by every alias.
type Registry struct {
	definitions map[string][]Definition
	ordered     []Definition
}

// LoadRegistry reads the commands configuration file.
func LoadRegistry(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read commands config: %w", err)
	}
	var file commandsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse commands config: %w", err)
	}
	return NewRegistry(file.Commands)
}

// NewRegistry builds a registry from definitions.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{
		definitions: make(map[string][]Definition),
		ordered:     make([]Definition, 0, len(defs)),
	}
	for _, def := range defs {
		if strings.TrimSpace(def.Name) == "" {
			return nil, fmt.Errorf("command definition without a name")
		}
		if def.ExpectedArgs < 0 {
			return nil, fmt.Errorf("command %q: expected_args must not be negative", def.Name)
		}
		r.ordered = append(r.ordered, def)
		r.definitions[def.Name] = append(r.definitions[def.Name], def)
		for _, alias := range def.Aliases {
			r.definitions[alias] = append(r.definitions[alias], def)
		}
	}
	return r, nil
}

// Definitions returns every definition in declaration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Lookup returns the definitions registered under a name or alias.
func (r *Registry) Lookup(name string) ([]Definition, bool) {
	defs, ok := r.definitions[strings.ToLower(name)]
	return defs, ok
}

// Parse tokenizes raw input, matches a definition by name (or alias) and
// argument count, and returns the typed command. Unknown names and arity
// mismatches are rejected here, before the engine ever sees the command.
func (r *Registry) Parse(input string) (Command, error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil, fmt.Errorf("no command provided, type 'help' for options")
	}

	name := strings.ToLower(parts[0])
	args := parts[1:]

	defs, ok := r.definitions[name]
	if !ok {
		return nil, fmt.Errorf("unknown command %q, type 'help' for available commands", name)
	}

	var matched *Definition
	for i := range defs {
		if defs[i].ExpectedArgs == len(args) {
			matched = &defs[i]
			break
		}
	}
	if matched == nil {
		counts := make([]string, 0, len(defs))
		for _, d := range defs {
			counts = append(counts, fmt.Sprintf("%d", d.ExpectedArgs))
		}
		return nil, fmt.Errorf("wrong number of arguments for command %q: got %d, expected %s",
			name, len(args), strings.Join(counts, " or "))
	}

	// Dispatch on the canonical definition name, not the alias typed.
	switch matched.Name {
	case "help":
		h := Help{}
		if len(args) > 0 {
			h.Topic = strings.ToLower(args[0])
		}
		return h, nil
	case "status":
		return Status{}, nil
	case "build":
		if len(args) < 2 {
			return nil, fmt.Errorf("command %q requires <building> <planet> arguments", name)
		}
		return Build{Building: args[0], Planet: args[1]}, nil
	case "endturn":
		return EndTurn{}, nil
	case "quit":
		return Quit{}, nil
	default:
		return UnknownInternal{Name: matched.Name}, nil
	}
}
