package command

import (
	"fmt"
	"strings"
)

// Spec declares the arguments a command takes: fixed positional fields,
// then an optional free-text tail that swallows everything left over.
type Spec struct {
	Name     string
	Fields   []string // positional argument names
	Rest     string   // free-text tail name, empty if the command has none
	Required int      // leading arguments (fields, then rest) that must be non-empty
	Default  string   // used for Rest when it is empty
	Usage    string   // shown on validation failure
	Help     string   // one-line description for the help text
}

// UsageError reports missing arguments
type UsageError struct {
	Command string
	Missing string
	Usage   string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: missing %s (usage: %s)", e.Command, e.Missing, e.Usage)
}

// Args holds bound argument values by name
type Args struct {
	values map[string]string
}

// Get returns the named value or ""
func (a Args) Get(name string) string {
	return a.values[name]
}

// Bind maps a command's arguments onto the spec
func (s Spec) Bind(cmd Command) (Args, error) {
	return s.bind(cmd.Args, cmd.Sep)
}

// BindFields binds every token of the command, name included. Used by
// positional fallbacks where the first token is data, not a command name.
func (s Spec) BindFields(cmd Command) (Args, error) {
	return s.bind(cmd.Fields, cmd.Sep)
}

func (s Spec) bind(tokens []string, sep string) (Args, error) {
	if sep == "" {
		sep = SepPipe
	}
	values := make(map[string]string, len(s.Fields)+1)
	for i, name := range s.Fields {
		if i < len(tokens) {
			values[name] = tokens[i]
		}
	}
	if s.Rest != "" && len(tokens) > len(s.Fields) {
		values[s.Rest] = strings.TrimSpace(strings.Join(tokens[len(s.Fields):], sep))
	}

	names := make([]string, 0, len(s.Fields)+1)
	names = append(names, s.Fields...)
	if s.Rest != "" {
		names = append(names, s.Rest)
	}
	for i := 0; i < s.Required && i < len(names); i++ {
		if values[names[i]] == "" {
			return Args{}, &UsageError{Command: s.Name, Missing: names[i], Usage: s.Usage}
		}
	}

	if s.Rest != "" && values[s.Rest] == "" {
		values[s.Rest] = s.Default
	}
	return Args{values: values}, nil
}
