// Package command parses the owner's free-text command language.
//
// A line is an optional sigil, a command name, then arguments. Arguments are
// separated by "|" when the line contains one (message bodies may then hold
// spaces), otherwise by runs of whitespace:
//
//	!tagall 1203...@g.us|Halo semua
//	!tagall|1203...@g.us|Halo semua
//	log last
package command

import (
	"strings"
	"unicode"
)

// PrivateSigil prefixes commands sent over private chat
const PrivateSigil = "!"

// Separators a line can be split on
const (
	SepPipe  = "|"
	SepSpace = " "
)

// Command is one parsed line
type Command struct {
	Name   string   // first token, lower-cased
	Args   []string // remaining tokens, trimmed
	Fields []string // every token as typed, name included
	Sep    string   // separator the line was split on
}

// Parse splits a raw line into a command. Lines that are blank or lack the
// sigil yield ok=false and should be ignored.
func Parse(line, sigil string) (Command, bool) {
	raw := strings.TrimSpace(line)
	if sigil != "" {
		if !strings.HasPrefix(raw, sigil) {
			return Command{}, false
		}
		raw = strings.TrimSpace(strings.TrimPrefix(raw, sigil))
	}
	if raw == "" {
		return Command{}, false
	}

	var fields []string
	sep := SepSpace
	if strings.Contains(raw, SepPipe) {
		sep = SepPipe
		for _, f := range strings.Split(raw, SepPipe) {
			fields = append(fields, strings.TrimSpace(f))
		}
		// "tagall grp|msg": the name is only the first word of the first field
		if i := strings.IndexFunc(fields[0], unicode.IsSpace); i >= 0 {
			head := []string{fields[0][:i], strings.TrimSpace(fields[0][i:])}
			fields = append(head, fields[1:]...)
		}
	} else {
		fields = strings.Fields(raw)
	}

	return Command{
		Name:   strings.ToLower(fields[0]),
		Args:   fields[1:],
		Fields: fields,
		Sep:    sep,
	}, true
}

// Arg returns the i-th argument or "" when absent
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}
