// Package board resolves a YAML board description into wake-up line
// bindings, so host tooling can say "lid-switch" instead of MIWU1_73.
package board

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"gonpcx/miwu"
)

// File is the on-disk YAML layout.
type File struct {
	Board string      `yaml:"board"`
	Chip  string      `yaml:"chip"`
	Lines []LineEntry `yaml:"lines"`
}

// LineEntry is one signal binding in the file. Active is "high" or
// "low"; omitted means high.
type LineEntry struct {
	Line   string `yaml:"line"`
	Name   string `yaml:"name"`
	Active string `yaml:"active"`
}

// Signal is one resolved binding: the wake-up line behind a named
// signal, and the level at which the signal asserts.
type Signal struct {
	Name      string
	Line      miwu.Line
	ActiveLow bool
}

// Board maps signal names to wake-up lines in both directions.
type Board struct {
	Name string
	Chip string

	byName map[string]Signal
	byLine map[miwu.Line]Signal
}

// Load reads and parses a board description file.
func Load(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board file: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Parse parses a YAML board description.
func Parse(data []byte) (*Board, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse board yaml: %w", err)
	}
	if f.Board == "" {
		return nil, fmt.Errorf("board has no name")
	}

	b := &Board{
		Name:   f.Board,
		Chip:   f.Chip,
		byName: make(map[string]Signal, len(f.Lines)),
		byLine: make(map[miwu.Line]Signal, len(f.Lines)),
	}
	for _, e := range f.Lines {
		if e.Name == "" {
			return nil, fmt.Errorf("line %q has no signal name", e.Line)
		}
		line, err := miwu.ParseLine(e.Line)
		if err != nil {
			return nil, fmt.Errorf("signal %q: %w", e.Name, err)
		}
		sig := Signal{Name: e.Name, Line: line}
		switch e.Active {
		case "", "high":
		case "low":
			sig.ActiveLow = true
		default:
			return nil, fmt.Errorf("signal %q: active must be high or low, not %q", e.Name, e.Active)
		}
		if _, ok := b.byName[e.Name]; ok {
			return nil, fmt.Errorf("signal %q bound twice", e.Name)
		}
		if prev, ok := b.byLine[line]; ok {
			return nil, fmt.Errorf("signals %q and %q both bind %s", prev.Name, e.Name, line)
		}
		b.byName[e.Name] = sig
		b.byLine[line] = sig
	}
	return b, nil
}

// Line resolves a signal name to its wake-up line.
func (b *Board) Line(name string) (miwu.Line, bool) {
	sig, ok := b.byName[name]
	return sig.Line, ok
}

// Signal resolves a signal name to its full binding, polarity
// included, so a caller can pick the matching wait condition.
func (b *Board) Signal(name string) (Signal, bool) {
	sig, ok := b.byName[name]
	return sig, ok
}

// SignalFor returns the binding of a line, if the board has one.
func (b *Board) SignalFor(line miwu.Line) (Signal, bool) {
	sig, ok := b.byLine[line]
	return sig, ok
}

// SignalName returns the signal bound to a line, or the line's own
// name when the board does not bind it.
func (b *Board) SignalName(line miwu.Line) string {
	if sig, ok := b.byLine[line]; ok {
		return sig.Name
	}
	return line.String()
}

// Signals returns all bound signal names, sorted.
func (b *Board) Signals() []string {
	out := make([]string, 0, len(b.byName))
	for name := range b.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
