package model

import (
	"strings"

	"github.com/ritamzico/headerrewrite/internal/rewrite/host"
)

// MatchKind is the comparison a BooleanVar performs.
type MatchKind int

const (
	Exact MatchKind = iota
	Prefix
	Substr
	Found
)

func (k MatchKind) String() string {
	switch k {
	case Exact:
		return "str"
	case Prefix:
		return "beg"
	case Substr:
		return "sub"
	case Found:
		return "found"
	default:
		return "unknown"
	}
}

// ParseMatchKind maps a set-bool "-m" token to a MatchKind.
func ParseMatchKind(s string) (MatchKind, bool) {
	switch s {
	case "str":
		return Exact, true
	case "beg":
		return Prefix, true
	case "sub":
		return Substr, true
	case "found":
		return Found, true
	default:
		return 0, false
	}
}

// BooleanVar is a set-bool definition: a source dynamic value, a match
// kind, and (for everything but Found) a comparand dynamic value.
type BooleanVar struct {
	Source    DynamicValue
	Kind      MatchKind
	Comparand DynamicValue // model.StaticValue("") when Kind == Found
}

// Evaluate runs the match predicate against the current headers/metadata.
// Note the "beg" direction: it asks whether comparand starts with source,
// not the other way around.
func (b BooleanVar) Evaluate(dir Direction, headers host.HeaderMap, meta host.MetadataStore) (bool, error) {
	source, err := b.Source.Evaluate(dir, headers, meta)
	if err != nil {
		return false, err
	}
	if b.Kind == Found {
		return len(source) > 0, nil
	}
	comparand, err := b.Comparand.Evaluate(dir, headers, meta)
	if err != nil {
		return false, err
	}
	if len(source) == 0 {
		return false, nil
	}
	switch b.Kind {
	case Exact:
		return source == comparand, nil
	case Prefix:
		return len(comparand) >= len(source) && comparand[:len(source)] == source, nil
	case Substr:
		return strings.Contains(comparand, source), nil
	default:
		return false, NewRuleError(KindUnknownBooleanVar, "unknown match kind %v", b.Kind)
	}
}

// BooleanProgram is an insertion-ordered, name-unique set of BooleanVar
// definitions for one Direction.
type BooleanProgram struct {
	order []string
	vars  map[string]BooleanVar
}

// NewBooleanProgram constructs an empty table.
func NewBooleanProgram() *BooleanProgram {
	return &BooleanProgram{vars: make(map[string]BooleanVar)}
}

// Define registers name -> v. Returns false if name is already defined
// (the caller turns that into a fatal DuplicateBoolean ConfigError).
func (p *BooleanProgram) Define(name string, v BooleanVar) bool {
	if _, exists := p.vars[name]; exists {
		return false
	}
	p.vars[name] = v
	p.order = append(p.order, name)
	return true
}

// Lookup returns the named BooleanVar.
func (p *BooleanProgram) Lookup(name string) (BooleanVar, bool) {
	v, ok := p.vars[name]
	return v, ok
}

// Names returns the defined names in insertion order.
func (p *BooleanProgram) Names() []string {
	return append([]string(nil), p.order...)
}

// Evaluate looks up name and evaluates it, returning UnknownBooleanVar if
// it isn't defined. A Ready Program never reaches this branch, but the
// evaluator defends against it rather than indexing a missing map entry.
func (p *BooleanProgram) Evaluate(name string, dir Direction, headers host.HeaderMap, meta host.MetadataStore) (bool, error) {
	v, ok := p.Lookup(name)
	if !ok {
		return false, NewRuleError(KindUnknownBooleanVar, "boolean %q is not defined", name)
	}
	return v.Evaluate(dir, headers, meta)
}
