package ast

import (
	"strings"

	"github.com/cybersorcerer/kspcfg/internal/span"
)

// MatchType is the comparison kind for a HAS key-predicate value
// (spec.md §3).
type MatchType int

const (
	MatchLiteral MatchType = iota
	MatchGreaterThan
	MatchLessThan
)

func (m MatchType) String() string {
	switch m {
	case MatchGreaterThan:
		return ">"
	case MatchLessThan:
		return "<"
	default:
		return ""
	}
}

// PredicateKind distinguishes a node predicate (`@`/`!`) from a key
// predicate (`#`/`~`) inside a HAS block.
type PredicateKind int

const (
	PredicateNode PredicateKind = iota
	PredicateKey
)

// HasPredicate is one entry of a HAS predicate list (spec.md §3). Only
// the fields relevant to its Kind are meaningful.
type HasPredicate struct {
	Kind    PredicateKind
	Negated bool

	// PredicateNode fields.
	NodeType string
	Name     *string
	Nested   *HasBlock

	// PredicateKey fields.
	Key       string
	Value     *span.Ranged[string]
	MatchType MatchType
}

func (p HasPredicate) String() string {
	var b strings.Builder
	switch p.Kind {
	case PredicateNode:
		if p.Negated {
			b.WriteByte('!')
		} else {
			b.WriteByte('@')
		}
		b.WriteString(p.NodeType)
		if p.Name != nil {
			b.WriteByte('[')
			b.WriteString(*p.Name)
			b.WriteByte(']')
		}
		if p.Nested != nil {
			b.WriteString(p.Nested.String())
		}
	case PredicateKey:
		if p.Negated {
			b.WriteByte('~')
		} else {
			b.WriteByte('#')
		}
		b.WriteString(p.Key)
		if p.Value != nil {
			b.WriteByte('[')
			b.WriteString(p.MatchType.String())
			b.WriteString(p.Value.Value)
			b.WriteByte(']')
		}
	}
	return b.String()
}

// HasBlock is a logical AND of predicates (spec.md §3).
type HasBlock struct {
	Predicates []span.Ranged[HasPredicate]
}

func (h HasBlock) String() string {
	if len(h.Predicates) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(":HAS[")
	for i, p := range h.Predicates {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.Value.String())
	}
	b.WriteByte(']')
	return b.String()
}
