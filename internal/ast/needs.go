package ast

import "strings"

// ModClause is one leaf of a NEEDS expression: an optional negation and
// a mod name (spec.md §3).
type ModClause struct {
	Negated bool
	Name    string
}

func (m ModClause) String() string {
	if m.Negated {
		return "!" + m.Name
	}
	return m.Name
}

// OrClause is a disjunction of ModClauses, joined with `|` in source.
type OrClause struct {
	Clauses []ModClause
}

func (o OrClause) String() string {
	parts := make([]string, len(o.Clauses))
	for i, c := range o.Clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, "|")
}

// NeedsBlock is a conjunction of OrClauses: AND(OR(modClause...)),
// spec.md §3.
type NeedsBlock struct {
	OrClauses []OrClause
}

func (n NeedsBlock) String() string {
	parts := make([]string, len(n.OrClauses))
	for i, c := range n.OrClauses {
		parts[i] = c.String()
	}
	return ":NEEDS[" + strings.Join(parts, ",") + "]"
}
