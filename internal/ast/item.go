// Package ast is the tagged-variant tree the parser produces: documents,
// nodes, key-values, predicates, paths, passes, and indices (spec.md §3).
//
// Every text-bearing node stores a source range; most carry their text
// as a borrowed slice of the original source buffer rather than an
// owned copy, so the tree can be built without allocating beyond the
// slice headers themselves (spec.md §9 "spans over slices").
package ast

import "github.com/cybersorcerer/kspcfg/internal/span"

// Item is the interface every member of a node body (or the document)
// implements: Node, Comment, KeyVal, BlankLine, or ErrorItem. Visitors
// (print, lint, reorder) dispatch on the concrete type, the idiomatic Go
// analogue of the Rust NodeItem tagged enum.
type Item interface {
	item()
	Range() span.Range
}

// BlankLine is an empty line preserved between items.
type BlankLine struct {
	Span span.Range
}

func (*BlankLine) item()               {}
func (b *BlankLine) Range() span.Range { return b.Span }

// ErrorItem stands in for a body item the parser could not make sense
// of (e.g. an assignment found at the top level). It carries no
// semantic value; its presence is itself the diagnostic's anchor.
type ErrorItem struct {
	Span span.Range
}

func (*ErrorItem) item()               {}
func (e *ErrorItem) Range() span.Range { return e.Span }

// Comment is a single `//`-style comment line, including its leading
// sigil, stored as a slice of the source text.
type Comment struct {
	Text string
	Span span.Range
}

func (*Comment) item()               {}
func (c *Comment) Range() span.Range { return c.Span }
