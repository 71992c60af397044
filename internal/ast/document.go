package ast

// Document is the root of the tree: an ordered sequence of top-level
// items (spec.md §3). Assignments at the top level are represented as
// ErrorItem placeholders rather than rejected outright, so downstream
// tools still see them (spec.md §4.3).
type Document struct {
	Items []Item
}
