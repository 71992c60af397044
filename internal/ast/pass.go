package ast

import "github.com/cybersorcerer/kspcfg/internal/span"

// PassKind is the closed variant set from spec.md §3. Ordering for
// patching is First < Default < Before < For < After < Last < Final.
type PassKind int

const (
	PassDefault PassKind = iota
	PassFirst
	PassBefore
	PassFor
	PassAfter
	PassLast
	PassFinal
)

// Order returns the patch-ordering rank of the kind, ascending in the
// sequence spec.md §3 names (First < Default < Before < For < After <
// Last < Final). PassDefault is deliberately out of enum-declaration
// order here to keep Order() matching the prose ordering exactly.
func (k PassKind) Order() int {
	switch k {
	case PassFirst:
		return 0
	case PassDefault:
		return 1
	case PassBefore:
		return 2
	case PassFor:
		return 3
	case PassAfter:
		return 4
	case PassLast:
		return 5
	case PassFinal:
		return 6
	default:
		return 1
	}
}

// Pass is the pass-ordering annotation on a node (spec.md §3). Name is
// unused for Default/First/Final.
type Pass struct {
	Kind NamedOrNot
	Name string
}

// NamedOrNot distinguishes the bare kinds (First, Default, Final) from
// the ones requiring a mod name (Before/For/After/Last).
type NamedOrNot = PassKind

// String renders the pass annotation, "" for the default pass (spec.md
// §4.5 "Default write f, \"\"").
func (p Pass) String() string {
	switch p.Kind {
	case PassFirst:
		return ":FIRST"
	case PassBefore:
		return ":BEFORE[" + p.Name + "]"
	case PassFor:
		return ":FOR[" + p.Name + "]"
	case PassAfter:
		return ":AFTER[" + p.Name + "]"
	case PassLast:
		return ":LAST[" + p.Name + "]"
	case PassFinal:
		return ":FINAL"
	default:
		return ""
	}
}

// RangedPass pairs a Pass with its source range.
type RangedPass = span.Ranged[Pass]
