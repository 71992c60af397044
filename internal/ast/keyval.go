package ast

import (
	"strings"

	"github.com/cybersorcerer/kspcfg/internal/span"
)

// KeyVal is an assignment (spec.md §3). KeyPadding is set by the
// alignment transform (spec.md §4.4.2) and is zero until then.
type KeyVal struct {
	Path               *span.Ranged[Path]
	Operator           *span.Ranged[Operator]
	Key                span.Ranged[string]
	Needs              *span.Ranged[NeedsBlock]
	Index              *span.Ranged[Index]
	ArrayIndex         *span.Ranged[ArrayIndex]
	KeyPadding         int
	AssignmentOperator span.Ranged[AssignmentOperator]
	Value              span.Ranged[string]
	Comment            *Comment
	Span               span.Range
}

func (*KeyVal) item()               {}
func (k *KeyVal) Range() span.Range { return k.Span }

// LeftSide renders everything preceding the assignment operator: the
// optional path prefix (with its leading '*'), operator sigil, key,
// needs clause, index, and array-index (spec.md §4.4.2, ported from the
// reference KeyVal::left_side).
func (k *KeyVal) LeftSide() string {
	var b strings.Builder
	if k.Path != nil {
		b.WriteByte('*')
		b.WriteString(k.Path.Value.String())
	}
	if k.Operator != nil {
		b.WriteString(k.Operator.Value.String())
	}
	b.WriteString(k.Key.Value)
	if k.Needs != nil {
		b.WriteString(k.Needs.Value.String())
	}
	if k.Index != nil {
		b.WriteString(k.Index.Value.String())
	}
	if k.ArrayIndex != nil {
		b.WriteString(k.ArrayIndex.Value.String())
	}
	return b.String()
}
