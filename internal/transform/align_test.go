package transform

import (
	"testing"

	"github.com/cybersorcerer/kspcfg/internal/ast"
	"github.com/cybersorcerer/kspcfg/internal/span"
)

func keyWith(key string) *ast.KeyVal {
	return &ast.KeyVal{Key: span.Ranged[string]{Value: key}}
}

// TestAlignPadsSimilarRun covers spec.md §4.4.2: three same-length keys
// differing only in a numeric suffix all pad up to the longest left-side.
func TestAlignPadsSimilarRun(t *testing.T) {
	items := []ast.Item{keyWith("stageLevel01"), keyWith("stageLevel02"), keyWith("stageLevel03")}
	Align(items)
	want := len([]rune("stageLevel03"))
	for _, it := range items {
		kv := it.(*ast.KeyVal)
		got := len([]rune(kv.LeftSide())) + kv.KeyPadding
		if got != want {
			t.Errorf("key %q: padded width %d, want %d", kv.Key.Value, got, want)
		}
	}
}

// TestAlignScenarioSixUnrelatedKeyBreaksRun covers spec.md §8 scenario
// 6: a fourth, dissimilar key in the run prevents alignment for the
// whole run since every adjacent pair must be similar.
func TestAlignScenarioSixUnrelatedKeyBreaksRun(t *testing.T) {
	items := []ast.Item{
		keyWith("stageLevel01"),
		keyWith("stageLevel02"),
		keyWith("stageLevel03"),
		keyWith("aCompletelyUnrelatedLongIdentifierNameHere"),
	}
	Align(items)
	for _, it := range items {
		kv := it.(*ast.KeyVal)
		if kv.KeyPadding != 0 {
			t.Errorf("key %q: expected no padding once the run isn't uniformly similar, got %d", kv.Key.Value, kv.KeyPadding)
		}
	}
}

// TestAlignBreaksOnIntervening covers spec.md §4.4.2: a comment between
// two KeyVals ends the run, so each half aligns independently.
func TestAlignBreaksOnIntervening(t *testing.T) {
	items := []ast.Item{
		keyWith("stageLevel01"),
		keyWith("stageLevel02"),
		&ast.Comment{Text: "// split"},
		keyWith("cost"),
	}
	Align(items)
	if items[3].(*ast.KeyVal).KeyPadding != 0 {
		t.Errorf("lone key-val after the break should have no padding, got %d", items[3].(*ast.KeyVal).KeyPadding)
	}
}

// TestSimilarThreshold pins down the ratio/length-diff cutoffs spec.md
// §4.4.2 sets (>=0.8 normalized similarity, <=4 length difference) with
// cases whose edit distance is unambiguous by construction.
func TestSimilarThreshold(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"aaaaaaaaaaaaaaaaaaaa", "aaaaaaaaaaaaaaaaaaab", true},    // 1 substitution in 20 runes: ratio 0.95
		{"foo", "barbaz", false},                                  // totally different, short
		{"stageLevel01", "stageLevel02", true},                    // 1 substitution in 12 runes: ratio 0.917
		{"short", "aVeryMuchLongerAndUnrelatedIdentifier", false}, // length diff alone disqualifies it
	}

	for _, c := range cases {
		if got := similar(c.a, c.b); got != c.want {
			t.Errorf("similar(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
