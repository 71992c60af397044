package transform

import "github.com/cybersorcerer/kspcfg/internal/ast"

// similarityThreshold and maxLengthDiff are spec.md §4.4.2's pairwise
// alignability test: a normalized Levenshtein ratio of at least 0.8 and
// an absolute length difference of at most 4 runes.
const (
	similarityThreshold = 0.8
	maxLengthDiff       = 4
)

// Align finds every maximal run of adjacent KeyVal items in items (a
// run is broken by a Node, Comment, or BlankLine) and, where every
// consecutive pair in the run has a similar left-side, sets each
// member's KeyPadding so all of their assignment operators land in the
// same column (spec.md §4.4.2). Runs that aren't uniformly similar, and
// runs of length 1, are left with KeyPadding 0.
//
// Align does not recurse into child nodes; Apply drives that.
func Align(items []ast.Item) {
	i := 0
	for i < len(items) {
		if _, ok := items[i].(*ast.KeyVal); !ok {
			i++
			continue
		}
		j := i
		for j < len(items) {
			if _, ok := items[j].(*ast.KeyVal); !ok {
				break
			}
			j++
		}
		alignRun(items[i:j])
		i = j
	}
}

func alignRun(run []ast.Item) {
	if len(run) < 2 {
		for _, it := range run {
			it.(*ast.KeyVal).KeyPadding = 0
		}
		return
	}

	left := make([]string, len(run))
	maxLen := 0
	for i, it := range run {
		left[i] = it.(*ast.KeyVal).LeftSide()
		if n := len([]rune(left[i])); n > maxLen {
			maxLen = n
		}
	}

	for i := 1; i < len(left); i++ {
		if !similar(left[i-1], left[i]) {
			for _, it := range run {
				it.(*ast.KeyVal).KeyPadding = 0
			}
			return
		}
	}

	for i, it := range run {
		it.(*ast.KeyVal).KeyPadding = maxLen - len([]rune(left[i]))
	}
}

// similar reports whether a and b are close enough to belong in the
// same alignment run: a normalized Levenshtein ratio >= 0.8 and a
// length difference no greater than 4 runes. Hand-rolled rather than
// imported — no library in the example pack provides edit-distance
// (see DESIGN.md).
func similar(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if abs(len(ra)-len(rb)) > maxLengthDiff {
		return false
	}
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return true
	}
	dist := levenshtein(ra, rb)
	ratio := 1 - float64(dist)/float64(maxLen)
	return ratio >= similarityThreshold
}

// levenshtein computes the classic edit distance between a and b using
// a two-row dynamic-programming table.
func levenshtein(a, b []rune) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
