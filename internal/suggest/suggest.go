package suggest

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultLimit is the number of suggestions attached to a diagnostic.
const DefaultLimit = 3

// Closest returns up to limit entries of candidates that resemble target,
// best match first. The result never contains target itself.
func Closest(target string, candidates []string, limit int) []string {
	if target == "" || len(candidates) == 0 || limit <= 0 {
		return nil
	}

	seen := map[string]struct{}{target: {}}
	out := make([]string, 0, limit)

	add := func(s string) bool {
		if _, dup := seen[s]; dup {
			return len(out) < limit
		}

		seen[s] = struct{}{}
		out = append(out, s)

		return len(out) < limit
	}

	ranks := fuzzy.RankFindFold(target, candidates)
	sort.Stable(ranks)

	for _, r := range ranks {
		if !add(r.Target) {
			return out
		}
	}

	type scored struct {
		name string
		dist int
	}

	norm := Normalize(target)
	threshold := max(2, len(norm)/3)

	var near []scored

	for _, c := range candidates {
		d := Levenshtein(norm, Normalize(c))
		if d <= threshold {
			near = append(near, scored{name: c, dist: d})
		}
	}

	sort.SliceStable(near, func(i, j int) bool {
		if near[i].dist != near[j].dist {
			return near[i].dist < near[j].dist
		}

		return near[i].name < near[j].name
	})

	for _, s := range near {
		if !add(s.name) {
			break
		}
	}

	return out
}

// Normalize folds case and drops separators so that "not_null_int",
// "NotNullInt" and "notnull-int" compare equal.
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		switch r {
		case '_', '-', ' ', '.':
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// Levenshtein returns the edit distance between a and b, counted in runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}
