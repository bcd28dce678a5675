package common

// UnknownStr is the String form of out-of-range enum values.
const UnknownStr = "unknown"

// Dedupe returns the non-zero elements of s without repeats, in first-seen order.
func Dedupe[S ~[]E, E comparable](s S) S {
	var zero E

	seen := make(map[E]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, e := range s {
		if e == zero {
			continue
		}

		if _, ok := seen[e]; ok {
			continue
		}

		seen[e] = struct{}{}
		out = append(out, e)
	}

	return out
}
