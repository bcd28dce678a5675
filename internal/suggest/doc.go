// Package suggest ranks "did you mean" candidates for misspelled type and
// field names.
//
// Ranking runs in two passes:
//   - fuzzysearch subsequence matching, case-folded (catches abbreviations
//     like "NNInt" for "NotNullInt")
//   - Levenshtein distance over normalized identifiers (catches typos like
//     "NotNulInt" that are not subsequences)
package suggest
