package analyze

import (
	"strconv"
	"strings"
)

// TagKey is the struct tag key utilgen reads and writes.
const TagKey = "utilgen"

// Tag options understood under TagKey.
const (
	OptReadonly = "readonly"
	OptRequired = "required"
	OptNotNull  = "notnull"
)

// TagPair is one key:"value" entry of a struct tag.
type TagPair struct {
	Key   string
	Value string
}

// ParseTag splits a struct tag into its entries in order. Parsing stops at
// the first malformed entry, like reflect.StructTag.Lookup.
func ParseTag(tag string) []TagPair {
	var pairs []TagPair

	for tag != "" {
		i := 0
		for i < len(tag) && tag[i] == ' ' {
			i++
		}

		tag = tag[i:]
		if tag == "" {
			break
		}

		i = 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' && tag[i] != 0x7f {
			i++
		}

		if i == 0 || i+1 >= len(tag) || tag[i] != ':' || tag[i+1] != '"' {
			break
		}

		key := tag[:i]
		tag = tag[i+1:]

		i = 1
		for i < len(tag) && tag[i] != '"' {
			if tag[i] == '\\' {
				i++
			}

			i++
		}

		if i >= len(tag) {
			break
		}

		value, err := strconv.Unquote(tag[:i+1])
		if err != nil {
			break
		}

		pairs = append(pairs, TagPair{Key: key, Value: value})
		tag = tag[i+1:]
	}

	return pairs
}

// FormatTag renders entries as a struct tag.
func FormatTag(pairs []TagPair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.Key + ":" + strconv.Quote(p.Value)
	}

	return strings.Join(parts, " ")
}

// LookupTag returns the value stored under key.
func LookupTag(tag, key string) (string, bool) {
	for _, p := range ParseTag(tag) {
		if p.Key == key {
			return p.Value, true
		}
	}

	return "", false
}

// StripTag returns tag without the entries stored under key.
func StripTag(tag, key string) string {
	var kept []TagPair

	for _, p := range ParseTag(tag) {
		if p.Key != key {
			kept = append(kept, p)
		}
	}

	return FormatTag(kept)
}

// HasOption reports whether the comma-separated value stored under key
// contains opt.
func HasOption(tag, key, opt string) bool {
	v, ok := LookupTag(tag, key)
	if !ok {
		return false
	}

	for _, o := range strings.Split(v, ",") {
		if strings.TrimSpace(o) == opt {
			return true
		}
	}

	return false
}
