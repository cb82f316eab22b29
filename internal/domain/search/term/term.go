// Package term parses the raw search string "key1=value1#key2=value2" into terms.
package term

import "strings"

// Wire format delimiters.
const (
	Separator = "#"
	Assign    = "="
)

// Term is one parsed field=value condition. Field and Value are never blank.
type Term struct {
	Field string
	Value string
}

// String renders the term back into wire format.
func (t Term) String() string { return t.Field + Assign + t.Value }

// Parse splits raw into terms. Blank input yields no terms.
func Parse(raw string) []Term {
	return ParseFunc(raw, nil)
}

// ParseFunc is Parse with a callback for every non-blank segment that has no "=".
// Such segments never produce a term; dropped may be nil.
func ParseFunc(raw string, dropped func(segment string)) []Term {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var terms []Term
	for _, segment := range strings.Split(raw, Separator) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		// Only the first "=" splits, so values may contain "=".
		key, value, ok := strings.Cut(segment, Assign)
		if !ok {
			if dropped != nil {
				dropped(segment)
			}
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		terms = append(terms, Term{Field: key, Value: value})
	}
	return terms
}

// Join renders terms into the wire format. Values containing "#" cannot round-trip.
func Join(terms []Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, Separator)
}
