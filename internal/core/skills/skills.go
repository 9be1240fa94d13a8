// Package skills owns the normalization of delimited skill labels. Employees
// and projects both store skills as comma-separated free text; every piece of
// matching logic goes through Parse so both sides compare the same way.
package skills

import "strings"

// Set is a normalized collection of skill labels: trimmed, lower-cased and
// de-duplicated, preserving first-occurrence order for display.
type Set []string

// Parse splits a comma-delimited label string into a Set. Empty labels are
// dropped; an empty or whitespace-only input yields an empty Set.
func Parse(raw string) Set {
	if strings.TrimSpace(raw) == "" {
		return Set{}
	}

	seen := make(map[string]struct{})
	set := make(Set, 0, 4)
	for _, part := range strings.Split(raw, ",") {
		label := strings.ToLower(strings.TrimSpace(part))
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		set = append(set, label)
	}
	return set
}

func (s Set) IsEmpty() bool {
	return len(s) == 0
}

func (s Set) Contains(label string) bool {
	for _, have := range s {
		if have == label {
			return true
		}
	}
	return false
}

// Intersect returns the labels present in both sets, in this set's order.
func (s Set) Intersect(other Set) Set {
	out := make(Set, 0, len(s))
	for _, label := range s {
		if other.Contains(label) {
			out = append(out, label)
		}
	}
	return out
}

// String renders the set back into the delimited display form.
func (s Set) String() string {
	return strings.Join(s, ", ")
}
