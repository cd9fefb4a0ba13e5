package session

import "strings"

// Grade compares a learner's free-text input against the expected back
// text. Both sides are normalized (trimmed, lowercased, internal
// whitespace runs collapsed) and the input is judged correct on exact
// equality or on a substring match in either direction.
//
// The substring leniency is intentional product behavior: typed recall
// favors false positives over false negatives, so "the capital is paris"
// matches an expected "Paris". Changing it is a product decision, not a
// cleanup.
func Grade(input, expected string) bool {
	u := normalize(input)
	e := normalize(expected)
	if u == "" || e == "" {
		return false
	}
	return u == e ||
		strings.Contains(u, e) ||
		strings.Contains(e, u)
}

// normalize trims, lowercases and collapses whitespace runs to single
// spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
