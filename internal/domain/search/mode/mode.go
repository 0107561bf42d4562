package mode

import "strings"

// Mode is the result ordering requested for a search.
type Mode string

// Sort mode constants.
const (
	// Relevance orders by total score (default).
	Relevance  Mode = "RELEVANCE"
	Popularity Mode = "POPULARITY"
	Latest     Mode = "LATEST"
	// Unset means no preference was expressed.
	Unset Mode = ""
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Relevance || m == Popularity || m == Latest
}

// Parse normalizes s (case-insensitive). Empty input yields Unset.
// The second value is false for unknown modes.
func Parse(s string) (Mode, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Unset, true
	}
	m := Mode(s)
	if !m.IsValid() {
		return Unset, false
	}
	return m, true
}

// Resolve picks the final ordering for a request.
// An explicit mode other than Relevance wins outright, then the suggested
// mode, then Relevance.
func Resolve(explicit, suggested Mode) Mode {
	if explicit.IsValid() && explicit != Relevance {
		return explicit
	}
	if suggested.IsValid() {
		return suggested
	}
	return Relevance
}
