package keyword

import "strings"

// Entry is one row of the search keyword dictionary: a canonical term
// and the synonyms that should expand to it.
type Entry struct {
	term     string
	synonyms []string
	category string
}

// New creates a dictionary entry. Empty synonyms are dropped.
func New(term string, synonyms []string, category string) Entry {
	syn := make([]string, 0, len(synonyms))
	for _, s := range synonyms {
		if s = strings.TrimSpace(s); s != "" {
			syn = append(syn, s)
		}
	}
	return Entry{term: strings.TrimSpace(term), synonyms: syn, category: category}
}

// Term returns the canonical term.
func (e *Entry) Term() string { return e.term }

// Synonyms returns the synonyms of the term.
func (e *Entry) Synonyms() []string { return e.synonyms }

// Category returns the optional category tag.
func (e *Entry) Category() string { return e.category }

// Matches reports whether token equals the term or one of its synonyms,
// ignoring case.
func (e *Entry) Matches(token string) bool {
	if strings.EqualFold(e.term, token) {
		return true
	}
	for _, s := range e.synonyms {
		if strings.EqualFold(s, token) {
			return true
		}
	}
	return false
}
