package content

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxDescriptionLength is the maximum description length in runes kept in the index.
const MaxDescriptionLength = 500

// Grades holds the three editorial ratings of an entry.
type Grades struct {
	Trust     Grade
	Relevance Grade
	Accuracy  Grade
}

// DefaultGrades returns B for every rating.
func DefaultGrades() Grades {
	return Grades{Trust: DefaultGrade, Relevance: DefaultGrade, Accuracy: DefaultGrade}
}

func (g Grades) normalized() Grades {
	return Grades{
		Trust:     ParseGrade(string(g.Trust)),
		Relevance: ParseGrade(string(g.Relevance)),
		Accuracy:  ParseGrade(string(g.Accuracy)),
	}
}

// Engagement holds the engagement counters of an entry.
type Engagement struct {
	Views       int64
	Likes       int64
	Impressions int64
	Clicks      int64
	Comments    int64
	Reports     int64
}

func (e Engagement) clamped() Engagement {
	return Engagement{
		Views:       nonNegative(e.Views),
		Likes:       nonNegative(e.Likes),
		Impressions: nonNegative(e.Impressions),
		Clicks:      nonNegative(e.Clicks),
		Comments:    nonNegative(e.Comments),
		Reports:     nonNegative(e.Reports),
	}
}

// Quality holds metrics derived from the description at index-write time.
type Quality struct {
	ContentLength    int
	ReadabilityScore float64
}

// Fields is the flat input used to hydrate an Entry from storage.
type Fields struct {
	ID          string
	Ref         Ref
	Link        string
	Title       string
	Description string
	Tags        []string
	Keywords    []string
	Grades      Grades
	Engagement  Engagement
	Quality     Quality
	CreatedAt   time.Time
	LastActive  time.Time
	Hidden      bool
	DeletedAt   *time.Time
}

// Entry is one row of the unified search index (immutable value object).
type Entry struct {
	id          string
	ref         Ref
	link        string
	title       string
	description string
	tags        []string
	keywords    []string
	grades      Grades
	engagement  Engagement
	quality     Quality
	createdAt   time.Time
	lastActive  time.Time
	hidden      bool
	deletedAt   *time.Time
}

// New validates and creates an Entry.
func New(f Fields) (Entry, error) {
	if f.ID == "" {
		return Entry{}, fmt.Errorf("entry ID is required")
	}
	if f.Ref == nil {
		return Entry{}, fmt.Errorf("entry reference is required")
	}
	if f.Ref.TargetID() == "" {
		return Entry{}, fmt.Errorf("%s reference ID is required", strings.ToLower(string(f.Ref.Kind())))
	}
	if strings.TrimSpace(f.Title) == "" {
		return Entry{}, fmt.Errorf("title is required")
	}
	return Reconstruct(f), nil
}

// Reconstruct creates an Entry without validation (storage hydration).
// Grades and counters are still normalized so that one malformed row cannot
// poison scoring.
func Reconstruct(f Fields) Entry {
	return Entry{
		id:          f.ID,
		ref:         f.Ref,
		link:        f.Link,
		title:       f.Title,
		description: truncateRunes(f.Description, MaxDescriptionLength),
		tags:        dedupe(f.Tags),
		keywords:    dedupe(f.Keywords),
		grades:      f.Grades.normalized(),
		engagement:  f.Engagement.clamped(),
		quality:     f.Quality,
		createdAt:   f.CreatedAt,
		lastActive:  f.LastActive,
		hidden:      f.Hidden,
		deletedAt:   f.DeletedAt,
	}
}

// ID returns the index entry identifier.
func (e *Entry) ID() string { return e.id }

// Ref returns the reference to the owning content.
func (e *Entry) Ref() Ref { return e.ref }

// Kind returns the content kind derived from the reference.
func (e *Entry) Kind() Kind {
	if e.ref == nil {
		return ""
	}
	return e.ref.Kind()
}

// Link returns the display link.
func (e *Entry) Link() string { return e.link }

// Title returns the entry title.
func (e *Entry) Title() string { return e.title }

// Description returns the truncated description.
func (e *Entry) Description() string { return e.description }

// Tags returns the entry tags.
func (e *Entry) Tags() []string { return e.tags }

// Keywords returns the extra search hints.
func (e *Entry) Keywords() []string { return e.keywords }

// Grades returns the editorial grades.
func (e *Entry) Grades() Grades { return e.grades }

// Engagement returns the engagement counters.
func (e *Entry) Engagement() Engagement { return e.engagement }

// Quality returns the derived quality metrics.
func (e *Entry) Quality() Quality { return e.quality }

// CreatedAt returns the creation time.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

// LastActive returns the last engagement time.
func (e *Entry) LastActive() time.Time { return e.lastActive }

// Hidden reports whether moderation hid the entry.
func (e *Entry) Hidden() bool { return e.hidden }

// DeletedAt returns the soft-delete time, nil when live.
func (e *Entry) DeletedAt() *time.Time { return e.deletedAt }

// Searchable reports whether the entry may appear in results.
func (e *Entry) Searchable() bool { return !e.hidden && e.deletedAt == nil }

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
