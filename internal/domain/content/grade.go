package content

import "strings"

// Grade is an editorial ordinal rating. S is the highest, F the lowest.
type Grade string

// Grade scale.
const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeF Grade = "F"
)

// DefaultGrade is assigned when a grade is missing or unrecognized.
const DefaultGrade = GradeB

// GradeScale lists the grades from highest to lowest.
var GradeScale = []Grade{GradeS, GradeA, GradeB, GradeC, GradeF}

// ParseGrade normalizes s into a Grade. Unknown values map to DefaultGrade.
func ParseGrade(s string) Grade {
	g := Grade(strings.ToUpper(strings.TrimSpace(s)))
	if g.IsValid() {
		return g
	}
	return DefaultGrade
}

// IsValid reports whether g is on the scale.
func (g Grade) IsValid() bool {
	switch g {
	case GradeS, GradeA, GradeB, GradeC, GradeF:
		return true
	}
	return false
}
