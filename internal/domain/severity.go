package domain

import "strings"

// Severity is the CAP severity reported for an alert. The zero value is
// SeverityUnknown so that anything the feed sends we don't recognize falls
// back safely.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityMinor
	SeverityModerate
	SeveritySevere
	SeverityExtreme
)

// Severities lists every severity, most intense first.
var Severities = []Severity{
	SeverityExtreme,
	SeveritySevere,
	SeverityModerate,
	SeverityMinor,
	SeverityUnknown,
}

func (s Severity) String() string {
	switch s {
	case SeverityExtreme:
		return "Extreme"
	case SeveritySevere:
		return "Severe"
	case SeverityModerate:
		return "Moderate"
	case SeverityMinor:
		return "Minor"
	case SeverityUnknown:
		return "Unknown"
	}
	return "Unknown"
}

// ParseSeverity maps a feed severity string to a Severity. Matching ignores
// case and surrounding whitespace; anything else is SeverityUnknown.
func ParseSeverity(value string) Severity {
	s, _ := LookupSeverity(value)
	return s
}

// LookupSeverity is like ParseSeverity but reports whether value named a
// severity at all.
func LookupSeverity(value string) (Severity, bool) {
	value = strings.TrimSpace(value)
	for _, s := range Severities {
		if strings.EqualFold(value, s.String()) {
			return s, true
		}
	}
	return SeverityUnknown, false
}
