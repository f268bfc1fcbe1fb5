package domain

import "strconv"

// Movie is one catalog row. Optional attributes are nil when the source cell
// was blank or could not be parsed.
type Movie struct {
	ID        string
	Title     string
	TitleType *string
	GenresRaw *string
	Genres    []string
	Year      *int
	Directors *string
	Rating    *string
	URL       *string
	Runtime   *int
}

func (m *Movie) HasYear() bool {
	return m != nil && m.Year != nil
}

// YearString renders the year for display, or "" when absent.
func (m *Movie) YearString() string {
	if !m.HasYear() {
		return ""
	}
	return strconv.Itoa(*m.Year)
}

// StringOr dereferences s, falling back to def when s is nil or empty.
func StringOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
