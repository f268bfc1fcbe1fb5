package domain

import (
	"strings"

	"github.com/kapu/movie-picker-go/internal/constants"
)

// FilterSpec narrows the catalog. Type and Genre use constants.AnyFacet for
// "no constraint"; YearMin and YearMax are inclusive.
type FilterSpec struct {
	Type    string
	Genre   string
	Keyword string
	YearMin int
	YearMax int
}

// NewFilterSpec returns a spec that matches every record with a year inside
// the default bounds.
func NewFilterSpec() FilterSpec {
	return FilterSpec{
		Type:    constants.AnyFacet,
		Genre:   constants.AnyFacet,
		YearMin: constants.YearBounds.Min,
		YearMax: constants.YearBounds.Max,
	}
}

// WithKeyword stores the keyword trimmed and lower-cased.
func (s FilterSpec) WithKeyword(keyword string) FilterSpec {
	s.Keyword = strings.ToLower(strings.TrimSpace(keyword))
	return s
}

// FacetSet lists the selectable type and genre values of a catalog. Both lists
// start with constants.AnyFacet.
type FacetSet struct {
	Types  []string
	Genres []string
}

// EmptyFacetSet is the facet set of a catalog with no records.
func EmptyFacetSet() FacetSet {
	return FacetSet{
		Types:  []string{constants.AnyFacet},
		Genres: []string{constants.AnyFacet},
	}
}
