// Package filter narrows a catalog to the records matching a FilterSpec.
package filter

import (
	"strings"

	"github.com/kapu/movie-picker-go/internal/constants"
	"github.com/kapu/movie-picker-go/internal/domain"
)

// Predicate decides whether a single record passes one criterion.
type Predicate func(movie *domain.Movie) bool

// Apply returns the records matching every criterion of spec, in input order.
// The result is never nil.
func Apply(records []domain.Movie, spec domain.FilterSpec) []domain.Movie {
	result := make([]domain.Movie, 0)
	if spec.YearMin > spec.YearMax {
		return result
	}

	predicates := Predicates(spec)
	for i := range records {
		if matchesAll(&records[i], predicates) {
			result = append(result, records[i])
		}
	}
	return result
}

// Predicates builds the conjunction terms for spec. Unconstrained criteria
// contribute no predicate.
func Predicates(spec domain.FilterSpec) []Predicate {
	predicates := make([]Predicate, 0, 4)

	if spec.Type != constants.AnyFacet {
		predicates = append(predicates, ByType(spec.Type))
	}
	if spec.Genre != constants.AnyFacet {
		predicates = append(predicates, ByGenre(spec.Genre))
	}
	predicates = append(predicates, ByYearRange(spec.YearMin, spec.YearMax))
	if keyword := strings.ToLower(spec.Keyword); keyword != "" {
		predicates = append(predicates, ByKeyword(keyword))
	}

	return predicates
}

// ByType matches the stored title type exactly. A record without a type
// never matches.
func ByType(titleType string) Predicate {
	return func(movie *domain.Movie) bool {
		return movie.TitleType != nil && *movie.TitleType == titleType
	}
}

// ByGenre matches genre as a case-sensitive substring of the raw genre field,
// so "Sci-Fi" also matches a compound token such as "Sci-Fi Adventure".
func ByGenre(genre string) Predicate {
	return func(movie *domain.Movie) bool {
		return movie.GenresRaw != nil && strings.Contains(*movie.GenresRaw, genre)
	}
}

// ByYearRange matches records whose year lies in [min, max]. Records without
// a year never match.
func ByYearRange(min, max int) Predicate {
	return func(movie *domain.Movie) bool {
		if movie.Year == nil {
			return false
		}
		year := *movie.Year
		return year >= min && year <= max
	}
}

// ByKeyword matches when the lower-cased keyword occurs in the title, the raw
// genre field or the directors field. Absent fields are skipped.
func ByKeyword(keyword string) Predicate {
	keyword = strings.ToLower(keyword)
	return func(movie *domain.Movie) bool {
		if strings.Contains(strings.ToLower(movie.Title), keyword) {
			return true
		}
		if containsFold(movie.GenresRaw, keyword) {
			return true
		}
		return containsFold(movie.Directors, keyword)
	}
}

func containsFold(field *string, lowerNeedle string) bool {
	if field == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*field), lowerNeedle)
}

func matchesAll(movie *domain.Movie, predicates []Predicate) bool {
	for _, p := range predicates {
		if !p(movie) {
			return false
		}
	}
	return true
}
