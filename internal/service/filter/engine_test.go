package filter

import (
	"testing"

	"github.com/kapu/movie-picker-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int { return &n }

func movie(id, title, titleType, genres, directors string, year *int) domain.Movie {
	m := domain.Movie{ID: id, Title: title, Year: year}
	if titleType != "" {
		m.TitleType = strPtr(titleType)
	}
	if genres != "" {
		m.GenresRaw = strPtr(genres)
	}
	if directors != "" {
		m.Directors = strPtr(directors)
	}
	return m
}

func sampleRecords() []domain.Movie {
	return []domain.Movie{
		movie("tt1", "Memento", "Movie", "Mystery, Thriller", "Christopher Nolan", intPtr(2000)),
		movie("tt2", "Arrival", "Movie", "Drama, Sci-Fi", "Denis Villeneuve", intPtr(2016)),
		movie("tt3", "Dark", "TV Series", "Crime, Sci-Fi Adventure", "", intPtr(2017)),
		movie("tt4", "Unknown Year", "Movie", "Drama", "Nolan Fan", nil),
		movie("tt5", "Heat", "movie", "Crime", "Michael Mann", intPtr(1995)),
	}
}

func ids(records []domain.Movie) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestApplyDefaultSpecKeepsRecordsWithYear(t *testing.T) {
	got := Apply(sampleRecords(), domain.NewFilterSpec())
	assert.Equal(t, []string{"tt1", "tt2", "tt3", "tt5"}, ids(got))
}

func TestApplyTypeIsExactAndCaseSensitive(t *testing.T) {
	spec := domain.NewFilterSpec()
	spec.Type = "Movie"

	got := Apply(sampleRecords(), spec)
	assert.Equal(t, []string{"tt1", "tt2"}, ids(got))
}

func TestApplyGenreMatchesSubstring(t *testing.T) {
	spec := domain.NewFilterSpec()
	spec.Genre = "Sci-Fi"

	got := Apply(sampleRecords(), spec)
	assert.Equal(t, []string{"tt2", "tt3"}, ids(got))

	spec.Genre = "sci-fi"
	assert.Empty(t, Apply(sampleRecords(), spec))
}

func TestApplyYearRangeIsInclusive(t *testing.T) {
	records := []domain.Movie{
		movie("a", "A", "Movie", "Drama", "", intPtr(1990)),
		movie("b", "B", "Movie", "Drama", "", intPtr(2005)),
		movie("c", "C", "Movie", "Drama", "", intPtr(2020)),
	}
	spec := domain.NewFilterSpec()
	spec.YearMin = 2000
	spec.YearMax = 2010
	assert.Equal(t, []string{"b"}, ids(Apply(records, spec)))

	spec.YearMin = 2005
	spec.YearMax = 2005
	assert.Equal(t, []string{"b"}, ids(Apply(records, spec)))
}

func TestApplyInvertedYearRangeIsEmpty(t *testing.T) {
	spec := domain.NewFilterSpec()
	spec.YearMin = 2010
	spec.YearMax = 2000

	got := Apply(sampleRecords(), spec)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApplyKeywordSearchesTitleGenresAndDirectors(t *testing.T) {
	spec := domain.NewFilterSpec().WithKeyword("NOLAN")
	assert.Equal(t, []string{"tt1"}, ids(Apply(sampleRecords(), spec)), "record without year is excluded by the year range")

	spec = domain.NewFilterSpec().WithKeyword("crime")
	assert.Equal(t, []string{"tt3", "tt5"}, ids(Apply(sampleRecords(), spec)))

	spec = domain.NewFilterSpec().WithKeyword("arr")
	assert.Equal(t, []string{"tt2"}, ids(Apply(sampleRecords(), spec)))
}

func TestApplyIsSubsetInInputOrder(t *testing.T) {
	records := sampleRecords()
	spec := domain.NewFilterSpec()
	spec.YearMin = 1995
	spec.YearMax = 2016

	got := Apply(records, spec)
	assert.Equal(t, []string{"tt1", "tt2", "tt5"}, ids(got))
	for _, r := range got {
		assert.Contains(t, ids(records), r.ID)
	}
}

func TestPredicatesSkipUnconstrainedCriteria(t *testing.T) {
	assert.Len(t, Predicates(domain.NewFilterSpec()), 1)

	spec := domain.NewFilterSpec().WithKeyword("x")
	spec.Type = "Movie"
	spec.Genre = "Drama"
	assert.Len(t, Predicates(spec), 4)
}
