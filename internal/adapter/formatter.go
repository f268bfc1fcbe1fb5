package adapter

import (
	"fmt"
	"strings"

	"github.com/kapu/movie-picker-go/internal/constants"
	"github.com/kapu/movie-picker-go/internal/domain"
	"github.com/kapu/movie-picker-go/internal/util"
)

// User-facing messages shared by several commands.
const (
	MessageNoCatalog = "Please load a CSV file first."
	MessageNoMatches = "No movies match the selected filters."
)

// StatusView is the data shown by the status command.
type StatusView struct {
	CatalogPath   string
	CatalogLoaded bool
	Records       int
	Types         int
	Genres        int
	HasServiceKey bool
	Backend       string
	LastPick      string
	LastFilter    *domain.FilterSpec
}

// ResponseFormatter formats picker responses
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

type pickView struct {
	Title      string
	Rating     string
	Year       string
	Genres     string
	Directors  string
	TitleType  string
	Runtime    string
	URL        string
	Plot       string
	Poster     string
	Candidates int
}

// FormatPick renders a chosen movie with its plot and poster state.
func (f *ResponseFormatter) FormatPick(pick *domain.Pick) string {
	if pick == nil {
		return MessageNoMatches
	}

	movie := pick.Movie
	view := pickView{
		Title:      util.TruncateString(movie.Title, constants.StringLimits.Title),
		Rating:     domain.StringOr(movie.Rating, constants.NotAvailable),
		Year:       movie.YearString(),
		Genres:     domain.StringOr(movie.GenresRaw, constants.NotAvailable),
		Directors:  domain.StringOr(movie.Directors, constants.NotAvailable),
		TitleType:  domain.StringOr(movie.TitleType, ""),
		URL:        domain.StringOr(movie.URL, ""),
		Plot:       util.TruncateString(pick.Enrichment.Plot, constants.StringLimits.Plot),
		Poster:     f.posterLine(&pick.Enrichment),
		Candidates: pick.Candidates,
	}
	if view.Year == "" {
		view.Year = constants.NotAvailable
	}
	if movie.Runtime != nil {
		view.Runtime = fmt.Sprintf("%d min", *movie.Runtime)
	}

	return f.render("pick", view, func() string {
		return fmt.Sprintf("🎬 %s (%s)\n📝 %s", view.Title, view.Year, view.Plot)
	})
}

func (f *ResponseFormatter) posterLine(e *domain.Enrichment) string {
	switch e.PosterState {
	case domain.PosterAvailable:
		if !e.HasPoster() {
			return "No image available"
		}
		size := e.Poster.Bounds().Size()
		return fmt.Sprintf("available (%dx%d), save it with \"poster <file.jpg>\"", size.X, size.Y)
	case domain.PosterFailed:
		return "No image available"
	case domain.PosterSkipped:
		return "not requested"
	default:
		return "No image available"
	}
}

type facetsView struct {
	Types  []string
	Genres []string
}

// FormatFacets lists the selectable types and genres.
func (f *ResponseFormatter) FormatFacets(facets domain.FacetSet) string {
	view := facetsView{
		Types:  chunk(facets.Types, constants.StringLimits.FacetLine),
		Genres: chunk(facets.Genres, constants.StringLimits.FacetLine),
	}
	return f.render("facets", view, func() string {
		return "🎞️ Types: " + strings.Join(facets.Types, ", ") + "\n🎭 Genres: " + strings.Join(facets.Genres, ", ")
	})
}

// FormatStatus summarizes the session state.
func (f *ResponseFormatter) FormatStatus(status StatusView) string {
	return f.render("status", status, func() string {
		return fmt.Sprintf("Catalog: %s (%d titles)", status.CatalogPath, status.Records)
	})
}

// FormatHelp lists the available commands.
func (f *ResponseFormatter) FormatHelp() string {
	view := struct {
		MinYear int
		MaxYear int
	}{constants.YearBounds.Min, constants.YearBounds.Max}
	return f.render("help", view, func() string {
		return "Commands: load, pick, next, key, facets, status, poster, help, quit"
	})
}

func (f *ResponseFormatter) FormatLoaded(count int) string {
	return fmt.Sprintf("Loaded %d titles from CSV.", count)
}

func (f *ResponseFormatter) FormatLoadFailed(err error) string {
	return fmt.Sprintf("Failed to load file: %v", err)
}

func (f *ResponseFormatter) FormatKeySaved(key string) string {
	if key == "" {
		return "🔑 API key cleared."
	}
	return "🔑 API key saved."
}

func (f *ResponseFormatter) FormatPosterSaved(path string, width, height int) string {
	return fmt.Sprintf("🖼️ Poster saved to %s (%dx%d).", path, width, height)
}

func (f *ResponseFormatter) FormatUnknownCommand(text string) string {
	return fmt.Sprintf("Unknown command %q. Type \"help\" for the list of commands.", text)
}

// FormatError formats error message
func (f *ResponseFormatter) FormatError(message string) string {
	return "❌ " + message
}

func (f *ResponseFormatter) render(name string, data any, fallback func() string) string {
	out, err := executeFormatterTemplate(name, data)
	if err != nil {
		return fallback()
	}
	return out
}

func chunk(values []string, size int) []string {
	if size <= 0 {
		size = len(values)
	}
	lines := make([]string, 0, len(values)/max(size, 1)+1)
	for start := 0; start < len(values); start += size {
		end := min(start+size, len(values))
		lines = append(lines, strings.Join(values[start:end], ", "))
	}
	return lines
}
