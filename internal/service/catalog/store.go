package catalog

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/kapu/movie-picker-go/internal/constants"
	"github.com/kapu/movie-picker-go/internal/domain"
	"github.com/kapu/movie-picker-go/pkg/errors"
	"go.uber.org/zap"
)

// Store holds the records of the most recently loaded catalog file and the
// facets derived from them. A failed load leaves the previous state untouched.
type Store struct {
	mu      sync.RWMutex
	records []domain.Movie
	facets  domain.FacetSet
	source  string
	loaded  bool

	logger *zap.Logger
}

func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		facets: domain.EmptyFacetSet(),
		logger: logger,
	}
}

// Load reads the CSV at path and, on success, replaces the store contents.
func (s *Store) Load(ctx context.Context, path string) ([]domain.Movie, error) {
	file, err := os.Open(path)
	if err != nil {
		s.logger.Warn("Catalog open failed", zap.String("path", path), zap.Error(err))
		return nil, errors.NewLoadError("failed to open catalog file", path, err)
	}
	defer file.Close()

	records, stats, err := Parse(ctx, file)
	if err != nil {
		s.logger.Warn("Catalog parse failed", zap.String("path", path), zap.Error(err))
		return nil, errors.NewLoadError("failed to parse catalog file", path, err)
	}

	facets := BuildFacets(records)

	s.mu.Lock()
	s.records = records
	s.facets = facets
	s.source = path
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("Catalog loaded",
		zap.String("path", path),
		zap.Int("rows", stats.Rows),
		zap.Int("kept", len(records)),
		zap.Int("dropped", stats.Dropped),
		zap.Int("types", len(facets.Types)-1),
		zap.Int("genres", len(facets.Genres)-1),
	)

	return records, nil
}

// Records returns the current records. The slice must not be modified.
func (s *Store) Records() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

func (s *Store) Facets() domain.FacetSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.facets
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Loaded reports whether any load has succeeded in this session.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Source returns the path of the last successful load.
func (s *Store) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// ParseStats counts the data rows seen while parsing.
type ParseStats struct {
	Rows    int
	Dropped int
}

// Parse decodes an IMDb-style CSV export. Rows without a title or identifier
// are dropped; everything else is kept with blank optional cells left nil.
func Parse(ctx context.Context, r io.Reader) ([]domain.Movie, ParseStats, error) {
	var stats ParseStats

	reader := csv.NewReader(skipByteOrderMark(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, stats, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, stats, fmt.Errorf("read header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, stats, err
	}

	records := make([]domain.Movie, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read row %d: %w", stats.Rows+1, err)
		}
		stats.Rows++

		movie, ok := cols.toMovie(row)
		if !ok {
			stats.Dropped++
			continue
		}
		records = append(records, movie)
	}

	return records, stats, nil
}

// skipByteOrderMark drops a leading UTF-8 BOM so a quoted first header still
// parses as a quoted field.
func skipByteOrderMark(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if first, _, err := br.ReadRune(); err == nil && first != '\ufeff' {
		_ = br.UnreadRune()
	}
	return br
}

// BuildFacets computes the sorted distinct title types and genre tokens, each
// list prefixed with constants.AnyFacet.
func BuildFacets(records []domain.Movie) domain.FacetSet {
	types := make(map[string]struct{})
	genres := make(map[string]struct{})

	for i := range records {
		if t := records[i].TitleType; t != nil && *t != "" {
			types[*t] = struct{}{}
		}
		for _, g := range records[i].Genres {
			genres[g] = struct{}{}
		}
	}

	return domain.FacetSet{
		Types:  withAny(types),
		Genres: withAny(genres),
	}
}

func withAny(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return append([]string{constants.AnyFacet}, values...)
}

type columns struct {
	id, title, titleType, genres, year, directors int
	rating, url, runtime                          int
}

func resolveColumns(header []string) (*columns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	names := constants.CatalogColumns
	var missing []string
	required := func(name string) int {
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}
	optional := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return -1
	}

	cols := &columns{
		id:        required(names.ID),
		title:     required(names.Title),
		titleType: required(names.TitleType),
		genres:    required(names.Genres),
		year:      required(names.Year),
		directors: required(names.Directors),
		rating:    optional(names.Rating),
		url:       optional(names.URL),
		runtime:   optional(names.Runtime),
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func (c *columns) toMovie(row []string) (domain.Movie, bool) {
	title := cell(row, c.title)
	id := cell(row, c.id)
	if title == "" || id == "" {
		return domain.Movie{}, false
	}

	movie := domain.Movie{
		ID:        id,
		Title:     title,
		TitleType: optionalString(cell(row, c.titleType)),
		GenresRaw: optionalString(cell(row, c.genres)),
		Year:      optionalInt(cell(row, c.year)),
		Directors: optionalString(cell(row, c.directors)),
		Rating:    optionalString(cell(row, c.rating)),
		URL:       optionalString(cell(row, c.url)),
		Runtime:   optionalInt(cell(row, c.runtime)),
	}
	movie.Genres = splitGenres(movie.GenresRaw)

	return movie, true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// optionalInt accepts "2005" as well as "2005.0", which spreadsheet tools
// produce for integer columns with blanks.
func optionalInt(v string) *int {
	if v == "" {
		return nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int(f)) {
		return nil
	}
	n := int(f)
	return &n
}

func splitGenres(raw *string) []string {
	if raw == nil {
		return []string{}
	}
	parts := strings.Split(*raw, ",")
	genres := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			genres = append(genres, trimmed)
		}
	}
	return genres
}
