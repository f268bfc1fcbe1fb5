package session

import (
	"context"
	stderrors "errors"
	"os"
	"strings"
	"sync"

	"github.com/kapu/movie-picker-go/internal/domain"
	"github.com/kapu/movie-picker-go/internal/service/catalog"
	"github.com/kapu/movie-picker-go/internal/service/filter"
	"github.com/kapu/movie-picker-go/internal/service/selector"
	"github.com/kapu/movie-picker-go/internal/service/settings"
	"go.uber.org/zap"
)

var (
	// ErrNoCatalog is returned by Pick before any catalog has been loaded.
	ErrNoCatalog = stderrors.New("no catalog loaded")
	// ErrNoCandidates is returned by PickAgain when no subset is remembered.
	ErrNoCandidates = stderrors.New("no previous selection")
)

// Enricher resolves the remote metadata of a record.
type Enricher interface {
	Fetch(ctx context.Context, imdbID, apiKey string) domain.Enrichment
}

// Deps are the collaborators a Session is built from.
type Deps struct {
	Catalog  *catalog.Store
	Selector *selector.Selector
	Enricher Enricher
	Config   *settings.SessionConfig
	// DefaultServiceKey seeds an empty persisted key during Restore.
	DefaultServiceKey string
	Logger            *zap.Logger
}

// Session owns the state of one interactive user: the loaded catalog, the
// persisted settings and the subset of the most recent selection.
type Session struct {
	catalog  *catalog.Store
	selector *selector.Selector
	enricher Enricher
	config   *settings.SessionConfig
	envKey   string
	logger   *zap.Logger

	mu         sync.Mutex
	candidates []domain.Movie
	lastSpec   *domain.FilterSpec
	lastPick   *domain.Pick
}

func New(deps Deps) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	catalogStore := deps.Catalog
	if catalogStore == nil {
		catalogStore = catalog.NewStore(logger)
	}
	sel := deps.Selector
	if sel == nil {
		sel = selector.New(nil)
	}

	return &Session{
		catalog:  catalogStore,
		selector: sel,
		enricher: deps.Enricher,
		config:   deps.Config,
		envKey:   strings.TrimSpace(deps.DefaultServiceKey),
		logger:   logger,
	}
}

// Restore reads the persisted settings and reloads the last catalog if its
// file still exists. Only a settings read failure is returned.
func (s *Session) Restore(ctx context.Context) error {
	if err := s.config.Load(ctx); err != nil {
		return err
	}

	if s.config.ServiceKey() == "" && s.envKey != "" {
		if err := s.config.SetServiceKey(ctx, s.envKey); err != nil {
			s.logger.Warn("Failed to persist service key from environment", zap.Error(err))
		}
	}

	path := s.config.CatalogPath()
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		s.logger.Info("Last catalog not available", zap.String("path", path), zap.Error(err))
		return nil
	}

	if _, err := s.LoadCatalog(ctx, path); err != nil {
		s.logger.Warn("Failed to reload last catalog", zap.String("path", path), zap.Error(err))
	}
	return nil
}

// LoadCatalog replaces the catalog with the file at path and returns the
// number of usable records. The remembered subset is discarded.
func (s *Session) LoadCatalog(ctx context.Context, path string) (int, error) {
	records, err := s.catalog.Load(ctx, path)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.candidates = nil
	s.lastSpec = nil
	s.lastPick = nil
	s.mu.Unlock()

	if err := s.config.SetCatalogPath(ctx, path); err != nil {
		s.logger.Warn("Failed to persist catalog path", zap.String("path", path), zap.Error(err))
	}
	return len(records), nil
}

func (s *Session) Facets() domain.FacetSet {
	return s.catalog.Facets()
}

func (s *Session) CatalogLoaded() bool {
	return s.catalog.Loaded()
}

func (s *Session) CatalogSize() int {
	return s.catalog.Len()
}

func (s *Session) SetServiceKey(ctx context.Context, key string) error {
	return s.config.SetServiceKey(ctx, key)
}

func (s *Session) Config() *settings.SessionConfig {
	return s.config
}

// Pick filters the catalog with spec, remembers the matching subset and
// draws one enriched record from it.
func (s *Session) Pick(ctx context.Context, spec domain.FilterSpec) (*domain.Pick, error) {
	if !s.catalog.Loaded() {
		return nil, ErrNoCatalog
	}

	candidates := filter.Apply(s.catalog.Records(), spec)

	s.mu.Lock()
	s.candidates = candidates
	s.lastSpec = &spec
	s.mu.Unlock()

	s.logger.Debug("Filter applied",
		zap.String("type", spec.Type),
		zap.String("genre", spec.Genre),
		zap.String("keyword", spec.Keyword),
		zap.Int("year_min", spec.YearMin),
		zap.Int("year_max", spec.YearMax),
		zap.Int("candidates", len(candidates)),
	)

	return s.draw(ctx, candidates)
}

// PickAgain draws from the subset of the previous Pick without filtering again.
func (s *Session) PickAgain(ctx context.Context) (*domain.Pick, error) {
	s.mu.Lock()
	candidates := s.candidates
	remembered := s.lastSpec != nil
	s.mu.Unlock()

	if !remembered {
		return nil, ErrNoCandidates
	}
	return s.draw(ctx, candidates)
}

// LastPick returns the most recent successful pick, or nil.
func (s *Session) LastPick() *domain.Pick {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPick
}

// LastFilter returns the spec of the most recent Pick, or nil.
func (s *Session) LastFilter() *domain.FilterSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSpec
}

func (s *Session) draw(ctx context.Context, candidates []domain.Movie) (*domain.Pick, error) {
	movie, err := s.selector.Pick(candidates)
	if err != nil {
		return nil, err
	}

	pick := &domain.Pick{
		Movie:      movie,
		Candidates: len(candidates),
	}
	if s.enricher != nil {
		pick.Enrichment = s.enricher.Fetch(ctx, movie.ID, s.config.ServiceKey())
	}

	s.mu.Lock()
	s.lastPick = pick
	s.mu.Unlock()

	s.logger.Info("Movie picked",
		zap.String("id", movie.ID),
		zap.String("title", movie.Title),
		zap.Int("candidates", len(candidates)),
		zap.String("metadata", pick.Enrichment.Metadata.String()),
		zap.String("poster", pick.Enrichment.PosterState.String()),
		zap.Bool("degraded", pick.Enrichment.Degraded()),
	)
	return pick, nil
}
