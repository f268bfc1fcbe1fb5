package omdb

import (
	"context"
	"strings"

	"github.com/kapu/movie-picker-go/internal/constants"
	"github.com/kapu/movie-picker-go/internal/domain"
	"go.uber.org/zap"
)

// Fetcher is the transport used by the Enricher.
type Fetcher interface {
	Lookup(ctx context.Context, imdbID, apiKey string) (*LookupResponse, error)
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
}

// Enricher resolves plot and poster for a catalog record. It never returns an
// error: every failure maps to placeholder values plus a status explaining it.
// Each step is attempted exactly once.
type Enricher struct {
	fetcher Fetcher
	logger  *zap.Logger
}

func NewEnricher(fetcher Fetcher, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{fetcher: fetcher, logger: logger}
}

// Fetch looks up imdbID with apiKey, then downloads the poster if one exists.
// A failed poster download never clears the plot obtained by the lookup.
func (e *Enricher) Fetch(ctx context.Context, imdbID, apiKey string) domain.Enrichment {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return domain.Enrichment{
			Plot:        constants.PlotPlaceholder.NoAPIKey,
			Metadata:    domain.MetadataNoKey,
			PosterState: domain.PosterSkipped,
		}
	}

	resp, err := e.fetcher.Lookup(ctx, imdbID, apiKey)
	if err != nil {
		e.logger.Warn("Metadata lookup failed",
			zap.String("imdb_id", imdbID),
			zap.Error(err),
		)
		return domain.Enrichment{
			Plot:           constants.PlotPlaceholder.FetchFailed,
			Metadata:       domain.MetadataFailed,
			MetadataReason: err.Error(),
			PosterState:    domain.PosterSkipped,
		}
	}

	if !resp.Found() {
		e.logger.Info("Title not found by metadata service",
			zap.String("imdb_id", imdbID),
			zap.String("reason", resp.Error),
		)
		return domain.Enrichment{
			Plot:           constants.PlotPlaceholder.NoDescription,
			Metadata:       domain.MetadataNotFound,
			MetadataReason: resp.Error,
			PosterState:    domain.PosterNotAvailable,
		}
	}

	result := domain.Enrichment{
		Plot:     plotOrPlaceholder(resp.Plot),
		Metadata: domain.MetadataOK,
	}

	posterURL := strings.TrimSpace(resp.Poster)
	if !usablePosterURL(posterURL) {
		result.PosterState = domain.PosterNotAvailable
		return result
	}
	result.PosterURL = &posterURL

	e.attachPoster(ctx, imdbID, posterURL, &result)
	return result
}

func (e *Enricher) attachPoster(ctx context.Context, imdbID, posterURL string, result *domain.Enrichment) {
	data, err := e.fetcher.FetchImage(ctx, posterURL)
	if err != nil {
		e.logger.Warn("Poster download failed",
			zap.String("imdb_id", imdbID),
			zap.Error(err),
		)
		result.PosterState = domain.PosterFailed
		result.PosterReason = err.Error()
		return
	}

	poster, err := ProcessPoster(data)
	if err != nil {
		e.logger.Warn("Poster decode failed",
			zap.String("imdb_id", imdbID),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		result.PosterState = domain.PosterFailed
		result.PosterReason = err.Error()
		return
	}

	result.Poster = poster.Image
	result.PosterBlurHash = poster.BlurHash
	result.PosterState = domain.PosterAvailable
}

func usablePosterURL(u string) bool {
	return u != "" && u != constants.NotAvailable
}

func plotOrPlaceholder(plot string) string {
	plot = strings.TrimSpace(plot)
	if plot == "" || plot == constants.NotAvailable {
		return constants.PlotPlaceholder.NoDescription
	}
	return plot
}
