package domain

import "image"

// MetadataStatus describes how the metadata lookup step ended.
type MetadataStatus string

const (
	MetadataOK       MetadataStatus = "ok"
	MetadataNoKey    MetadataStatus = "no_key"
	MetadataNotFound MetadataStatus = "not_found"
	MetadataFailed   MetadataStatus = "failed"
)

func (s MetadataStatus) String() string {
	return string(s)
}

// PosterStatus describes how the poster retrieval step ended.
type PosterStatus string

const (
	PosterAvailable    PosterStatus = "available"
	PosterNotAvailable PosterStatus = "not_available"
	PosterFailed       PosterStatus = "failed"
	PosterSkipped      PosterStatus = "skipped"
)

func (s PosterStatus) String() string {
	return string(s)
}

// Enrichment is the outcome of a remote lookup. It is always usable: degraded
// steps leave placeholder values and record why in the status fields.
type Enrichment struct {
	PosterURL      *string
	Plot           string
	Poster         image.Image
	PosterBlurHash string

	Metadata       MetadataStatus
	MetadataReason string
	PosterState    PosterStatus
	PosterReason   string
}

func (e *Enrichment) HasPoster() bool {
	return e != nil && e.Poster != nil
}

// Degraded reports whether either step fell back to a placeholder.
func (e *Enrichment) Degraded() bool {
	if e == nil {
		return true
	}
	return e.Metadata != MetadataOK || e.PosterState == PosterFailed
}

// Pick is a chosen record together with its enrichment and the size of the
// candidate subset it was drawn from.
type Pick struct {
	Movie      Movie
	Enrichment Enrichment
	Candidates int
}
