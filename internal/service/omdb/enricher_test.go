package omdb

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/kapu/movie-picker-go/internal/constants"
	"github.com/kapu/movie-picker-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeOMDb serves lookups on / and poster bytes on /poster.jpg.
type fakeOMDb struct {
	server        *httptest.Server
	lookups       atomic.Int32
	imageRequests atomic.Int32

	lookupStatus int
	lookupBody   any
	rawLookup    string
	imageStatus  int
	imageBody    []byte
}

func newFakeOMDb(t *testing.T) *fakeOMDb {
	t.Helper()
	f := &fakeOMDb{lookupStatus: http.StatusOK, imageStatus: http.StatusOK, imageBody: pngBytes(t, 60, 90)}

	mux := http.NewServeMux()
	mux.HandleFunc("/poster.jpg", func(w http.ResponseWriter, r *http.Request) {
		f.imageRequests.Add(1)
		w.WriteHeader(f.imageStatus)
		_, _ = w.Write(f.imageBody)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		f.lookups.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.lookupStatus)
		if f.rawLookup != "" {
			_, _ = w.Write([]byte(f.rawLookup))
			return
		}
		_ = json.NewEncoder(w).Encode(f.lookupBody)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeOMDb) posterURL() string {
	return f.server.URL + "/poster.jpg"
}

func (f *fakeOMDb) enricher() *Enricher {
	client := NewClient(ClientConfig{BaseURL: f.server.URL + "/"}, zap.NewNop())
	return NewEnricher(client, zap.NewNop())
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 2), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFetchWithoutKeyMakesNoRequest(t *testing.T) {
	f := newFakeOMDb(t)

	for _, key := range []string{"", "   "} {
		got := f.enricher().Fetch(context.Background(), "tt0111161", key)
		assert.Equal(t, constants.PlotPlaceholder.NoAPIKey, got.Plot)
		assert.Equal(t, domain.MetadataNoKey, got.Metadata)
		assert.Nil(t, got.PosterURL)
		assert.False(t, got.HasPoster())
	}
	assert.Zero(t, f.lookups.Load())
	assert.Zero(t, f.imageRequests.Load())
}

func TestFetchPlotAndPoster(t *testing.T) {
	f := newFakeOMDb(t)
	f.lookupBody = map[string]string{
		"Title":    "The Shawshank Redemption",
		"Plot":     "Two imprisoned men bond over a number of years.",
		"Poster":   f.posterURL(),
		"Response": "True",
	}

	got := f.enricher().Fetch(context.Background(), "tt0111161", "secret")

	assert.Equal(t, "Two imprisoned men bond over a number of years.", got.Plot)
	assert.Equal(t, domain.MetadataOK, got.Metadata)
	assert.Equal(t, domain.PosterAvailable, got.PosterState)
	require.NotNil(t, got.PosterURL)
	assert.Equal(t, f.posterURL(), *got.PosterURL)
	require.True(t, got.HasPoster())
	assert.Equal(t, image.Pt(constants.PosterConfig.Width, constants.PosterConfig.Height), got.Poster.Bounds().Size())
	assert.NotEmpty(t, got.PosterBlurHash)
	assert.False(t, got.Degraded())
	assert.EqualValues(t, 1, f.lookups.Load())
	assert.EqualValues(t, 1, f.imageRequests.Load())
}

func TestFetchPosterSentinelSkipsImageRequest(t *testing.T) {
	f := newFakeOMDb(t)
	f.lookupBody = map[string]string{"Plot": "A plot.", "Poster": "N/A", "Response": "True"}

	got := f.enricher().Fetch(context.Background(), "tt1", "secret")

	assert.Equal(t, "A plot.", got.Plot)
	assert.Equal(t, domain.PosterNotAvailable, got.PosterState)
	assert.Nil(t, got.PosterURL)
	assert.Zero(t, f.imageRequests.Load())
}

func TestFetchImageFailureKeepsPlot(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   []byte
	}{
		{name: "http error", status: http.StatusNotFound, body: []byte("missing")},
		{name: "undecodable", status: http.StatusOK, body: []byte("definitely not an image")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeOMDb(t)
			f.imageStatus = tt.status
			f.imageBody = tt.body
			f.lookupBody = map[string]string{"Plot": "Kept plot.", "Poster": f.posterURL(), "Response": "True"}

			got := f.enricher().Fetch(context.Background(), "tt1", "secret")

			assert.Equal(t, "Kept plot.", got.Plot)
			assert.Equal(t, domain.MetadataOK, got.Metadata)
			assert.Equal(t, domain.PosterFailed, got.PosterState)
			assert.NotEmpty(t, got.PosterReason)
			assert.False(t, got.HasPoster())
			assert.True(t, got.Degraded())
		})
	}
}

func TestFetchLookupFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		raw    string
	}{
		{name: "server error", status: http.StatusInternalServerError, raw: `{"Response":"False"}`},
		{name: "malformed json", status: http.StatusOK, raw: `{"Plot": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeOMDb(t)
			f.lookupStatus = tt.status
			f.rawLookup = tt.raw

			got := f.enricher().Fetch(context.Background(), "tt1", "secret")

			assert.Equal(t, constants.PlotPlaceholder.FetchFailed, got.Plot)
			assert.Equal(t, domain.MetadataFailed, got.Metadata)
			assert.Nil(t, got.PosterURL)
			assert.Zero(t, f.imageRequests.Load())
		})
	}
}

func TestFetchUnreachableService(t *testing.T) {
	f := newFakeOMDb(t)
	url := f.server.URL
	f.server.Close()

	client := NewClient(ClientConfig{BaseURL: url}, zap.NewNop())
	got := NewEnricher(client, nil).Fetch(context.Background(), "tt1", "secret")

	assert.Equal(t, constants.PlotPlaceholder.FetchFailed, got.Plot)
	assert.NotContains(t, got.MetadataReason, "secret")
}

func TestFetchTitleNotFound(t *testing.T) {
	f := newFakeOMDb(t)
	f.lookupBody = map[string]string{"Response": "False", "Error": "Incorrect IMDb ID."}

	got := f.enricher().Fetch(context.Background(), "tt0", "secret")

	assert.Equal(t, constants.PlotPlaceholder.NoDescription, got.Plot)
	assert.Equal(t, domain.MetadataNotFound, got.Metadata)
	assert.Equal(t, "Incorrect IMDb ID.", got.MetadataReason)
	assert.Equal(t, domain.PosterNotAvailable, got.PosterState)
	assert.Zero(t, f.imageRequests.Load())
}

func TestFetchMissingPlotUsesPlaceholder(t *testing.T) {
	f := newFakeOMDb(t)
	f.lookupBody = map[string]string{"Plot": "N/A", "Response": "True"}

	got := f.enricher().Fetch(context.Background(), "tt1", "secret")
	assert.Equal(t, constants.PlotPlaceholder.NoDescription, got.Plot)
	assert.Equal(t, domain.PosterNotAvailable, got.PosterState)
}

type stubFetcher struct {
	lookupErr error
}

func (s *stubFetcher) Lookup(context.Context, string, string) (*LookupResponse, error) {
	return nil, s.lookupErr
}

func (s *stubFetcher) FetchImage(context.Context, string) ([]byte, error) {
	return nil, fmt.Errorf("unexpected image request")
}

func TestFetchNeverPropagatesErrors(t *testing.T) {
	e := NewEnricher(&stubFetcher{lookupErr: fmt.Errorf("boom")}, nil)

	got := e.Fetch(context.Background(), "tt1", "key")
	assert.Equal(t, constants.PlotPlaceholder.FetchFailed, got.Plot)
	assert.Equal(t, "boom", got.MetadataReason)
	assert.Equal(t, domain.PosterSkipped, got.PosterState)
}
