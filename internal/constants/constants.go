package constants

import "time"

// AnyFacet is the facet value meaning "no constraint".
const AnyFacet = "Any"

// NotAvailable is the value OMDb returns for fields it has no data for.
const NotAvailable = "N/A"

var PlotPlaceholder = struct {
	NoAPIKey      string
	FetchFailed   string
	NoDescription string
}{
	NoAPIKey:      "No API key provided",
	FetchFailed:   "Failed to fetch data",
	NoDescription: "No description.",
}

var PosterConfig = struct {
	Width         int
	Height        int
	MaxImageBytes int64
	BlurHashX     int
	BlurHashY     int
}{
	Width:         300,
	Height:        450,
	MaxImageBytes: 10 << 20,
	BlurHashX:     4,
	BlurHashY:     3,
}

var YearBounds = struct {
	Min int
	Max int
}{
	Min: 1900,
	Max: 2025,
}

var APIConfig = struct {
	OMDbBaseURL       string
	OMDbTimeout       time.Duration
	RequestsPerSecond int
}{
	OMDbBaseURL:       "https://www.omdbapi.com/",
	OMDbTimeout:       10 * time.Second,
	RequestsPerSecond: 5,
}

// CatalogColumns are the header names of an IMDb list export.
var CatalogColumns = struct {
	ID        string
	Title     string
	TitleType string
	Genres    string
	Year      string
	Directors string
	Rating    string
	URL       string
	Runtime   string
}{
	ID:        "Const",
	Title:     "Title",
	TitleType: "Title Type",
	Genres:    "Genres",
	Year:      "Year",
	Directors: "Directors",
	Rating:    "IMDb Rating",
	URL:       "URL",
	Runtime:   "Runtime (mins)",
}

var SettingsKeys = struct {
	CatalogPath string
	ServiceKey  string
}{
	CatalogPath: "csv_path",
	ServiceKey:  "api_key",
}

var StringLimits = struct {
	Plot      int
	Title     int
	FacetLine int
}{
	Plot:      600,
	Title:     120,
	FacetLine: 20,
}
