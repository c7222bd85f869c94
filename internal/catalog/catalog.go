// Package catalog models the canonical series catalog and resolves parsed
// episode identities against it.
package catalog

//go:generate mockgen -destination=mocks/catalog.go -package=mocks github.com/vmunix/epsync/internal/catalog Reader,Writer,Store

import "context"

// Series is a canonical series.
type Series struct {
	ID         int64  `json:"id"`
	ExternalID *int64 `json:"tmdb_id"`
	Title      string `json:"title"`
}

// Season is a canonical season of a series.
type Season struct {
	ID       int64 `json:"id"`
	SeriesID int64 `json:"series_id"`
	Number   int   `json:"season_number"`
}

// Episode is a canonical episode. SeriesID is denormalized from its season.
type Episode struct {
	ID       int64 `json:"id"`
	SeasonID int64 `json:"season_id"`
	SeriesID int64 `json:"series_id"`
	Number   int   `json:"episode_number"`
}

// Link is one download link row.
type Link struct {
	ContentType string `json:"content_type"`
	ContentID   int64  `json:"content_id"`
	Source      string `json:"source"`
	Quality     string `json:"quality"`
	FileSize    string `json:"file_size"`
	URL         string `json:"url"`
	FileRef     string `json:"telegram_file_id"`
	Variant     string `json:"variant"`
	Active      bool   `json:"is_active"`
	ClickCount  int    `json:"click_count"`
}

// LinkScope selects the generated links owned by one content type and source.
type LinkScope struct {
	ContentType string
	Source      string
}

// Page sizes used when reading the catalog.
const (
	SeriesPageSize  = 1000
	SeasonPageSize  = 5000
	EpisodePageSize = 10000
)

// Reader pages through the catalog tables. An empty page ends a table.
type Reader interface {
	ListSeries(ctx context.Context, limit, offset int) ([]Series, error)
	ListSeasons(ctx context.Context, limit, offset int) ([]Season, error)
	ListEpisodes(ctx context.Context, limit, offset int) ([]Episode, error)
}

// Writer persists links and episode flags.
type Writer interface {
	// InsertLinks inserts one batch and returns how many rows were stored.
	InsertLinks(ctx context.Context, links []Link) (int, error)
	// DeleteLinks removes every link in scope and returns how many were removed.
	DeleteLinks(ctx context.Context, scope LinkScope) (int, error)
	// CountLinks returns how many links are in scope.
	CountLinks(ctx context.Context, scope LinkScope) (int, error)
	// MarkHasDownloads sets has_downloads on the given episodes and returns
	// how many were updated.
	MarkHasDownloads(ctx context.Context, episodeIDs []int64) (int, error)
}

// Store is a full catalog backend.
type Store interface {
	Reader
	Writer
}
