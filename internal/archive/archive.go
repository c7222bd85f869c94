// Package archive reads episode files from the Telegram bot's SQLite archive.
//
// The archive is owned by another process; it is only ever opened read-only.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrArchiveNotFound is returned by Open when the archive file does not exist.
var ErrArchiveNotFound = errors.New("archive not found")

// DefaultMinFileSize is the smallest file considered a real episode (50 MiB).
const DefaultMinFileSize = 50 * 1024 * 1024

// ExcludedExtensions lists side-car formats that are never episodes.
var ExcludedExtensions = []string{
	"srt", "sub", "ass", "ssa", "idx", "txt", "nfo", "vtt",
	"jpg", "jpeg", "png", "pdf", "zip", "rar", "7z",
}

// File is one archived file.
type File struct {
	ID         int64
	Name       string
	Size       int64
	Quality    string
	Source     string
	Resolution string
	ExternalID *int64 // linked TMDB id, when metadata exists
	MetaTitle  string
}

// Archive is a read-only handle to the archive database.
type Archive struct {
	db   *sql.DB
	path string
}

// Open opens the archive at path read-only.
func Open(path string) (*Archive, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrArchiveNotFound)
		}
		return nil, fmt.Errorf("stat archive: %w", err)
	}

	dsn := (&url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}).String()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	return &Archive{db: db, path: path}, nil
}

// Path returns the file the archive was opened from.
func (a *Archive) Path() string { return a.path }

// Close releases the database handle.
func (a *Archive) Close() error { return a.db.Close() }

// episodeFilesQuery selects series files with their optional metadata link.
// The extension filter is appended by buildQuery.
const episodeFilesQuery = `
	SELECT
		m.id,
		m.file_name,
		m.file_size,
		COALESCE(m.quality, ''),
		COALESCE(m.source, ''),
		COALESCE(m.resolution, ''),
		mm.tmdb_id,
		COALESCE(mm.title, '')
	FROM movies m
	LEFT JOIN movie_metadata mm ON m.id = mm.movie_id
	WHERE m.is_series = 1
	  AND m.file_size >= ?`

func buildQuery() string {
	var b strings.Builder
	b.WriteString(episodeFilesQuery)
	for _, ext := range ExcludedExtensions {
		fmt.Fprintf(&b, "\n\t  AND m.file_name NOT LIKE '%%.%s'", ext)
	}
	b.WriteString("\n\tORDER BY m.id")
	return b.String()
}

// EpisodeFiles returns every series file of at least minSize bytes,
// excluding side-car formats, ordered by id.
func (a *Archive) EpisodeFiles(ctx context.Context, minSize int64) ([]File, error) {
	if minSize <= 0 {
		minSize = DefaultMinFileSize
	}

	rows, err := a.db.QueryContext(ctx, buildQuery(), minSize)
	if err != nil {
		return nil, fmt.Errorf("query episode files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []File
	for rows.Next() {
		var (
			f      File
			tmdbID sql.NullInt64
		)
		if err := rows.Scan(&f.ID, &f.Name, &f.Size, &f.Quality, &f.Source, &f.Resolution, &tmdbID, &f.MetaTitle); err != nil {
			return nil, fmt.Errorf("scan episode file: %w", err)
		}
		if tmdbID.Valid && tmdbID.Int64 != 0 {
			id := tmdbID.Int64
			f.ExternalID = &id
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episode files: %w", err)
	}
	return files, nil
}
