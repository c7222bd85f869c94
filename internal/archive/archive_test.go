package archive

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE movies (
	id INTEGER PRIMARY KEY,
	file_name TEXT NOT NULL,
	file_size INTEGER NOT NULL,
	quality TEXT,
	source TEXT,
	resolution TEXT,
	is_series INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE movie_metadata (
	movie_id INTEGER PRIMARY KEY,
	tmdb_id INTEGER,
	title TEXT
);`

const mib = 1024 * 1024

// setupArchive writes a temp-file archive; Open needs a real path.
func setupArchive(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	insert := func(id int64, name string, size int64, quality, resolution any, series int) {
		_, err := db.Exec(`INSERT INTO movies (id, file_name, file_size, quality, source, resolution, is_series)
			VALUES (?, ?, ?, ?, 'telegram', ?, ?)`, id, name, size, quality, resolution, series)
		require.NoError(t, err)
	}
	insert(3, "Show.S01E02.1080p.WEB-DL.x264.mkv", 900*mib, "1080p", "1080p", 1)
	insert(1, "Show.S01E01.720p.HDTV.mkv", 400*mib, nil, nil, 1)
	insert(2, "Show.S01E01.eng.srt", 60*mib, nil, nil, 1)
	insert(4, "Show.S01E03.720p.mkv", 10*mib, nil, nil, 1)
	insert(5, "Movie.2020.1080p.mkv", 2000*mib, nil, nil, 0)
	insert(6, "Show.S01E04.sample.7z", 80*mib, nil, nil, 1)

	_, err = db.Exec(`INSERT INTO movie_metadata (movie_id, tmdb_id, title) VALUES (3, 1396, 'Show')`)
	require.NoError(t, err)
	return path
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArchiveNotFound))
}

func TestEpisodeFiles(t *testing.T) {
	a, err := Open(setupArchive(t))
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	files, err := a.EpisodeFiles(context.Background(), DefaultMinFileSize)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, int64(1), files[0].ID, "ordered by id")
	assert.Equal(t, "Show.S01E01.720p.HDTV.mkv", files[0].Name)
	assert.Empty(t, files[0].Quality)
	assert.Nil(t, files[0].ExternalID)

	assert.Equal(t, int64(3), files[1].ID)
	assert.Equal(t, int64(900*mib), files[1].Size)
	assert.Equal(t, "1080p", files[1].Resolution)
	assert.Equal(t, "telegram", files[1].Source)
	require.NotNil(t, files[1].ExternalID)
	assert.Equal(t, int64(1396), *files[1].ExternalID)
	assert.Equal(t, "Show", files[1].MetaTitle)
}

func TestEpisodeFiles_MinSize(t *testing.T) {
	a, err := Open(setupArchive(t))
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	files, err := a.EpisodeFiles(context.Background(), 5*mib)
	require.NoError(t, err)
	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "Show.S01E03.720p.mkv")
	assert.NotContains(t, names, "Show.S01E01.eng.srt")
	assert.NotContains(t, names, "Show.S01E04.sample.7z")
}

func TestEpisodeFiles_CanceledContext(t *testing.T) {
	a, err := Open(setupArchive(t))
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.EpisodeFiles(ctx, DefaultMinFileSize)
	assert.Error(t, err)
}

func TestArchive_ReadOnly(t *testing.T) {
	a, err := Open(setupArchive(t))
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	_, err = a.db.Exec(`DELETE FROM movies`)
	assert.Error(t, err)
}

func TestBuildQuery(t *testing.T) {
	q := buildQuery()
	for _, ext := range ExcludedExtensions {
		assert.Contains(t, q, "NOT LIKE '%."+ext+"'")
	}
	assert.Contains(t, q, "ORDER BY m.id")
}
