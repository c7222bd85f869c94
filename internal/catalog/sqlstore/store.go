// Package sqlstore implements catalog.Store over database/sql, for catalogs
// reached directly in PostgreSQL or kept locally in SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/vmunix/epsync/internal/catalog"
	"github.com/vmunix/epsync/internal/migrations"
)

// Dialect selects placeholder style and driver.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

func (d Dialect) String() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// driverName returns the database/sql driver registered for the dialect.
func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// ParseDialect maps a config driver name to a dialect.
func ParseDialect(name string) (Dialect, error) {
	switch name {
	case "sqlite":
		return DialectSQLite, nil
	case "postgres", "pgx":
		return DialectPostgres, nil
	default:
		return 0, fmt.Errorf("unknown sql dialect %q", name)
	}
}

// DefaultUpdateBatchSize bounds the ids in one UPDATE statement.
const DefaultUpdateBatchSize = 200

// querier abstracts *sql.DB and *sql.Tx for shared query logic.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Store provides catalog access over a SQL database.
type Store struct {
	db              *sql.DB
	dialect         Dialect
	updateBatchSize int
}

var _ catalog.Store = (*Store)(nil)

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, d Dialect, dsn string) (*Store, error) {
	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d, err)
	}
	if d == DialectSQLite {
		// writes from one connection only; modernc serializes anyway
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d, err)
	}
	return New(db, d), nil
}

// New wraps an open database.
func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, dialect: d, updateBatchSize: DefaultUpdateBatchSize}
}

// SetUpdateBatchSize bounds the ids per MarkHasDownloads statement.
func (s *Store) SetUpdateBatchSize(n int) {
	if n > 0 {
		s.updateBatchSize = n
	}
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Migrate creates the catalog schema. Only local SQLite catalogs are
// managed here; a PostgreSQL catalog belongs to its own deployment.
func (s *Store) Migrate(ctx context.Context) error {
	if s.dialect != DialectSQLite {
		return fmt.Errorf("migrate: schema for %s is managed externally", s.dialect)
	}
	if _, err := s.db.ExecContext(ctx, migrations.CatalogSQL); err != nil {
		return fmt.Errorf("apply catalog schema: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ListSeries returns one page of series ordered by id.
func (s *Store) ListSeries(ctx context.Context, limit, offset int) ([]catalog.Series, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, tmdb_id, title FROM series ORDER BY id LIMIT ? OFFSET ?`), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []catalog.Series
	for rows.Next() {
		var (
			sr     catalog.Series
			tmdbID sql.NullInt64
		)
		if err := rows.Scan(&sr.ID, &tmdbID, &sr.Title); err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		if tmdbID.Valid {
			id := tmdbID.Int64
			sr.ExternalID = &id
		}
		out = append(out, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series: %w", err)
	}
	return out, nil
}

// ListSeasons returns one page of seasons ordered by id.
func (s *Store) ListSeasons(ctx context.Context, limit, offset int) ([]catalog.Season, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, series_id, season_number FROM seasons ORDER BY id LIMIT ? OFFSET ?`), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []catalog.Season
	for rows.Next() {
		var sn catalog.Season
		if err := rows.Scan(&sn.ID, &sn.SeriesID, &sn.Number); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		out = append(out, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seasons: %w", err)
	}
	return out, nil
}

// ListEpisodes returns one page of episodes ordered by id.
func (s *Store) ListEpisodes(ctx context.Context, limit, offset int) ([]catalog.Episode, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, season_id, series_id, episode_number FROM episodes ORDER BY id LIMIT ? OFFSET ?`), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []catalog.Episode
	for rows.Next() {
		var e catalog.Episode
		if err := rows.Scan(&e.ID, &e.SeasonID, &e.SeriesID, &e.Number); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}
	return out, nil
}

func (s *Store) insertLinks(ctx context.Context, q querier, links []catalog.Link) error {
	query := s.rebind(`
		INSERT INTO download_links
			(content_type, content_id, source, quality, file_size, url, telegram_file_id, variant, is_active, click_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	for _, l := range links {
		if _, err := q.ExecContext(ctx, query,
			l.ContentType, l.ContentID, l.Source, l.Quality, l.FileSize,
			l.URL, l.FileRef, l.Variant, l.Active, l.ClickCount,
		); err != nil {
			return fmt.Errorf("insert link for content %d: %w", l.ContentID, err)
		}
	}
	return nil
}

// InsertLinks stores one batch in a single transaction. A failure rolls the
// whole batch back and reports zero rows.
func (s *Store) InsertLinks(ctx context.Context, links []catalog.Link) (n int, err error) {
	if len(links) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err := s.insertLinks(ctx, tx, links); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit links: %w", err)
	}
	return len(links), nil
}

// DeleteLinks removes every link in scope.
func (s *Store) DeleteLinks(ctx context.Context, scope catalog.LinkScope) (int, error) {
	result, err := s.db.ExecContext(ctx, s.rebind(
		`DELETE FROM download_links WHERE content_type = ? AND source = ?`),
		scope.ContentType, scope.Source)
	if err != nil {
		return 0, fmt.Errorf("delete links: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

// CountLinks returns how many links are in scope.
func (s *Store) CountLinks(ctx context.Context, scope catalog.LinkScope) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT COUNT(*) FROM download_links WHERE content_type = ? AND source = ?`),
		scope.ContentType, scope.Source).Scan(&n)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("count links: %w", err)
	}
	return n, nil
}

// MarkHasDownloads flags episodes in chunks. It stops at the first failed
// chunk and returns the ids updated so far with the error.
func (s *Store) MarkHasDownloads(ctx context.Context, episodeIDs []int64) (int, error) {
	updated := 0
	for start := 0; start < len(episodeIDs); start += s.updateBatchSize {
		end := min(start+s.updateBatchSize, len(episodeIDs))
		chunk := episodeIDs[start:end]

		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(chunk)), ",")
		args := make([]any, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}
		query := s.rebind(`UPDATE episodes SET has_downloads = ` + s.trueLiteral() +
			` WHERE id IN (` + placeholders + `)`)
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return updated, fmt.Errorf("mark episodes %d-%d: %w", start, end-1, err)
		}
		updated += len(chunk)
	}
	return updated, nil
}

func (s *Store) trueLiteral() string {
	if s.dialect == DialectPostgres {
		return "TRUE"
	}
	return "1"
}
