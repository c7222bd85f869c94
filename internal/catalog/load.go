package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Snapshot is the whole catalog as read at the start of a run.
type Snapshot struct {
	Series   []Series
	Seasons  []Season
	Episodes []Episode
}

// Load reads all three tables concurrently. Any read error fails the load;
// a partial snapshot is never returned.
func Load(ctx context.Context, r Reader) (*Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap.Series, err = readAll(ctx, "series", SeriesPageSize, r.ListSeries)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Seasons, err = readAll(ctx, "seasons", SeasonPageSize, r.ListSeasons)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Episodes, err = readAll(ctx, "episodes", EpisodePageSize, r.ListEpisodes)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func readAll[T any](ctx context.Context, table string, pageSize int, list func(context.Context, int, int) ([]T, error)) ([]T, error) {
	var all []T
	for offset := 0; ; offset += pageSize {
		page, err := list(ctx, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("load %s at offset %d: %w", table, offset, err)
		}
		if len(page) == 0 {
			return all, nil
		}
		all = append(all, page...)
	}
}
