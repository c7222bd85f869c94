// Package reconcile runs the archive-to-catalog sync: it reads archive files,
// picks the best file per episode and quality tier, resolves episodes against
// the catalog, and writes download links.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vmunix/epsync/internal/archive"
	"github.com/vmunix/epsync/internal/catalog"
	"github.com/vmunix/epsync/internal/metrics"
	"github.com/vmunix/epsync/internal/selection"
	"github.com/vmunix/epsync/internal/tmdb"
	"github.com/vmunix/epsync/pkg/release"
	"github.com/vmunix/epsync/pkg/release/scoring"
)

// Defaults for Options fields left zero.
const (
	DefaultBatchSize   = 500
	DefaultContentType = "episode"
	DefaultSource      = "telegram"
	DefaultSampleSize  = 6
	maxSuggestions     = 10
	progressEvery      = 5000
)

// Options controls one run. Options are fixed for the run's lifetime.
type Options struct {
	Live          bool   // write to the catalog; otherwise only count
	Clear         bool   // remove existing links in scope first
	Limit         int    // stop after this many distinct series; 0 means all
	SeriesFilter  string // restrict to one series
	BatchSize     int
	StreamBaseURL string
	ContentType   string
	Source        string
	MinFileSize   int64
	SampleSize    int
}

func (o *Options) applyDefaults() {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.ContentType == "" {
		o.ContentType = DefaultContentType
	}
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if o.MinFileSize <= 0 {
		o.MinFileSize = archive.DefaultMinFileSize
	}
	if o.SampleSize <= 0 {
		o.SampleSize = DefaultSampleSize
	}
}

// FileSource yields archive files.
type FileSource interface {
	EpisodeFiles(ctx context.Context, minSize int64) ([]archive.File, error)
}

// Searcher finds a TV show by title. *tmdb.Client implements it.
type Searcher interface {
	SearchTV(ctx context.Context, query string) (*tmdb.TVShow, error)
}

// Deps are the collaborators of a Driver. Searcher and Metrics are optional.
type Deps struct {
	Archive    FileSource
	Catalog    catalog.Store
	Classifier *release.Classifier
	Scorer     *scoring.Scorer
	Searcher   Searcher
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

// Driver runs syncs.
type Driver struct {
	opts Options
	deps Deps
	log  *slog.Logger
	now  func() time.Time
}

// New creates a driver.
func New(opts Options, deps Deps) *Driver {
	opts.applyDefaults()
	if deps.Classifier == nil {
		deps.Classifier = release.NewClassifier(release.DefaultTables())
	}
	if deps.Scorer == nil {
		deps.Scorer = scoring.NewScorer(deps.Classifier, scoring.DefaultWeights())
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Driver{
		opts: opts,
		deps: deps,
		log:  log.With("component", "reconcile"),
		now:  time.Now,
	}
}

// Options returns the effective options.
func (d *Driver) Options() Options { return d.opts }

func (d *Driver) scope() catalog.LinkScope {
	return catalog.LinkScope{ContentType: d.opts.ContentType, Source: d.opts.Source}
}

// Run executes one sync. Archive and catalog read failures, and a failed
// clear in live mode, abort the run. Insert and flag failures are logged and
// counted, and the run continues.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	rep := &Report{
		RunID:     uuid.NewString(),
		Live:      d.opts.Live,
		Clear:     d.opts.Clear,
		StartedAt: d.now(),
		Stages:    make(map[string]int),
	}
	log := d.log.With("run_id", rep.RunID, "mode", rep.Mode())
	defer func() {
		rep.Elapsed = d.now().Sub(rep.StartedAt)
		if d.deps.Metrics != nil {
			rep.Record(d.deps.Metrics)
		}
	}()

	// 1. archive
	files, err := d.deps.Archive.EpisodeFiles(ctx, d.opts.MinFileSize)
	if err != nil {
		return rep, fmt.Errorf("load archive files: %w", err)
	}
	log.Info("loaded archive files", "files", len(files))

	// 2. parse, classify, group
	groups, stats := selection.Prepare(files, d.deps.Classifier, d.deps.Scorer)
	rep.Files = fileStats(stats)
	allSeries := groups.Series()
	rep.UniqueSeries = len(allSeries)
	log.Info("grouped episodes",
		"candidates", stats.Candidates,
		"non_english", stats.NonEnglish,
		"unparseable", stats.Unparseable,
		"episodes", groups.Len(),
		"series", len(allSeries))

	if d.opts.SeriesFilter != "" {
		rep.SeriesFilter = d.opts.SeriesFilter
		key := release.NormalizeSeriesKey(d.opts.SeriesFilter)
		groups = groups.Filter(key)
		if groups.Len() == 0 {
			rep.FilterMissed = true
			rep.Suggestions = suggest(key, allSeries)
			log.Warn("series filter matched nothing", "filter", key, "suggestions", rep.Suggestions)
			return rep, nil
		}
		log.Info("filtered to series", "filter", key, "episodes", groups.Len())
	}
	rep.EpisodeGroups = groups.Len()

	// 3. catalog
	snap, err := catalog.Load(ctx, d.deps.Catalog)
	if err != nil {
		return rep, fmt.Errorf("load catalog: %w", err)
	}
	resolver := catalog.NewResolver(snap)
	rep.CatalogSeries = resolver.SeriesCount()
	rep.CatalogEpisodes = resolver.EpisodeCount()
	rep.CatalogOrphans = resolver.Orphans()
	log.Info("loaded catalog",
		"series", len(snap.Series),
		"seasons", len(snap.Seasons),
		"episodes", len(snap.Episodes),
		"orphans", resolver.Orphans())

	// 4. clear
	if d.opts.Clear {
		if err := d.clear(ctx, log, rep); err != nil {
			return rep, err
		}
	}

	// 5. resolve and select
	links, episodeIDs := d.match(ctx, log, groups, allSeries, resolver, rep)
	rep.LinksBuilt = len(links)
	rep.Samples = links[:min(len(links), d.opts.SampleSize)]
	log.Info("matched episodes",
		"matched", rep.EpisodesMatched,
		"unmatched", rep.EpisodesUnmatched,
		"no_candidates", rep.NoCandidates,
		"links", len(links))

	// 6. persist
	d.persist(ctx, log, links, rep)
	d.mark(ctx, log, episodeIDs, rep)

	log.Info("sync finished",
		"links_inserted", rep.LinksInserted,
		"failed_batches", rep.FailedBatches,
		"marked", rep.Marked)
	return rep, nil
}

func (d *Driver) clear(ctx context.Context, log *slog.Logger, rep *Report) error {
	if !d.opts.Live {
		n, err := d.deps.Catalog.CountLinks(ctx, d.scope())
		if err != nil {
			log.Warn("count existing links failed", "error", err)
			return nil
		}
		rep.Cleared = n
		log.Info("would delete existing links", "count", n)
		return nil
	}
	n, err := d.deps.Catalog.DeleteLinks(ctx, d.scope())
	if err != nil {
		return fmt.Errorf("clear links: %w", err)
	}
	rep.Cleared = n
	log.Info("cleared existing links", "count", n)
	return nil
}

func (d *Driver) match(ctx context.Context, log *slog.Logger, groups *selection.Groups, allSeries []selection.SeriesCount,
	resolver *catalog.Resolver, rep *Report) ([]catalog.Link, []int64) {
	var (
		links      []catalog.Link
		episodeIDs []int64
		flagged    = make(map[int64]bool)
		matched    = make(map[string]bool) // series key -> resolved
		order      []string
		// search lookups per series key; nil records a miss
		searched   = make(map[string]*catalog.Series)
	)

	for i, key := range groups.Keys() {
		if _, ok := matched[key.Series]; !ok {
			if d.opts.Limit > 0 && len(order) >= d.opts.Limit {
				break
			}
			matched[key.Series] = false
			order = append(order, key.Series)
		}

		g, _ := groups.Get(key)
		match, ok := d.resolveSeries(ctx, log, resolver, g, searched)
		if !ok {
			continue
		}
		matched[key.Series] = true
		rep.Stages[match.Stage.String()]++

		ep, ok := resolver.Episode(match.Series.ID, key.Season, key.Episode)
		if !ok {
			rep.EpisodesUnmatched++
			rep.UnmatchedEpisodes = append(rep.UnmatchedEpisodes, UnmatchedEpisode{
				SeriesKey: key.Series,
				SeriesID:  match.Series.ID,
				Season:    key.Season,
				Episode:   key.Episode,
			})
			continue
		}
		rep.EpisodesMatched++

		sel := selection.Select(g)
		if len(sel) == 0 {
			rep.NoCandidates++
			continue
		}
		rep.countTiers(sel)

		if !flagged[ep.ID] {
			flagged[ep.ID] = true
			episodeIDs = append(episodeIDs, ep.ID)
		}
		for _, p := range sel {
			links = append(links, d.buildLink(ep.ID, p))
		}

		if (i+1)%progressEvery == 0 {
			log.Info("progress", "episodes", i+1, "of", groups.Len(), "links", len(links))
		}
	}

	counts := make(map[string]selection.SeriesCount, len(allSeries))
	for _, s := range allSeries {
		counts[s.Key] = s
	}
	for _, k := range order {
		if matched[k] {
			rep.SeriesMatched++
			continue
		}
		rep.SeriesUnmatched++
		rep.Unmatched = append(rep.Unmatched, UnmatchedSeries{
			Key:      k,
			Name:     counts[k].Name,
			Episodes: counts[k].Episodes,
		})
	}
	sortUnmatched(rep.Unmatched)

	return links, episodeIDs
}

func (d *Driver) resolveSeries(ctx context.Context, log *slog.Logger, resolver *catalog.Resolver,
	g *selection.Group, searched map[string]*catalog.Series) (catalog.Match, bool) {
	if m, ok := resolver.Resolve(g.Key.Series, g.ExternalID()); ok {
		return m, true
	}
	if d.deps.Searcher == nil {
		return catalog.Match{}, false
	}

	series, cached := searched[g.Key.Series]
	if !cached {
		series = d.search(ctx, log, resolver, g.SeriesName)
		searched[g.Key.Series] = series
	}
	if series == nil {
		return catalog.Match{}, false
	}
	return catalog.Match{Series: *series, Stage: catalog.StageSearch}, true
}

func (d *Driver) search(ctx context.Context, log *slog.Logger, resolver *catalog.Resolver, name string) *catalog.Series {
	show, err := d.deps.Searcher.SearchTV(ctx, name)
	if err != nil {
		if !errors.Is(err, tmdb.ErrNotFound) {
			log.Warn("tv search failed", "series", name, "error", err)
		}
		return nil
	}
	s, ok := resolver.ResolveExternal(show.ID)
	if !ok {
		log.Debug("tv search hit is not in catalog", "series", name, "tmdb_id", show.ID, "title", show.Name)
		return nil
	}
	log.Debug("resolved series by tv search", "series", name, "tmdb_id", show.ID, "catalog_id", s.ID)
	return &s
}

func (d *Driver) persist(ctx context.Context, log *slog.Logger, links []catalog.Link, rep *Report) {
	if !d.opts.Live {
		rep.LinksInserted = len(links)
		return
	}
	for start := 0; start < len(links); start += d.opts.BatchSize {
		end := min(start+d.opts.BatchSize, len(links))
		n, err := d.deps.Catalog.InsertLinks(ctx, links[start:end])
		if err != nil {
			rep.FailedBatches++
			log.Error("insert batch failed", "offset", start, "rows", end-start, "error", err)
			continue
		}
		rep.LinksInserted += n
		if (start/d.opts.BatchSize+1)%10 == 0 {
			log.Info("inserting links", "inserted", rep.LinksInserted, "total", len(links))
		}
	}
}

func (d *Driver) mark(ctx context.Context, log *slog.Logger, episodeIDs []int64, rep *Report) {
	if len(episodeIDs) == 0 {
		return
	}
	if !d.opts.Live {
		rep.Marked = len(episodeIDs)
		return
	}
	n, err := d.deps.Catalog.MarkHasDownloads(ctx, episodeIDs)
	rep.Marked = n
	if err != nil {
		log.Error("mark has_downloads failed", "marked", n, "total", len(episodeIDs), "error", err)
	}
}

// suggest returns up to maxSuggestions series keys containing key, closest
// first.
func suggest(key string, series []selection.SeriesCount) []string {
	if key == "" {
		return nil
	}
	var candidates []string
	for _, s := range series {
		if strings.Contains(s.Key, key) {
			candidates = append(candidates, s.Key)
		}
	}
	ranked := release.RankTitles(key, candidates)
	out := make([]string, 0, min(len(ranked), maxSuggestions))
	for _, r := range ranked {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, r.Title)
	}
	return out
}
