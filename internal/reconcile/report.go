package reconcile

import (
	"sort"
	"time"

	"github.com/vmunix/epsync/internal/catalog"
	"github.com/vmunix/epsync/internal/metrics"
	"github.com/vmunix/epsync/internal/selection"
	"github.com/vmunix/epsync/pkg/release"
)

// UnmatchedSeries is a parsed series the catalog could not resolve.
type UnmatchedSeries struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Episodes int    `json:"episodes"`
}

// UnmatchedEpisode is an episode whose series resolved but whose
// season/episode numbers are not in the catalog.
type UnmatchedEpisode struct {
	SeriesKey string `json:"series_key"`
	SeriesID  int64  `json:"series_id"`
	Season    int    `json:"season"`
	Episode   int    `json:"episode"`
}

// FileStats summarizes what happened to archive files.
type FileStats struct {
	Total        int            `json:"total"`
	NonEnglish   int            `json:"non_english"`
	Unparseable  int            `json:"unparseable"`
	Candidates   int            `json:"candidates"`
	ByResolution map[string]int `json:"by_resolution"`
}

func fileStats(s selection.PrepareStats) FileStats {
	by := make(map[string]int, len(s.ByResolution))
	for r, n := range s.ByResolution {
		by[r.String()] = n
	}
	return FileStats{
		Total:        s.Total,
		NonEnglish:   s.NonEnglish,
		Unparseable:  s.Unparseable,
		Candidates:   s.Candidates,
		ByResolution: by,
	}
}

// Report is the outcome of one run.
type Report struct {
	RunID     string        `json:"run_id"`
	Live      bool          `json:"live"`
	Clear     bool          `json:"clear"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed_ns"`

	Files         FileStats `json:"files"`
	EpisodeGroups int       `json:"episode_groups"`
	UniqueSeries  int       `json:"unique_series"`

	// SeriesFilter is set when the run was restricted to one series.
	SeriesFilter string `json:"series_filter,omitempty"`
	// FilterMissed is set when the filter matched no parsed series and the
	// run stopped before touching the catalog.
	FilterMissed bool `json:"filter_missed,omitempty"`
	// Suggestions lists close series keys when the filter matched nothing.
	Suggestions []string `json:"suggestions,omitempty"`

	CatalogSeries   int `json:"catalog_series"`
	CatalogEpisodes int `json:"catalog_episodes"`
	CatalogOrphans  int `json:"catalog_orphans"`

	SeriesMatched     int            `json:"series_matched"`
	SeriesUnmatched   int            `json:"series_unmatched"`
	EpisodesMatched   int            `json:"episodes_matched"`
	EpisodesUnmatched int            `json:"episodes_unmatched"`
	NoCandidates      int            `json:"no_candidates"`
	Stages            map[string]int `json:"stages"`
	With720p          int            `json:"with_720p"`
	With1080p         int            `json:"with_1080p"`
	WithBoth          int            `json:"with_both"`

	Cleared       int `json:"cleared"`
	LinksBuilt    int `json:"links_built"`
	LinksInserted int `json:"links_inserted"`
	FailedBatches int `json:"failed_batches"`
	Marked        int `json:"has_downloads_marked"`

	Samples           []catalog.Link     `json:"samples"`
	Unmatched         []UnmatchedSeries  `json:"unmatched_series"`
	UnmatchedEpisodes []UnmatchedEpisode `json:"unmatched_episodes"`
}

// Mode returns "live" or "dry-run".
func (r *Report) Mode() string {
	if r.Live {
		return "live"
	}
	return "dry-run"
}

// TopUnmatched returns at most n unmatched series, most episodes first.
func (r *Report) TopUnmatched(n int) []UnmatchedSeries {
	if n <= 0 || n > len(r.Unmatched) {
		n = len(r.Unmatched)
	}
	return r.Unmatched[:n]
}

func sortUnmatched(u []UnmatchedSeries) {
	sort.Slice(u, func(i, j int) bool {
		if u[i].Episodes != u[j].Episodes {
			return u[i].Episodes > u[j].Episodes
		}
		return u[i].Key < u[j].Key
	})
}

func (r *Report) countTiers(sel selection.Selection) {
	has720 := sel.Has(release.Resolution720p)
	has1080 := sel.Has(release.Resolution1080p)
	if has720 {
		r.With720p++
	}
	if has1080 {
		r.With1080p++
	}
	if has720 && has1080 {
		r.WithBoth++
	}
}

// Record copies the report into run metrics.
func (r *Report) Record(m *metrics.Metrics) {
	m.Files.WithLabelValues("total").Set(float64(r.Files.Total))
	m.Files.WithLabelValues("non_english").Set(float64(r.Files.NonEnglish))
	m.Files.WithLabelValues("unparseable").Set(float64(r.Files.Unparseable))
	m.Files.WithLabelValues("candidates").Set(float64(r.Files.Candidates))

	m.Episodes.WithLabelValues("matched").Set(float64(r.EpisodesMatched))
	m.Episodes.WithLabelValues("unmatched").Set(float64(r.EpisodesUnmatched))
	m.Episodes.WithLabelValues("no_candidates").Set(float64(r.NoCandidates))

	m.Series.WithLabelValues("matched").Set(float64(r.SeriesMatched))
	m.Series.WithLabelValues("unmatched").Set(float64(r.SeriesUnmatched))

	for _, stage := range []catalog.Stage{catalog.StageExternalID, catalog.StageTitle, catalog.StageContains, catalog.StageSearch} {
		m.Resolutions.WithLabelValues(stage.String()).Set(float64(r.Stages[stage.String()]))
	}

	m.Links.WithLabelValues("built").Set(float64(r.LinksBuilt))
	m.Links.WithLabelValues("inserted").Set(float64(r.LinksInserted))
	m.Links.WithLabelValues("cleared").Set(float64(r.Cleared))
	m.FailedBatches.Set(float64(r.FailedBatches))
	m.Duration.Set(r.Elapsed.Seconds())
	m.LastRun.Set(float64(r.StartedAt.Add(r.Elapsed).Unix()))
	if r.Live {
		m.Live.Set(1)
	} else {
		m.Live.Set(0)
	}
}
