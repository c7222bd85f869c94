package catalog

import (
	"strings"

	"github.com/vmunix/epsync/pkg/release"
)

// Stage records which rule resolved a series.
type Stage int

const (
	StageNone Stage = iota
	StageExternalID
	StageTitle
	StageContains
	StageSearch
)

func (s Stage) String() string {
	switch s {
	case StageExternalID:
		return "external_id"
	case StageTitle:
		return "title"
	case StageContains:
		return "contains"
	case StageSearch:
		return "search"
	default:
		return "none"
	}
}

// Match is a resolved series and how it was found.
type Match struct {
	Series Series
	Stage  Stage
	// Similarity is set for StageContains.
	Similarity float64
}

type episodeKey struct {
	seriesID int64
	season   int
	episode  int
}

// Resolver answers series and episode lookups over one Snapshot.
// It is built once per run and never modified afterwards.
type Resolver struct {
	series     []Series
	byExternal map[int64]int
	byTitle    map[string]int
	titleKeys  []string // insertion order of byTitle
	episodes   map[episodeKey]Episode
	orphans    int
}

// NewResolver indexes the snapshot. When two series share an external id or
// a title key, the one listed first keeps it. Episodes whose season is not in
// the snapshot cannot be addressed by season number and are counted as orphans.
func NewResolver(snap *Snapshot) *Resolver {
	r := &Resolver{
		series:     snap.Series,
		byExternal: make(map[int64]int),
		byTitle:    make(map[string]int),
		episodes:   make(map[episodeKey]Episode, len(snap.Episodes)),
	}

	for i, s := range snap.Series {
		if s.ExternalID != nil && *s.ExternalID != 0 {
			if _, ok := r.byExternal[*s.ExternalID]; !ok {
				r.byExternal[*s.ExternalID] = i
			}
		}
		key := release.NormalizeSeriesKey(s.Title)
		if key == "" {
			continue
		}
		if _, ok := r.byTitle[key]; !ok {
			r.byTitle[key] = i
			r.titleKeys = append(r.titleKeys, key)
		}
	}

	seasonNumber := make(map[int64]int, len(snap.Seasons))
	for _, s := range snap.Seasons {
		seasonNumber[s.ID] = s.Number
	}

	for _, e := range snap.Episodes {
		num, ok := seasonNumber[e.SeasonID]
		if !ok {
			r.orphans++
			continue
		}
		k := episodeKey{seriesID: e.SeriesID, season: num, episode: e.Number}
		if _, dup := r.episodes[k]; !dup {
			r.episodes[k] = e
		}
	}

	return r
}

// Orphans returns how many episodes referenced a missing season.
func (r *Resolver) Orphans() int { return r.orphans }

// SeriesCount returns the number of series in the snapshot.
func (r *Resolver) SeriesCount() int { return len(r.series) }

// EpisodeCount returns the number of addressable episodes.
func (r *Resolver) EpisodeCount() int { return len(r.episodes) }

// Resolve finds the series for a parsed series key. Stages run in order and
// the first hit wins: external id (when non-zero), exact title key, then
// containment of one key in the other.
func (r *Resolver) Resolve(key string, externalID int64) (Match, bool) {
	if s, ok := r.ResolveExternal(externalID); ok {
		return Match{Series: s, Stage: StageExternalID}, true
	}
	if i, ok := r.byTitle[key]; ok {
		return Match{Series: r.series[i], Stage: StageTitle}, true
	}
	return r.resolveContains(key)
}

// ResolveExternal looks a series up by external id.
func (r *Resolver) ResolveExternal(externalID int64) (Series, bool) {
	if externalID == 0 {
		return Series{}, false
	}
	i, ok := r.byExternal[externalID]
	if !ok {
		return Series{}, false
	}
	return r.series[i], true
}

// resolveContains picks among title keys that contain, or are contained in,
// key. Highest similarity wins, then the longer title key, then catalog order.
func (r *Resolver) resolveContains(key string) (Match, bool) {
	if key == "" {
		return Match{}, false
	}

	best := -1
	var bestScore float64
	for i, tk := range r.titleKeys {
		if !strings.Contains(tk, key) && !strings.Contains(key, tk) {
			continue
		}
		score := release.Similarity(key, tk)
		if best == -1 ||
			score > bestScore ||
			(score == bestScore && len(tk) > len(r.titleKeys[best])) {
			best, bestScore = i, score
		}
	}
	if best == -1 {
		return Match{}, false
	}

	return Match{
		Series:     r.series[r.byTitle[r.titleKeys[best]]],
		Stage:      StageContains,
		Similarity: bestScore,
	}, true
}

// Episode looks up an episode by series id and season/episode numbers.
func (r *Resolver) Episode(seriesID int64, season, episode int) (Episode, bool) {
	e, ok := r.episodes[episodeKey{seriesID: seriesID, season: season, episode: episode}]
	return e, ok
}
