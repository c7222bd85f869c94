// Package selection groups classified archive files by episode and picks the
// best file per quality tier.
package selection

import (
	"sort"

	"github.com/vmunix/epsync/internal/archive"
	"github.com/vmunix/epsync/pkg/release"
	"github.com/vmunix/epsync/pkg/release/scoring"
)

// Tiers are the resolutions that produce links, in output order.
var Tiers = []release.Resolution{release.Resolution720p, release.Resolution1080p}

// IsTier reports whether r is one of the selectable tiers.
func IsTier(r release.Resolution) bool {
	for _, t := range Tiers {
		if t == r {
			return true
		}
	}
	return false
}

// Candidate is an archive file that parsed to an episode identity.
type Candidate struct {
	File       archive.File
	Identity   release.Identity
	Attributes release.Attributes
	Score      float64
}

// PrepareStats counts what happened to each archive file during Prepare.
type PrepareStats struct {
	Total        int
	NonEnglish   int
	Unparseable  int
	Candidates   int
	ByResolution map[release.Resolution]int
}

// Group is every candidate for one episode identity, bucketed by resolution.
type Group struct {
	Key        release.EpisodeKey
	SeriesName string // display name from the first file seen
	tiers      map[release.Resolution][]Candidate
	order      []release.Resolution
	total      int
	externalID int64
}

func newGroup(id release.Identity) *Group {
	return &Group{
		Key:        id.Key(),
		SeriesName: id.SeriesName,
		tiers:      make(map[release.Resolution][]Candidate),
	}
}

func (g *Group) add(c Candidate) {
	r := c.Attributes.Resolution
	if _, ok := g.tiers[r]; !ok {
		g.order = append(g.order, r)
	}
	g.tiers[r] = append(g.tiers[r], c)
	g.total++
	if g.externalID == 0 && c.File.ExternalID != nil {
		g.externalID = *c.File.ExternalID
	}
}

// Candidates returns the candidates at resolution r in encounter order.
func (g *Group) Candidates(r release.Resolution) []Candidate {
	return g.tiers[r]
}

// Resolutions returns the resolutions present in encounter order.
func (g *Group) Resolutions() []release.Resolution {
	return g.order
}

// Len returns the number of candidates across all resolutions.
func (g *Group) Len() int { return g.total }

// ExternalID returns the first non-zero external id carried by a candidate,
// in encounter order. Zero means none.
func (g *Group) ExternalID() int64 { return g.externalID }

// SeriesCount is a distinct parsed series and how many episodes it has.
type SeriesCount struct {
	Key      string
	Name     string
	Episodes int
}

// Groups is an insertion-ordered collection of episode groups.
type Groups struct {
	keys   []release.EpisodeKey
	groups map[release.EpisodeKey]*Group
}

// NewGroups returns an empty collection.
func NewGroups() *Groups {
	return &Groups{groups: make(map[release.EpisodeKey]*Group)}
}

// Add files a candidate under its episode key.
func (gs *Groups) Add(c Candidate) {
	key := c.Identity.Key()
	g, ok := gs.groups[key]
	if !ok {
		g = newGroup(c.Identity)
		gs.groups[key] = g
		gs.keys = append(gs.keys, key)
	}
	g.add(c)
}

// Keys returns the episode keys in first-seen order.
func (gs *Groups) Keys() []release.EpisodeKey { return gs.keys }

// Get returns the group for key.
func (gs *Groups) Get(key release.EpisodeKey) (*Group, bool) {
	g, ok := gs.groups[key]
	return g, ok
}

// Len returns the number of episode groups.
func (gs *Groups) Len() int { return len(gs.keys) }

// Series returns each distinct series key in first-seen order with its
// episode count.
func (gs *Groups) Series() []SeriesCount {
	index := make(map[string]int)
	var out []SeriesCount
	for _, key := range gs.keys {
		i, ok := index[key.Series]
		if !ok {
			i = len(out)
			index[key.Series] = i
			out = append(out, SeriesCount{Key: key.Series, Name: gs.groups[key].SeriesName})
		}
		out[i].Episodes++
	}
	return out
}

// Filter returns a new collection holding only the groups of one series key.
func (gs *Groups) Filter(seriesKey string) *Groups {
	out := NewGroups()
	for _, key := range gs.keys {
		if key.Series == seriesKey {
			out.keys = append(out.keys, key)
			out.groups[key] = gs.groups[key]
		}
	}
	return out
}

// Prepare classifies, parses and scores files, dropping non-English and
// unparseable ones, and groups the rest by episode.
func Prepare(files []archive.File, c *release.Classifier, s *scoring.Scorer) (*Groups, PrepareStats) {
	stats := PrepareStats{ByResolution: make(map[release.Resolution]int)}
	groups := NewGroups()

	for _, f := range files {
		stats.Total++
		if c.IsNonEnglish(f.Name) {
			stats.NonEnglish++
			continue
		}
		id, ok := release.ParseEpisode(f.Name)
		if !ok {
			stats.Unparseable++
			continue
		}
		attrs := c.Classify(f.Name, f.Quality, f.Resolution)
		groups.Add(Candidate{
			File:       f,
			Identity:   id,
			Attributes: attrs,
			Score:      s.ScoreAttributes(attrs, f.Size),
		})
		stats.Candidates++
		stats.ByResolution[attrs.Resolution]++
	}
	return groups, stats
}

// Pick is the chosen candidate for one tier.
type Pick struct {
	Resolution release.Resolution
	Candidate  Candidate
}

// Selection holds at most one pick per tier, ordered 720p then 1080p.
type Selection []Pick

// Has reports whether the selection includes tier r.
func (s Selection) Has(r release.Resolution) bool {
	for _, p := range s {
		if p.Resolution == r {
			return true
		}
	}
	return false
}

// Select picks the highest scoring candidate in each tier. Ties go to the
// candidate seen first. Resolutions outside Tiers are ignored.
func Select(g *Group) Selection {
	var sel Selection
	for _, tier := range Tiers {
		cands := g.Candidates(tier)
		if len(cands) == 0 {
			continue
		}
		ranked := make([]Candidate, len(cands))
		copy(ranked, cands)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Score > ranked[j].Score
		})
		sel = append(sel, Pick{Resolution: tier, Candidate: ranked[0]})
	}
	return sel
}
