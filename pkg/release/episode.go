package release

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// episodeMarkerRegex matches " S01E02 " style markers bounded by separators.
	episodeMarkerRegex = regexp.MustCompile(`(?i)[. _\-]S(\d{1,2})E(\d{1,3})(?:[. _\-\[\(]|$)`)
	separatorRegex     = regexp.MustCompile(`[._\-]`)
	yearRegex          = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	nonKeyCharRegex    = regexp.MustCompile(`[^a-z0-9\s]`)
)

// EpisodeKey identifies a pool of candidate files for one canonical episode.
type EpisodeKey struct {
	Series  string
	Season  int
	Episode int
}

func (k EpisodeKey) String() string {
	return fmt.Sprintf("%s S%02dE%02d", k.Series, k.Season, k.Episode)
}

// Identity is the (series, season, episode) triple parsed from a filename.
type Identity struct {
	SeriesName string // display form, e.g. "Show Name"
	SeriesKey  string // comparison form, e.g. "show name"
	Season     int
	Episode    int
}

// Key returns the grouping key for the identity.
func (id Identity) Key() EpisodeKey {
	return EpisodeKey{Series: id.SeriesKey, Season: id.Season, Episode: id.Episode}
}

// ParseEpisode extracts the episode identity from a filename.
// Returns false when no S##E## marker is present or the series part is empty.
func ParseEpisode(name string) (Identity, bool) {
	loc := episodeMarkerRegex.FindStringSubmatchIndex(name)
	if loc == nil {
		return Identity{}, false
	}

	season, err := strconv.Atoi(name[loc[2]:loc[3]])
	if err != nil || season == 0 {
		return Identity{}, false
	}
	episode, err := strconv.Atoi(name[loc[4]:loc[5]])
	if err != nil || episode == 0 {
		return Identity{}, false
	}

	seriesName := SeriesName(name[:loc[0]])
	key := NormalizeSeriesKey(seriesName)
	if key == "" {
		return Identity{}, false
	}

	return Identity{
		SeriesName: seriesName,
		SeriesKey:  key,
		Season:     season,
		Episode:    episode,
	}, true
}

// SeriesName converts the raw text before an episode marker into a
// display name: separators become spaces and year tokens are dropped.
func SeriesName(raw string) string {
	s := separatorRegex.ReplaceAllString(raw, " ")
	s = yearRegex.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeSeriesKey lowercases a series name and strips everything except
// letters, digits and single spaces.
func NormalizeSeriesKey(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonKeyCharRegex.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
