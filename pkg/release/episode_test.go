package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEpisode(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		want   Identity
		wantOK bool
	}{
		{
			name:   "year stripped",
			file:   "Show.Name.2019.S02E05.1080p.BluRay.x264-GROUP.mkv",
			want:   Identity{SeriesName: "Show Name", SeriesKey: "show name", Season: 2, Episode: 5},
			wantOK: true,
		},
		{
			name:   "dashes and spaces",
			file:   "breaking bad - s01e01 - 720p web-dl h265.mkv",
			want:   Identity{SeriesName: "breaking bad", SeriesKey: "breaking bad", Season: 1, Episode: 1},
			wantOK: true,
		},
		{
			name:   "underscores",
			file:   "The_Office_S03E12_720p.mkv",
			want:   Identity{SeriesName: "The Office", SeriesKey: "the office", Season: 3, Episode: 12},
			wantOK: true,
		},
		{
			name:   "three digit episode",
			file:   "One.Piece.S01E123.720p.mkv",
			want:   Identity{SeriesName: "One Piece", SeriesKey: "one piece", Season: 1, Episode: 123},
			wantOK: true,
		},
		{
			name:   "punctuation dropped from key",
			file:   "Marvel's.Agents.of.S.H.I.E.L.D.S01E01.mkv",
			want:   Identity{SeriesName: "Marvel's Agents of S H I E L D", SeriesKey: "marvels agents of s h i e l d", Season: 1, Episode: 1},
			wantOK: true,
		},
		{
			name:   "marker at end of name",
			file:   "Show.S04E09",
			want:   Identity{SeriesName: "Show", SeriesKey: "show", Season: 4, Episode: 9},
			wantOK: true,
		},
		{name: "no marker", file: "Show.Name.1080p.mkv"},
		{name: "marker without leading separator", file: "ShowS01E01.mkv"},
		{name: "marker without trailing separator", file: "Show.S01E01E02.mkv"},
		{name: "empty series", file: ".S01E01.mkv"},
		{name: "year only series", file: "2019.S01E01.mkv"},
		{name: "season zero", file: "Show.S00E01.mkv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEpisode(tt.file)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseEpisode_SameKeyAcrossStyles(t *testing.T) {
	a, ok := ParseEpisode("Breaking.Bad.S01E01.720p.WEB-DL.x265.mkv")
	require.True(t, ok)
	b, ok := ParseEpisode("breaking bad - s01e01 - 720p web-dl h265.mkv")
	require.True(t, ok)

	assert.Equal(t, a.Key(), b.Key())
}

func TestParseEpisode_YearNeverInKey(t *testing.T) {
	for _, f := range []string{
		"Show.Name.2019.S02E05.mkv",
		"Show Name (2019) - S02E05 - 1080p.mkv",
		"show.name.S02E05.mkv",
	} {
		id, ok := ParseEpisode(f)
		require.True(t, ok, f)
		assert.Equal(t, "show name", id.SeriesKey, f)
	}
}

func TestNormalizeSeriesKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Breaking Bad", "breaking bad"},
		{"  Grey's   Anatomy ", "greys anatomy"},
		{"Law & Order: SVU", "law order svu"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSeriesKey(tt.input))
		})
	}
}

func TestEpisodeKey_String(t *testing.T) {
	k := EpisodeKey{Series: "show", Season: 1, Episode: 2}
	assert.Equal(t, "show S01E02", k.String())
}
