package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, ""},
		{-1, ""},
		{700 * 1024 * 1024, "700 MB"},
		{1023 * 1024 * 1024, "1023 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1470 * 1024 * 1024, "1.44 GB"},
		{52428800, "50 MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.size), "size %d", tt.size)
	}
}

func TestStreamURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/tgstream/stream/42", StreamURL("http://localhost:8080/tgstream", 42))
	assert.Equal(t, "http://host/stream/7", StreamURL("http://host/", 7))
}

func TestReport_TopUnmatched(t *testing.T) {
	r := &Report{Unmatched: []UnmatchedSeries{
		{Key: "b", Episodes: 2}, {Key: "a", Episodes: 2}, {Key: "c", Episodes: 9},
	}}
	sortUnmatched(r.Unmatched)
	assert.Equal(t, []UnmatchedSeries{{Key: "c", Episodes: 9}, {Key: "a", Episodes: 2}}, r.TopUnmatched(2))
	assert.Len(t, r.TopUnmatched(0), 3)
}
