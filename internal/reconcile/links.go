package reconcile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vmunix/epsync/internal/catalog"
	"github.com/vmunix/epsync/internal/selection"
)

// FormatSize renders a byte count the way the catalog stores it:
// "1.37 GB" from 1024 MiB up, "700 MB" below, empty for unknown sizes.
func FormatSize(size int64) string {
	if size <= 0 {
		return ""
	}
	mb := float64(size) / (1024 * 1024)
	if mb >= 1024 {
		return fmt.Sprintf("%.2f GB", mb/1024)
	}
	return fmt.Sprintf("%.0f MB", mb)
}

// StreamURL returns the streaming URL for an archive file.
func StreamURL(base string, fileID int64) string {
	return strings.TrimRight(base, "/") + "/stream/" + strconv.FormatInt(fileID, 10)
}

func (d *Driver) buildLink(episodeID int64, p selection.Pick) catalog.Link {
	f := p.Candidate.File
	return catalog.Link{
		ContentType: d.opts.ContentType,
		ContentID:   episodeID,
		Source:      d.opts.Source,
		Quality:     p.Resolution.String(),
		FileSize:    FormatSize(f.Size),
		URL:         StreamURL(d.opts.StreamBaseURL, f.ID),
		FileRef:     strconv.FormatInt(f.ID, 10),
		Variant:     p.Candidate.Attributes.Variant.String(),
		Active:      true,
		ClickCount:  0,
	}
}
