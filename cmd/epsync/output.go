package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/vmunix/epsync/internal/reconcile"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func count(n int) string {
	return humanize.Comma(int64(n))
}

func percent(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}

// printReport renders a run report for humans.
func printReport(w io.Writer, rep *reconcile.Report, topUnmatched int) {
	fmt.Fprintf(w, "Run %s (%s) finished in %s\n\n", rep.RunID, rep.Mode(), rep.Elapsed.Round(time.Millisecond))

	if rep.FilterMissed {
		fmt.Fprintf(w, "No series matched %q.\n", rep.SeriesFilter)
		if len(rep.Suggestions) > 0 {
			fmt.Fprintln(w, "Did you mean:")
			for _, s := range rep.Suggestions {
				fmt.Fprintf(w, "  - %s\n", s)
			}
		}
		return
	}

	fmt.Fprintln(w, "Archive")
	fmt.Fprintln(w, renderTable(
		[]string{"Files", "Count"},
		fileRows(rep),
		[]columnAlignment{alignLeft, alignRight},
	))

	fmt.Fprintln(w, "\nMatching")
	fmt.Fprintln(w, renderTable(
		[]string{"Step", "Count", "Share"},
		[][]string{
			{"catalog series", count(rep.CatalogSeries), ""},
			{"catalog episodes", count(rep.CatalogEpisodes), ""},
			{"series matched", count(rep.SeriesMatched), percent(rep.SeriesMatched, rep.SeriesMatched+rep.SeriesUnmatched)},
			{"series unmatched", count(rep.SeriesUnmatched), percent(rep.SeriesUnmatched, rep.SeriesMatched+rep.SeriesUnmatched)},
			{"episodes matched", count(rep.EpisodesMatched), percent(rep.EpisodesMatched, rep.EpisodeGroups)},
			{"episodes unmatched", count(rep.EpisodesUnmatched), percent(rep.EpisodesUnmatched, rep.EpisodeGroups)},
			{"episodes with 720p", count(rep.With720p), ""},
			{"episodes with 1080p", count(rep.With1080p), ""},
			{"episodes with both", count(rep.WithBoth), ""},
		},
		[]columnAlignment{alignLeft, alignRight, alignRight},
	))

	if len(rep.Stages) > 0 {
		fmt.Fprintln(w, "\nResolved by")
		fmt.Fprintln(w, renderTable([]string{"Stage", "Episodes"}, stageRows(rep.Stages), []columnAlignment{alignLeft, alignRight}))
	}

	verb := "inserted"
	if !rep.Live {
		verb = "would insert"
	}
	fmt.Fprintln(w, "\nLinks")
	rows := [][]string{
		{"built", count(rep.LinksBuilt)},
		{verb, count(rep.LinksInserted)},
		{"episodes flagged", count(rep.Marked)},
	}
	if rep.Clear {
		cleared := "cleared"
		if !rep.Live {
			cleared = "would clear"
		}
		rows = append([][]string{{cleared, count(rep.Cleared)}}, rows...)
	}
	if rep.FailedBatches > 0 {
		rows = append(rows, []string{"failed batches", count(rep.FailedBatches)})
	}
	fmt.Fprintln(w, renderTable([]string{"Links", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))

	if len(rep.Samples) > 0 {
		fmt.Fprintln(w, "\nSample links")
		sample := make([][]string, 0, len(rep.Samples))
		for _, l := range rep.Samples {
			sample = append(sample, []string{strconv.FormatInt(l.ContentID, 10), l.Quality, l.Variant, l.FileSize, l.URL})
		}
		fmt.Fprintln(w, renderTable([]string{"Episode", "Quality", "Variant", "Size", "URL"}, sample,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft}))
	}

	if unmatched := rep.TopUnmatched(topUnmatched); len(unmatched) > 0 {
		fmt.Fprintf(w, "\nTop unmatched series (%s of %s)\n", count(len(unmatched)), count(len(rep.Unmatched)))
		u := make([][]string, 0, len(unmatched))
		for _, s := range unmatched {
			u = append(u, []string{s.Name, count(s.Episodes)})
		}
		fmt.Fprintln(w, renderTable([]string{"Series", "Episodes"}, u, []columnAlignment{alignLeft, alignRight}))
	}

	if !rep.Live {
		fmt.Fprintln(w, "\nDry run: nothing was written. Re-run with --live to apply.")
	}
}

func fileRows(rep *reconcile.Report) [][]string {
	rows := [][]string{
		{"total", count(rep.Files.Total)},
		{"non-english", count(rep.Files.NonEnglish)},
		{"unparseable", count(rep.Files.Unparseable)},
		{"candidates", count(rep.Files.Candidates)},
	}
	res := make([]string, 0, len(rep.Files.ByResolution))
	for r := range rep.Files.ByResolution {
		res = append(res, r)
	}
	sort.Strings(res)
	for _, r := range res {
		rows = append(rows, []string{"  " + r, count(rep.Files.ByResolution[r])})
	}
	rows = append(rows,
		[]string{"episode groups", count(rep.EpisodeGroups)},
		[]string{"series", count(rep.UniqueSeries)},
	)
	return rows
}

func stageRows(stages map[string]int) [][]string {
	names := make([]string, 0, len(stages))
	for s := range stages {
		names = append(names, s)
	}
	sort.Slice(names, func(i, j int) bool {
		if stages[names[i]] != stages[names[j]] {
			return stages[names[i]] > stages[names[j]]
		}
		return names[i] < names[j]
	})
	rows := make([][]string, 0, len(names))
	for _, s := range names {
		rows = append(rows, []string{strings.ReplaceAll(s, "_", " "), count(stages[s])})
	}
	return rows
}

func formatBytes(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(n))
}
