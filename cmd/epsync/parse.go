package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vmunix/epsync/internal/config"
	"github.com/vmunix/epsync/pkg/release"
	"github.com/vmunix/epsync/pkg/release/scoring"
)

// ParseResult is the breakdown of one filename.
type ParseResult struct {
	Name        string  `json:"name"`
	Parsed      bool    `json:"parsed"`
	Series      string  `json:"series,omitempty"`
	SeriesKey   string  `json:"series_key,omitempty"`
	Season      int     `json:"season,omitempty"`
	Episode     int     `json:"episode,omitempty"`
	NonEnglish  bool    `json:"non_english"`
	Resolution  string  `json:"resolution"`
	Variant     string  `json:"variant"`
	Codec       string  `json:"codec"`
	Priority    int     `json:"priority"`
	CodecBonus  int     `json:"codec_bonus"`
	GroupBonus  int     `json:"group_bonus"`
	Size        int64   `json:"size,omitempty"`
	SizePenalty float64 `json:"size_penalty"`
	Score       float64 `json:"score"`
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <filename>...",
	Short: "Show how filenames parse, classify and score (local, no catalog)",
	Long: `Parse filenames the way sync does and show every scoring term.

Examples:
  epsync parse "Breaking.Bad.S01E01.720p.BluRay.x264-DEMAND.mkv"
  epsync parse --size 1.4GB "Show.S02E03.1080p.WEB-DL.x265.mkv"
  epsync parse --file names.txt --json`,
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringP("file", "f", "", "Read filenames from file (one per line)")
	parseCmd.Flags().String("size", "", "File size for the size penalty, e.g. 700MB")
	parseCmd.Flags().String("quality", "", "Archive quality tag, e.g. 720p")
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	inputFile, _ := cmd.Flags().GetString("file")
	sizeFlag, _ := cmd.Flags().GetString("size")
	quality, _ := cmd.Flags().GetString("quality")

	var names []string
	switch {
	case inputFile != "":
		n, err := readNameFile(inputFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		names = n
	case len(args) > 0:
		names = args
	default:
		return fmt.Errorf("usage: epsync parse <filename> or epsync parse --file <path>")
	}

	var size int64
	if sizeFlag != "" {
		n, err := humanize.ParseBytes(sizeFlag)
		if err != nil {
			return fmt.Errorf("invalid --size: %w", err)
		}
		size = int64(n)
	}

	matching := config.MatchingConfig{}
	if path, err := resolveConfigPath(); err == nil && path != "" {
		if cfg, err := config.LoadWithoutValidation(path); err == nil {
			matching = cfg.Matching
		}
	}
	classifier := release.NewClassifier(matching.Tables())
	scorer := scoring.NewScorer(classifier, matching.Weights())

	results := make([]ParseResult, 0, len(names))
	for _, name := range names {
		results = append(results, parseName(classifier, scorer, name, quality, size))
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, results)
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printParseResult(out, r)
	}
	return nil
}

func parseName(c *release.Classifier, s *scoring.Scorer, name, quality string, size int64) ParseResult {
	attrs := c.Classify(name, quality, "")
	b := s.Breakdown(name, size)
	r := ParseResult{
		Name:        name,
		NonEnglish:  attrs.NonEnglish,
		Resolution:  attrs.Resolution.String(),
		Variant:     b.Variant.String(),
		Codec:       b.Codec.String(),
		Priority:    b.Priority,
		CodecBonus:  b.CodecBonus,
		GroupBonus:  b.GroupBonus,
		Size:        size,
		SizePenalty: b.SizePenalty,
		Score:       b.Total,
	}
	if id, ok := release.ParseEpisode(name); ok {
		r.Parsed = true
		r.Series = id.SeriesName
		r.SeriesKey = id.SeriesKey
		r.Season = id.Season
		r.Episode = id.Episode
	}
	return r
}

func printParseResult(w io.Writer, r ParseResult) {
	fmt.Fprintf(w, "%s\n", r.Name)
	if r.Parsed {
		fmt.Fprintf(w, "  Episode:     %s S%02dE%02d (key %q)\n", r.Series, r.Season, r.Episode, r.SeriesKey)
	} else {
		fmt.Fprintln(w, "  Episode:     no season/episode marker, skipped by sync")
	}
	if r.NonEnglish {
		fmt.Fprintln(w, "  Language:    non-English, skipped by sync")
	}
	fmt.Fprintf(w, "  Resolution:  %s\n", r.Resolution)
	fmt.Fprintf(w, "  Variant:     %-8s %+d\n", r.Variant, r.Priority)
	fmt.Fprintf(w, "  Codec:       %-8s %+d\n", r.Codec, r.CodecBonus)
	if r.GroupBonus != 0 {
		fmt.Fprintf(w, "  Group:       %+d\n", r.GroupBonus)
	}
	if r.Size > 0 {
		fmt.Fprintf(w, "  Size:        %-8s -%.3f\n", humanize.IBytes(uint64(r.Size)), r.SizePenalty)
	}
	fmt.Fprintf(w, "  Score:       %.3f\n", r.Score)
}

// readNameFile reads filenames from a file, one per line. Blank lines and
// lines starting with # are skipped.
func readNameFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			names = append(names, line)
		}
	}
	return names, scanner.Err()
}
