package release

import (
	"regexp"
	"slices"

	"github.com/hbollon/go-edlib"
)

// numberRegex extracts sequence numbers from titles (e.g., "2", "3")
var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// MatchConfidence represents the confidence level of a title match.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // Score < 0.70
	ConfidenceLow                           // Score >= 0.70
	ConfidenceMedium                        // Score >= 0.85
	ConfidenceHigh                          // Score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// ConfidenceFor maps a similarity score to its confidence level.
func ConfidenceFor(score float64) MatchConfidence {
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// MatchResult is one candidate title with its similarity to a query.
type MatchResult struct {
	Title      string
	Score      float64 // Jaro-Winkler similarity (0.0-1.0)
	Confidence MatchConfidence
}

// Similarity scores two titles with Jaro-Winkler over their cleaned forms.
// Matching sequence numbers earn a bonus and mismatches a penalty, so
// "show 2" prefers "show 2" over "show".
func Similarity(a, b string) float64 {
	ca, cb := CleanTitle(a), CleanTitle(b)
	score := float64(edlib.JaroWinklerSimilarity(ca, cb))
	return adjustScoreForNumbers(score, extractNumbers(ca), extractNumbers(cb))
}

// RankTitles scores every candidate against query and returns them best
// first. Equal scores keep candidate order.
func RankTitles(query string, candidates []string) []MatchResult {
	results := make([]MatchResult, 0, len(candidates))
	for _, c := range candidates {
		score := Similarity(query, c)
		results = append(results, MatchResult{Title: c, Score: score, Confidence: ConfidenceFor(score)})
	}
	slices.SortStableFunc(results, func(a, b MatchResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return results
}

// MatchTitle returns the best candidate for parsed, or a zero-title result
// with ConfidenceNone when nothing scores at least 0.70.
func MatchTitle(parsed string, candidates []string) MatchResult {
	ranked := RankTitles(parsed, candidates)
	if len(ranked) == 0 || ranked[0].Confidence == ConfidenceNone {
		return MatchResult{Confidence: ConfidenceNone}
	}
	return ranked[0]
}

func extractNumbers(title string) []string {
	return numberRegex.FindAllString(title, -1)
}

// adjustScoreForNumbers rewards shared sequence numbers and penalizes
// missing or different ones.
func adjustScoreForNumbers(score float64, parsedNums, candidateNums []string) float64 {
	if len(parsedNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	candidateSet := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		candidateSet[n] = true
	}
	for _, n := range parsedNums {
		if candidateSet[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
