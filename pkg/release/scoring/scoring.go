// Package scoring ranks candidate files within one episode quality bucket.
//
// A score is variant priority + codec bonus + release group bonus - size
// penalty. Priorities are integers and the penalty stays below 1, so the
// penalty only ever orders files that tie on every other term.
package scoring

import (
	"github.com/vmunix/epsync/pkg/release"
)

// Default variant priorities, most desirable first.
const (
	PriorityBluRay = 1000
	PriorityWEBRip = 800
	PriorityWEBDL  = 700
	PriorityHDTV   = 500
	PriorityHDRip  = 400
	PriorityOther  = 100
)

// Default codec bonuses.
const (
	BonusX265 = 200
	BonusX264 = 100
)

// Size penalty parameters. Smaller files win ties.
const (
	SizePenaltyScale = 5 * 1024 * 1024 * 1024 // 5 GiB
	MaxSizePenalty   = 0.99
)

// Weights holds the per-variant priorities and per-codec bonuses.
type Weights struct {
	VariantPriority map[release.Variant]int
	CodecBonus      map[release.Codec]int
}

// DefaultWeights returns the built-in priority tables.
func DefaultWeights() Weights {
	return Weights{
		VariantPriority: map[release.Variant]int{
			release.VariantBluRay: PriorityBluRay,
			release.VariantWEBRip: PriorityWEBRip,
			release.VariantWEBDL:  PriorityWEBDL,
			release.VariantHDTV:   PriorityHDTV,
			release.VariantHDRip:  PriorityHDRip,
			release.VariantOther:  PriorityOther,
		},
		CodecBonus: map[release.Codec]int{
			release.CodecX265: BonusX265,
			release.CodecX264: BonusX264,
		},
	}
}

// Breakdown is a score split into its terms.
type Breakdown struct {
	Variant     release.Variant
	Codec       release.Codec
	Priority    int
	CodecBonus  int
	GroupBonus  int
	SizePenalty float64
	Total       float64
}

// Scorer computes candidate scores from a classifier and weights.
type Scorer struct {
	classifier *release.Classifier
	weights    Weights
}

// NewScorer creates a Scorer.
func NewScorer(c *release.Classifier, w Weights) *Scorer {
	return &Scorer{classifier: c, weights: w}
}

// Score returns the ranking value of a file. Higher is better.
func (s *Scorer) Score(name string, size int64) float64 {
	return s.Breakdown(name, size).Total
}

// Breakdown returns every term of the score for name and size.
func (s *Scorer) Breakdown(name string, size int64) Breakdown {
	variant := s.classifier.DetectVariant(name)
	codec := s.classifier.DetectCodec(name)
	return s.compose(variant, codec, s.classifier.GroupBonus(name), size)
}

// ScoreAttributes scores already classified attributes without
// re-running the classifier.
func (s *Scorer) ScoreAttributes(a release.Attributes, size int64) float64 {
	return s.compose(a.Variant, a.Codec, a.GroupBonus, size).Total
}

func (s *Scorer) compose(variant release.Variant, codec release.Codec, group int, size int64) Breakdown {
	priority, ok := s.weights.VariantPriority[variant]
	if !ok {
		priority = s.weights.VariantPriority[release.VariantOther]
	}
	b := Breakdown{
		Variant:     variant,
		Codec:       codec,
		Priority:    priority,
		CodecBonus:  s.weights.CodecBonus[codec],
		GroupBonus:  group,
		SizePenalty: SizePenalty(size),
	}
	b.Total = float64(b.Priority+b.CodecBonus+b.GroupBonus) - b.SizePenalty
	return b
}

// SizePenalty maps a file size to [0, MaxSizePenalty]. Zero or negative
// sizes are unknown and not penalized.
func SizePenalty(size int64) float64 {
	if size <= 0 {
		return 0
	}
	return min(float64(size)/SizePenaltyScale, MaxSizePenalty)
}
