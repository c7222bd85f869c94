package release

import (
	"regexp"
	"strings"
)

// VariantRule maps keywords and patterns to a variant.
// Keywords are case-insensitive substrings; Patterns run against the raw name.
type VariantRule struct {
	Variant  Variant
	Keywords []string
	Patterns []*regexp.Regexp
}

// GroupBonus is a release group name and the bonus it earns.
type GroupBonus struct {
	Name  string
	Bonus int
}

// Tables holds the curated keyword tables used by a Classifier.
// Rule order in VariantRules is significant: the first matching rule wins.
type Tables struct {
	VariantRules []VariantRule
	X265         []string
	X264         []string
	Groups       []GroupBonus
	NonEnglish   []string
}

// DefaultNonEnglish is the built-in list of non-English language signals.
var DefaultNonEnglish = []string{
	"tamil", "hindi", "telugu", "kannada", "malayalam", "bengali",
	"korean", "japanese", "chinese", "mandarin", "cantonese",
	"arabic", "turkish", "thai", "vietnamese", "indonesian",
	"french", "spanish", "portuguese", "german", "italian",
	"russian", "polish", "dutch", "swedish", "danish", "norwegian",
	"finnish", "czech", "hungarian", "romanian", "greek",
	"persian", "farsi", "urdu", "punjabi", "marathi", "gujarati",
	"dual.audio", "multi.audio", "dubbed",
}

// DefaultGroups is the built-in release group bonus table.
var DefaultGroups = []GroupBonus{
	{"psa", 30}, {"bone", 20}, {"rmteam", 15}, {"yts", 10}, {"rarbg", 10},
}

// streaming service tags imply a WEB-DL even without the keyword
var streamingServicePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(amzn|amazn|amazon)\b`),
	regexp.MustCompile(`\bNF\b`),
	regexp.MustCompile(`(?i)\b(dsnp|dnsp|disney)\b`),
	regexp.MustCompile(`(?i)\b(hmax|hbo)\b`),
	regexp.MustCompile(`(?i)\b(atvp|apple)\b`),
	regexp.MustCompile(`(?i)\b(pcok|peacock)\b`),
	regexp.MustCompile(`(?i)\b(pmtp|paramount)\b`),
}

// DefaultTables returns the built-in classification tables.
func DefaultTables() Tables {
	return Tables{
		VariantRules: []VariantRule{
			{Variant: VariantBluRay, Keywords: []string{"bluray", "blu-ray", "bdrip", "brrip"}},
			{Variant: VariantWEBDL, Keywords: []string{"web-dl", "webdl", "web.dl", "web dl"}},
			{Variant: VariantWEBDL, Patterns: streamingServicePatterns},
			{Variant: VariantWEBRip, Keywords: []string{"webrip", "web-rip", "web.rip"}},
			{Variant: VariantHDTV, Keywords: []string{"hdtv"}},
			{Variant: VariantHDRip, Keywords: []string{"hdrip", "web-hd", "webhd", "web.hd", "dvdrip"}},
		},
		X265:       []string{"x265", "hevc", "h.265", "h265"},
		X264:       []string{"x264", "h.264", "h264", "avc"},
		Groups:     append([]GroupBonus(nil), DefaultGroups...),
		NonEnglish: append([]string(nil), DefaultNonEnglish...),
	}
}

var (
	qualityTagRegex   = regexp.MustCompile(`(\d{3,4}p)`)
	filenameTierRegex = regexp.MustCompile(`[.\-_ ](\d{3,4}p)[.\-_ ]`)
)

type languageMatcher struct {
	keyword string
	token   *regexp.Regexp
}

// Classifier extracts Attributes from filenames. It is safe for concurrent
// use and never mutates its tables after construction.
type Classifier struct {
	tables   Tables
	language []languageMatcher
}

// NewClassifier builds a Classifier from the given tables.
func NewClassifier(t Tables) *Classifier {
	c := &Classifier{tables: t}
	for _, kw := range t.NonEnglish {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		c.language = append(c.language, languageMatcher{
			keyword: kw,
			token:   regexp.MustCompile(`[.\-_\s\[\(]` + regexp.QuoteMeta(kw) + `[.\-_\s\]\),]`),
		})
	}
	return c
}

// Tables returns the tables the classifier was built from.
func (c *Classifier) Tables() Tables {
	return c.tables
}

// Classify derives every attribute of a file in one pass.
// quality and resolution are optional tags carried by the archive.
func (c *Classifier) Classify(name, quality, resolution string) Attributes {
	return Attributes{
		Resolution: DetectResolution(quality, resolution, name),
		Variant:    c.DetectVariant(name),
		Codec:      c.DetectCodec(name),
		GroupBonus: c.GroupBonus(name),
		NonEnglish: c.IsNonEnglish(name),
	}
}

// DetectVariant returns the variant of the first matching rule.
func (c *Classifier) DetectVariant(name string) Variant {
	lower := strings.ToLower(name)
	for _, rule := range c.tables.VariantRules {
		if containsAny(lower, rule.Keywords...) {
			return rule.Variant
		}
		for _, re := range rule.Patterns {
			if re.MatchString(name) {
				return rule.Variant
			}
		}
	}
	return VariantOther
}

// DetectCodec returns the codec family. x265 wins when both appear.
func (c *Classifier) DetectCodec(name string) Codec {
	lower := strings.ToLower(name)
	switch {
	case containsAny(lower, c.tables.X265...):
		return CodecX265
	case containsAny(lower, c.tables.X264...):
		return CodecX264
	default:
		return CodecNone
	}
}

// GroupBonus returns the highest bonus among groups that tag the name.
func (c *Classifier) GroupBonus(name string) int {
	lower := strings.ToLower(name)
	best := 0
	for _, g := range c.tables.Groups {
		if g.Bonus <= best {
			continue
		}
		grp := strings.ToLower(g.Name)
		if strings.HasSuffix(lower, grp) ||
			strings.Contains(lower, "-"+grp) ||
			strings.Contains(lower, "."+grp) ||
			strings.Contains(lower, "["+grp+"]") {
			best = g.Bonus
		}
	}
	return best
}

// IsNonEnglish reports whether any language keyword appears as a bare
// substring, a delimited token, or a filename prefix.
func (c *Classifier) IsNonEnglish(name string) bool {
	lower := strings.ToLower(name)
	for _, m := range c.language {
		if strings.Contains(lower, m.keyword) {
			return true
		}
		if m.token.MatchString(lower) {
			return true
		}
		if strings.HasPrefix(lower, m.keyword+".") || strings.HasPrefix(lower, m.keyword+" ") {
			return true
		}
	}
	return false
}

// DetectResolution picks the tier from the explicit resolution tag, then the
// quality tag, then the filename.
func DetectResolution(quality, resolution, name string) Resolution {
	if r := ParseResolution(strings.ToLower(strings.TrimSpace(resolution))); r != ResolutionUnknown {
		return r
	}
	if m := qualityTagRegex.FindStringSubmatch(strings.ToLower(quality)); m != nil {
		if r := ParseResolution(m[1]); r != ResolutionUnknown {
			return r
		}
	}
	if m := filenameTierRegex.FindStringSubmatch(strings.ToLower(name)); m != nil {
		return ParseResolution(m[1])
	}
	return ResolutionUnknown
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if sub != "" && strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
