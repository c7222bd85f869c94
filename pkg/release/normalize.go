package release

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// II-IX after a space. Leading numerals and bare I/X are words
	// ("VII Days", "I Robot", "Spy x Family").
	romanNumeralRegex = regexp.MustCompile(`(?i) (ii|iii|iv|v|vi|vii|viii|ix)\b`)
	// "(2005)" qualifiers on catalog titles
	yearQualifierRegex = regexp.MustCompile(`\(\s*(19|20)\d{2}\s*\)`)
)

var romanToArabic = map[string]string{
	"ii": "2", "iii": "3", "iv": "4", "v": "5",
	"vi": "6", "vii": "7", "viii": "8", "ix": "9",
}

var punctuationReplacer = strings.NewReplacer(
	"&", " and ",
	"-", " ",
	".", " ",
	"_", " ",
	"'", "",
	"’", "",
)

// NormalizeRomanNumerals converts Roman numerals (II-IX) to Arabic numbers.
func NormalizeRomanNumerals(s string) string {
	return romanNumeralRegex.ReplaceAllStringFunc(s, func(match string) string {
		if arabic, ok := romanToArabic[strings.ToLower(match[1:])]; ok {
			return " " + arabic
		}
		return match
	})
}

// CleanTitle folds a series title into a loose form for similarity ranking:
// lowercase, no accents, no articles, no punctuation, Arabic numerals and
// no "(year)" qualifier. Grouping never uses it; see NormalizeSeriesKey.
func CleanTitle(title string) string {
	s := yearQualifierRegex.ReplaceAllString(title, " ")
	s = NormalizeRomanNumerals(strings.ToLower(s))
	s = foldAccents(s)
	s = punctuationReplacer.Replace(s)

	parts := strings.Split(s, ":")
	for i, part := range parts {
		parts[i] = stripLeadingArticle(part)
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.Join(parts, " "))
	return strings.Join(strings.Fields(s), " ")
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func stripLeadingArticle(s string) string {
	s = strings.TrimSpace(s)
	for _, art := range []string{"the ", "a ", "an "} {
		if rest, ok := strings.CutPrefix(s, art); ok {
			return rest
		}
	}
	return s
}
