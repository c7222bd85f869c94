// Package release classifies media filenames and extracts episode identities.
package release

// Resolution represents the vertical resolution tier of a file.
type Resolution int

const (
	ResolutionUnknown Resolution = iota
	Resolution720p
	Resolution1080p
	Resolution2160p
)

// unknownStr is the string representation for unknown values.
const unknownStr = "unknown"

func (r Resolution) String() string {
	switch r {
	case Resolution720p:
		return "720p"
	case Resolution1080p:
		return "1080p"
	case Resolution2160p:
		return "2160p"
	default:
		return unknownStr
	}
}

// ParseResolution maps "720p", "1080p" and "2160p" to their tier.
// Anything else is ResolutionUnknown.
func ParseResolution(s string) Resolution {
	switch s {
	case "720p":
		return Resolution720p
	case "1080p":
		return Resolution1080p
	case "2160p":
		return Resolution2160p
	default:
		return ResolutionUnknown
	}
}

// Variant represents the distribution source of a release.
// VariantOther is the zero value and means no source keyword was found.
type Variant int

const (
	VariantOther Variant = iota
	VariantBluRay
	VariantWEBRip
	VariantWEBDL
	VariantHDTV
	VariantHDRip
)

func (v Variant) String() string {
	switch v {
	case VariantBluRay:
		return "bluray"
	case VariantWEBRip:
		return "webrip"
	case VariantWEBDL:
		return "webdl"
	case VariantHDTV:
		return "hdtv"
	case VariantHDRip:
		return "hdrip"
	default:
		return "other"
	}
}

// ParseVariant maps a variant name back to its value.
// The boolean is false for names that are not a known variant.
func ParseVariant(s string) (Variant, bool) {
	for _, v := range AllVariants() {
		if v.String() == s {
			return v, true
		}
	}
	return VariantOther, false
}

// AllVariants lists every variant from most to least desirable by default.
func AllVariants() []Variant {
	return []Variant{VariantBluRay, VariantWEBRip, VariantWEBDL, VariantHDTV, VariantHDRip, VariantOther}
}

// Codec represents the video codec family of a release.
type Codec int

const (
	CodecNone Codec = iota
	CodecX264
	CodecX265
)

func (c Codec) String() string {
	switch c {
	case CodecX264:
		return "x264"
	case CodecX265:
		return "x265"
	default:
		return "none"
	}
}

// ParseCodec maps "x264" and "x265" back to their codec family.
func ParseCodec(s string) (Codec, bool) {
	switch s {
	case "x264":
		return CodecX264, true
	case "x265":
		return CodecX265, true
	case "none":
		return CodecNone, true
	default:
		return CodecNone, false
	}
}

// Attributes is everything the classifier derives from one filename.
type Attributes struct {
	Resolution Resolution
	Variant    Variant
	Codec      Codec
	GroupBonus int
	NonEnglish bool
}
