package scoring

import "github.com/abhisek/talentquiz/internal/talent"

// Band is a qualitative label for a category total.
type Band string

const (
	BandNotSkilled      Band = "完全不擅长"
	BandSlightlySkilled Band = "不太擅长"
	BandSomewhatSkilled Band = "有些擅长"
	BandVerySkilled     Band = "非常擅长"
)

// AllBands returns the bands from lowest to highest.
func AllBands() []Band {
	return []Band{BandNotSkilled, BandSlightlySkilled, BandSomewhatSkilled, BandVerySkilled}
}

// Rank returns the position of b in AllBands, or -1 if b is unknown.
func (b Band) Rank() int {
	for i, k := range AllBands() {
		if k == b {
			return i
		}
	}
	return -1
}

// BandRange is an inclusive [Min, Max] total range mapped to a band.
type BandRange struct {
	Band Band
	Min  int
	Max  int
}

// Contains reports whether total lies in the range.
func (r BandRange) Contains(total int) bool {
	return total >= r.Min && total <= r.Max
}

// Scheme is an ordered set of non-overlapping band ranges.
type Scheme struct {
	Name   string
	Ranges []BandRange
}

// SchemeSelfRating classifies totals from the self-rating bank. Its top
// band reaches the maximum attainable total of 20.
var SchemeSelfRating = Scheme{
	Name: "self-rating",
	Ranges: []BandRange{
		{Band: BandNotSkilled, Min: 4, Max: 7},
		{Band: BandSlightlySkilled, Min: 8, Max: 11},
		{Band: BandSomewhatSkilled, Min: 12, Max: 15},
		{Band: BandVerySkilled, Min: 16, Max: 20},
	},
}

// SchemeStatement classifies totals from the statement bank. Its top band
// stops at 19, so a perfect 20 is left unclassified.
var SchemeStatement = Scheme{
	Name: "statement",
	Ranges: []BandRange{
		{Band: BandNotSkilled, Min: 4, Max: 7},
		{Band: BandSlightlySkilled, Min: 8, Max: 11},
		{Band: BandSomewhatSkilled, Min: 12, Max: 15},
		{Band: BandVerySkilled, Min: 16, Max: 19},
	},
}

// SchemeFor returns the band scheme used by a bank variant. Unknown
// variants fall back to the self-rating scheme.
func SchemeFor(v talent.Variant) Scheme {
	if v == talent.VariantStatement {
		return SchemeStatement
	}
	return SchemeSelfRating
}

// Classify returns the band whose range contains total. The second result
// is false when no range matches.
func Classify(total int, scheme Scheme) (Band, bool) {
	for _, r := range scheme.Ranges {
		if r.Contains(total) {
			return r.Band, true
		}
	}
	return "", false
}
