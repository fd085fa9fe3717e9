package scoring

import (
	"testing"

	"github.com/abhisek/talentquiz/internal/talent"
)

func TestClassify_SelfRating(t *testing.T) {
	tests := []struct {
		total  int
		want   Band
		wantOK bool
	}{
		{3, "", false},
		{4, BandNotSkilled, true},
		{7, BandNotSkilled, true},
		{8, BandSlightlySkilled, true},
		{11, BandSlightlySkilled, true},
		{12, BandSomewhatSkilled, true},
		{15, BandSomewhatSkilled, true},
		{16, BandVerySkilled, true},
		{19, BandVerySkilled, true},
		{20, BandVerySkilled, true},
		{21, "", false},
		{-5, "", false},
	}

	for _, tt := range tests {
		got, ok := Classify(tt.total, SchemeSelfRating)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Classify(%d, self-rating) = (%q, %v), want (%q, %v)",
				tt.total, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestClassify_Statement(t *testing.T) {
	tests := []struct {
		total  int
		want   Band
		wantOK bool
	}{
		{4, BandNotSkilled, true},
		{15, BandSomewhatSkilled, true},
		{16, BandVerySkilled, true},
		{19, BandVerySkilled, true},
		{20, "", false},
	}

	for _, tt := range tests {
		got, ok := Classify(tt.total, SchemeStatement)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Classify(%d, statement) = (%q, %v), want (%q, %v)",
				tt.total, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestClassify_EmptyScheme(t *testing.T) {
	if _, ok := Classify(10, Scheme{}); ok {
		t.Error("empty scheme should never classify")
	}
}

func TestSchemeFor(t *testing.T) {
	if SchemeFor(talent.VariantSelfRating).Name != "self-rating" {
		t.Error("self-rating variant should use the self-rating scheme")
	}
	if SchemeFor(talent.VariantStatement).Name != "statement" {
		t.Error("statement variant should use the statement scheme")
	}
	if SchemeFor("unknown").Name != "self-rating" {
		t.Error("unknown variant should fall back to self-rating")
	}
}

func TestSchemes_RangesContiguous(t *testing.T) {
	for _, s := range []Scheme{SchemeSelfRating, SchemeStatement} {
		for i := 1; i < len(s.Ranges); i++ {
			prev, cur := s.Ranges[i-1], s.Ranges[i]
			if cur.Min != prev.Max+1 {
				t.Errorf("%s: range %d starts at %d, want %d", s.Name, i, cur.Min, prev.Max+1)
			}
			if cur.Band.Rank() <= prev.Band.Rank() {
				t.Errorf("%s: bands not ascending at %d", s.Name, i)
			}
		}
	}
}
