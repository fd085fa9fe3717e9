package talent

import (
	"strings"
	"testing"
)

func TestValidate_SeedBanksPass(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("seed bank validation failed: %v", err)
	}
}

func TestBank_Sizes(t *testing.T) {
	for _, v := range AllVariants() {
		qs := Bank(v)
		if len(qs) != 40 {
			t.Errorf("Bank(%s) has %d questions, want 40", v, len(qs))
		}
		if got := QuestionsPerCategory(v); got != 4 {
			t.Errorf("QuestionsPerCategory(%s) = %d, want 4", v, got)
		}
		if got := MaxScore(v); got != 20 {
			t.Errorf("MaxScore(%s) = %d, want 20", v, got)
		}
		if got := MinScore(v); got != 4 {
			t.Errorf("MinScore(%s) = %d, want 4", v, got)
		}
	}
}

func TestBank_ReturnsCopy(t *testing.T) {
	qs := Bank(VariantSelfRating)
	qs[0].Text = "changed"
	if Bank(VariantSelfRating)[0].Text == "changed" {
		t.Error("Bank should return a copy, but mutation leaked")
	}
}

func TestBank_UnknownVariant(t *testing.T) {
	if qs := Bank("nope"); qs != nil {
		t.Errorf("Bank(nope) = %v, want nil", qs)
	}
}

func TestBank_VariantsShareCategories(t *testing.T) {
	self := Bank(VariantSelfRating)
	stmt := Bank(VariantStatement)
	for i := range self {
		if self[i].Category != stmt[i].Category {
			t.Errorf("question %d: self-rating category %s, statement category %s",
				i, self[i].Category, stmt[i].Category)
		}
		if !strings.HasPrefix(self[i].Text, "我擅长") || !strings.HasSuffix(self[i].Text, "？") {
			t.Errorf("question %d: self-rating text %q not phrased as a question", i, self[i].Text)
		}
	}
}

func TestValidateBank_DetectsUnknownCategory(t *testing.T) {
	qs := Bank(VariantStatement)
	qs[0].Category = "Z"
	err := validateBank(VariantStatement, qs)
	if err == nil {
		t.Fatal("expected error for unknown category, got nil")
	}
	if !strings.Contains(err.Error(), `unknown category "Z"`) {
		t.Errorf("error should mention the unknown category, got: %v", err)
	}
}

func TestValidateBank_DetectsUnevenCategories(t *testing.T) {
	qs := Bank(VariantStatement)
	qs = append(qs, Question{Text: "extra", Category: CategoryA})
	err := validateBank(VariantStatement, qs)
	if err == nil {
		t.Fatal("expected error for uneven category counts, got nil")
	}
	if !strings.Contains(err.Error(), "category A has 5 questions") {
		t.Errorf("error should mention category A, got: %v", err)
	}
}

func TestValidateBank_NamesOnlyTheOddCategory(t *testing.T) {
	qs := append(Bank(VariantSelfRating), Question{Text: "我擅长额外的事情吗？", Category: CategoryA})
	err := validateBank(VariantSelfRating, qs)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "category A has 5 questions, want 4") {
		t.Errorf("error should name category A, got: %v", err)
	}
	if strings.Contains(err.Error(), "category B") {
		t.Errorf("well-formed categories should not be reported, got: %v", err)
	}
}

func TestValidateBank_RejectsUniformlyLargerBank(t *testing.T) {
	qs := Bank(VariantStatement)
	for _, c := range AllCategories() {
		qs = append(qs, Question{Text: "extra " + string(c), Category: c})
	}
	err := validateBank(VariantStatement, qs)
	if err == nil {
		t.Fatal("expected error for 5 questions per category, got nil")
	}
	if !strings.Contains(err.Error(), "category J has 5 questions, want 4") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestQuestionsPerCategory_UnknownVariant(t *testing.T) {
	if got := QuestionsPerCategory("bogus"); got != 0 {
		t.Errorf("QuestionsPerCategory(bogus) = %d, want 0", got)
	}
}

func TestValidateBank_DetectsMissingCategory(t *testing.T) {
	var qs []Question
	for _, q := range Bank(VariantStatement) {
		if q.Category != CategoryH {
			qs = append(qs, q)
		}
	}
	err := validateBank(VariantStatement, qs)
	if err == nil || !strings.Contains(err.Error(), "category H has no questions") {
		t.Errorf("expected missing category error, got: %v", err)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"A", CategoryA, false},
		{"j", CategoryJ, false},
		{" c ", CategoryC, false},
		{"K", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategory(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCategory_NameAndIndex(t *testing.T) {
	if CategoryA.Name() != "语言天赋" {
		t.Errorf("A.Name() = %q", CategoryA.Name())
	}
	if CategoryJ.Name() != "美学天赋" {
		t.Errorf("J.Name() = %q", CategoryJ.Name())
	}
	if Category("Q").Name() != "Q" {
		t.Errorf("unknown category name should echo the code")
	}
	for i, c := range AllCategories() {
		if c.Index() != i {
			t.Errorf("%s.Index() = %d, want %d", c, c.Index(), i)
		}
	}
	if Category("Q").Index() != -1 {
		t.Error("unknown category Index should be -1")
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"", DefaultVariant, false},
		{"self-rating", VariantSelfRating, false},
		{"STATEMENT", VariantStatement, false},
		{"form", "", true},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVariant(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVariant(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOptions(t *testing.T) {
	opts := Options()
	if len(opts) != MaxOption-MinOption+1 {
		t.Fatalf("len(Options()) = %d, want 5", len(opts))
	}
	for i, o := range opts {
		if o.Value != i+1 {
			t.Errorf("option %d value = %d, want %d", i, o.Value, i+1)
		}
	}
	if OptionLabel(3) != "部分符合" {
		t.Errorf("OptionLabel(3) = %q", OptionLabel(3))
	}
	if OptionLabel(6) != "" {
		t.Errorf("OptionLabel(6) = %q, want empty", OptionLabel(6))
	}
}
