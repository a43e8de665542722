package normalize

import "testing"

func TestNormalizeBasic(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase and trim", "  Sodium Lauryl Sulfate  ", "sodium lauryl sulfate"},
		{"filler prefix", "and Glycerin", "glycerin"},
		{"stacked filler prefixes", "with and glycerin", "glycerin"},
		{"derived from prefix", "derived from coconut oil", "coconut oil"},
		{"filler exposed by parenthetical removal", "(organic) and glycerin", "glycerin"},
		{"filler exposed by percentage removal", "2% and glycerin", "glycerin"},
		{"percentage stripped", "salicylic acid 2%", "salicylic acid"},
		{"separators to space", "water/aqua/eau", "water aqua eau"},
		{"hyphen to space", "peg-100 stearate", "peg 100 stearate"},
		{"punctuation removed", "phenoxyethanol!", "phenoxyethanol"},
		{"whitespace collapsed", "titanium   dioxide", "titanium dioxide"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeParentheticals(t *testing.T) {
	// Marketing parentheticals are dropped.
	if got := Normalize("Aloe Barbadensis (organic)"); got != "aloe barbadensis" {
		t.Errorf("marketing span should be dropped, got %q", got)
	}

	// Colorant qualifiers are kept: CI codes disambiguate pigments.
	if got := Normalize("Titanium Dioxide (CI 77891)"); got != "titanium dioxide ci 77891" {
		t.Errorf("CI span should be preserved, got %q", got)
	}

	if got := Normalize("Iron Oxides (Red 40 Lake)"); got != "iron oxides red 40 lake" {
		t.Errorf("color-name span should be preserved, got %q", got)
	}
}

func TestNormalizeAccentFolding(t *testing.T) {
	if got := Normalize("Élastine"); got != "elastine" {
		t.Errorf("accents should fold to ASCII, got %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"  Sodium Lauryl Sulfate  ",
		"with and glycerin",
		"(organic) and glycerin",
		"2% and glycerin",
		"Titanium Dioxide (CI 77891)",
		"peg-100/stearate, 5%",
		"Élastine (organic) 2.5%",
		"",
		"and or with contains",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
