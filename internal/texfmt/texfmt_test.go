package texfmt

import (
	"errors"
	"testing"
)

func TestToUnicode(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"Q = 2", "Q = 2"},
		{`Q = \frac{\pi r^4 \Delta P}{8 \eta L}`, "Q = (π r⁴ Δ P)/(8 η L)"},
		{`Q = \frac{\approx 100.53}{72}`, "Q = (≈ 100.53)/72"},
		{`Q \approxeq 1.396 \frac{\text{m}^3}{\text{s}}`, "Q ≊ 1.396 m³/s"},
		{`r = 2 \text{ m}`, "r = 2 m"},
		{`\eta = \text{viscosity} \rightarrow \text{Pa} \cdot \text{s}`, "η = viscosity → Pa · s"},
		{`\frac{\text{m$^3$}}{\text{s}}`, "m³/s"},
		{`(P_2 - P_1)`, "(P₂ - P₁)"},
		{`\vec{B} \text{ } \otimes`, "B⃗ ⊗"},
		{`10^{-27}`, "10⁻²⁷"},
		{`x^{ab}`, "x^ab"},
	}

	for _, tt := range tests {
		if got := ToUnicode(tt.src); got != tt.want {
			t.Errorf("ToUnicode(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := []string{
		"Q = 2",
		`Q = \frac{\pi \cdot 2^4 \cdot 2}{8 \cdot 3 \cdot 3}`,
		`R = \frac{mv}{Bq}`,
	}
	for _, src := range valid {
		if err := Validate(src); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", src, err)
		}
	}

	invalid := []string{
		`\frac{a}{b`,
		`a}`,
		`x^`,
		`\frac{a}`,
		`trailing \`,
	}
	for _, src := range invalid {
		if err := Validate(src); !errors.Is(err, ErrMalformed) {
			t.Errorf("Validate(%q) = %v, want ErrMalformed", src, err)
		}
	}
}

func TestExponential(t *testing.T) {
	tests := []struct {
		x    float64
		want string
	}{
		{1.673e-27, `1.673\times 10^{-27}`},
		{3e6, `3.000\times 10^{6}`},
		{-1.602e-19, `-1.602\times 10^{-19}`},
		{1, `1.000\times 10^{0}`},
	}
	for _, tt := range tests {
		if got := Exponential(tt.x); got != tt.want {
			t.Errorf("Exponential(%g) = %q, want %q", tt.x, got, tt.want)
		}
	}
}

func TestRoundAndPlain(t *testing.T) {
	if got := Round(0.31369, 3); got != "0.314" {
		t.Errorf("Round = %q", got)
	}
	if got := Round(100.5309, 2); got != "100.53" {
		t.Errorf("Round = %q", got)
	}
	if got := Plain(2); got != "2" {
		t.Errorf("Plain = %q", got)
	}
	if got := Plain(0.1); got != "0.1" {
		t.Errorf("Plain = %q", got)
	}
}
