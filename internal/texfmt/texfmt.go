// Package texfmt turns the small LaTeX subset used on slides into plain
// unicode for terminal and SVG output, and formats numbers as TeX.
package texfmt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrMalformed is returned for sources that no TeX engine would accept:
// unbalanced braces, a trailing backslash, or a command missing its
// arguments.
var ErrMalformed = errors.New("texfmt: malformed tex")

var symbols = map[string]string{
	"pi": "π", "Delta": "Δ", "delta": "δ", "eta": "η", "mu": "μ",
	"theta": "θ", "omega": "ω", "Omega": "Ω", "alpha": "α", "beta": "β",
	"gamma": "γ", "lambda": "λ", "rho": "ρ", "sigma": "σ", "tau": "τ",
	"phi": "φ", "epsilon": "ε",
	"cdot": "·", "times": "×", "approx": "≈", "approxeq": "≊",
	"rightarrow": "→", "to": "→", "leftarrow": "←", "equiv": "≡",
	"otimes": "⊗", "odot": "⊙", "infty": "∞", "pm": "±", "leq": "≤",
	"geq": "≥", "neq": "≠", "cdots": "⋯", "ldots": "…", "propto": "∝",
	"quad": "  ", "qquad": "    ",
}

// one-argument commands whose argument is rendered as-is
var passthrough = map[string]bool{
	"text": true, "textrm": true, "mathrm": true, "mathbf": true,
	"textbf": true, "mathit": true, "operatorname": true,
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴', '5': '⁵', '6': '⁶',
	'7': '⁷', '8': '⁸', '9': '⁹', '+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽',
	')': '⁾', 'n': 'ⁿ', 'i': 'ⁱ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄', '5': '₅', '6': '₆',
	'7': '₇', '8': '₈', '9': '₉', '+': '₊', '-': '₋', '=': '₌', '(': '₍',
	')': '₎', 'a': 'ₐ', 'e': 'ₑ', 'o': 'ₒ', 'x': 'ₓ', 'i': 'ᵢ', 'r': 'ᵣ',
}

// Validate reports whether src is well-formed enough to typeset.
func Validate(src string) error {
	depth := 0
	for i, r := range src {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("%w: unexpected '}' at offset %d", ErrMalformed, i)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: %d unclosed '{'", ErrMalformed, depth)
	}
	_, err := convert([]rune(src))
	return err
}

// ToUnicode renders src for display. Malformed input is rendered on a
// best-effort basis; call Validate first when failures matter.
func ToUnicode(src string) string {
	out, _ := convert([]rune(src))
	return out
}

func convert(rs []rune) (string, error) {
	var b strings.Builder
	var firstErr error
	note := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	for i := 0; i < len(rs); {
		r := rs[i]
		switch r {
		case '\\':
			name, next, err := readCommand(rs, i)
			if err != nil {
				note(err)
				i = len(rs)
				continue
			}
			i = next
			switch {
			case name == "frac":
				num, n1, err := readArg(rs, i)
				if err != nil {
					note(fmt.Errorf("%w: \\frac numerator: %v", ErrMalformed, err))
					i = len(rs)
					continue
				}
				den, n2, err := readArg(rs, n1)
				if err != nil {
					note(fmt.Errorf("%w: \\frac denominator: %v", ErrMalformed, err))
					i = len(rs)
					continue
				}
				i = n2
				a, errA := convert(num)
				d, errD := convert(den)
				if errA != nil {
					note(errA)
				}
				if errD != nil {
					note(errD)
				}
				b.WriteString(group(a) + "/" + group(d))
			case passthrough[name]:
				arg, n, err := readArg(rs, i)
				if err != nil {
					note(fmt.Errorf("%w: \\%s: %v", ErrMalformed, name, err))
					i = len(rs)
					continue
				}
				i = n
				s, err := convert(arg)
				if err != nil {
					note(err)
				}
				b.WriteString(s)
			case name == "vec":
				arg, n, err := readArg(rs, i)
				if err != nil {
					note(fmt.Errorf("%w: \\vec: %v", ErrMalformed, err))
					i = len(rs)
					continue
				}
				i = n
				s, err := convert(arg)
				if err != nil {
					note(err)
				}
				b.WriteString(s + "⃗")
			case len(name) == 1 && !unicode.IsLetter(rune(name[0])):
				// \, \; \  \\ \{ \} \% \$
				switch name {
				case ",", ";", ":", " ", "!":
					b.WriteByte(' ')
				case "\\":
					b.WriteByte('\n')
				default:
					b.WriteString(name)
				}
			default:
				if sym, ok := symbols[name]; ok {
					b.WriteString(sym)
				} else {
					b.WriteString(name)
				}
			}
		case '^', '_':
			arg, n, err := readArg(rs, i+1)
			if err != nil {
				note(fmt.Errorf("%w: dangling %c", ErrMalformed, r))
				i = len(rs)
				continue
			}
			i = n
			s, err := convert(arg)
			if err != nil {
				note(err)
			}
			table := superscripts
			if r == '_' {
				table = subscripts
			}
			b.WriteString(script(s, table, r))
		case '{':
			end := matching(rs, i)
			if end < 0 {
				note(fmt.Errorf("%w: unclosed '{'", ErrMalformed))
				end = len(rs)
			}
			inner, err := convert(rs[i+1 : end])
			if err != nil {
				note(err)
			}
			b.WriteString(inner)
			i = end + 1
		case '}':
			note(fmt.Errorf("%w: unexpected '}'", ErrMalformed))
			i++
		case '$':
			i++
		default:
			b.WriteRune(r)
			i++
		}
	}

	return collapseSpaces(b.String()), firstErr
}

// readCommand reads the control sequence starting at rs[i] == '\\'.
func readCommand(rs []rune, i int) (string, int, error) {
	j := i + 1
	if j >= len(rs) {
		return "", j, fmt.Errorf("%w: trailing backslash", ErrMalformed)
	}
	if !unicode.IsLetter(rs[j]) {
		return string(rs[j]), j + 1, nil
	}
	for j < len(rs) && unicode.IsLetter(rs[j]) {
		j++
	}
	return string(rs[i+1 : j]), j, nil
}

// readArg reads one macro argument: a braced group, a command, or a single
// rune. Leading spaces are skipped.
func readArg(rs []rune, i int) ([]rune, int, error) {
	for i < len(rs) && rs[i] == ' ' {
		i++
	}
	if i >= len(rs) {
		return nil, i, errors.New("missing argument")
	}
	switch rs[i] {
	case '{':
		end := matching(rs, i)
		if end < 0 {
			return nil, i, errors.New("unclosed argument")
		}
		return rs[i+1 : end], end + 1, nil
	case '}':
		return nil, i, errors.New("missing argument")
	case '\\':
		_, next, err := readCommand(rs, i)
		if err != nil {
			return nil, i, err
		}
		return rs[i:next], next, nil
	}
	return rs[i : i+1], i + 1, nil
}

func matching(rs []rune, open int) int {
	depth := 0
	for j := open; j < len(rs); j++ {
		switch rs[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

func group(s string) string {
	s = strings.TrimSpace(s)
	if len([]rune(s)) <= 1 {
		return s
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '.' {
			return "(" + s + ")"
		}
	}
	return s
}

func script(s string, table map[rune]rune, marker rune) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		m, ok := table[r]
		if !ok {
			return string(marker) + group(s)
		}
		b.WriteRune(m)
	}
	return b.String()
}

func collapseSpaces(s string) string {
	var b strings.Builder
	prevSpace := false
	for _, r := range s {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Exponential formats x as TeX scientific notation with three decimals,
// e.g. 1.673\times 10^{-27}.
func Exponential(x float64) string {
	s := strconv.FormatFloat(x, 'e', 3, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	e, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%s\\times 10^{%d}", mant, e)
}

// Round rounds x to places decimals and drops trailing zeros.
func Round(x float64, places int) string {
	p := math.Pow(10, float64(places))
	return strconv.FormatFloat(math.Round(x*p)/p, 'f', -1, 64)
}

// Plain formats x with the fewest digits that round-trip.
func Plain(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
