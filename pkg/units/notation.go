package units

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// scaleLexer tokenizes scale notations such as 1/8" = 1'-0", 1" = 20' or 1:100
var scaleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Inches", Pattern: `(?i)(''|"|\x{201D}|inches\b|inch\b|in\b)`},
	{Name: "Feet", Pattern: `(?i)('|\x{2019}|feet\b|foot\b|ft\b)`},
	{Name: "Number", Pattern: `\d+(\.\d+)?|\.\d+`},
	{Name: "Punct", Pattern: `[/:=\-]`},
})

type scaleExpr struct {
	Ratio    *ratioExpr    `  @@`
	Equation *equationExpr `| @@`
}

// ratioExpr is a metric ratio like 1:100
type ratioExpr struct {
	Paper float64 `@Number ":"`
	Real  float64 `@Number`
}

// equationExpr is a paper length equal to a real length, e.g. 1/4" = 1'-0"
type equationExpr struct {
	Paper *lengthExpr `@@ "="`
	Real  *lengthExpr `@@`
}

type lengthExpr struct {
	Parts []*lengthPart `@@ ( "-"? @@ )*`
}

type lengthPart struct {
	Value *mixedNumber `@@`
	Unit  string       `@(Feet | Inches)?`
}

// mixedNumber covers 3, 1/8, 1-1/2 and 1 1/2
type mixedNumber struct {
	Lead     float64   `@Number`
	Over     *float64  `( "/" @Number`
	Fraction *fraction `| "-"? @@ )?`
}

type fraction struct {
	Num float64 `@Number "/"`
	Den float64 `@Number`
}

var scaleParser = participle.MustBuild[scaleExpr](
	participle.Lexer(scaleLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)

func (m *mixedNumber) value() float64 {
	switch {
	case m.Over != nil:
		if *m.Over == 0 {
			return 0
		}
		return m.Lead / *m.Over
	case m.Fraction != nil:
		if m.Fraction.Den == 0 {
			return m.Lead
		}
		return m.Lead + m.Fraction.Num/m.Fraction.Den
	}
	return m.Lead
}

// inches sums a length expression in inches. Parts without a unit use
// defaultUnit (inches on the paper side, feet on the real side).
func (l *lengthExpr) inches(defaultUnit Unit) float64 {
	total := 0.0
	for _, part := range l.Parts {
		v := part.Value.value()
		unit := defaultUnit
		if part.Unit != "" {
			if u, err := ParseUnit(normalizeMark(part.Unit)); err == nil {
				unit = u
			}
		}
		if unit == Feet {
			v *= 12
		}
		total += v
	}
	return total
}

func normalizeMark(mark string) string {
	switch mark {
	case "''", "”":
		return `"`
	case "’":
		return "'"
	}
	return mark
}

// ParseScale parses a scale notation into a DrawingScale. Known preset names
// resolve to the preset, plain numbers are taken as custom feet per inch and
// any other equation (1" = 25') or ratio (1:75) becomes a custom scale.
func ParseScale(text string) (DrawingScale, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return DrawingScale{}, fmt.Errorf("%w: empty notation", ErrInvalidScale)
	}
	if p, ok := LookupPreset(trimmed); ok {
		return PresetScale(p.Name), nil
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if v <= 0 {
			return DrawingScale{}, fmt.Errorf("%w: %q must be positive", ErrInvalidScale, text)
		}
		return CustomScale(v), nil
	}

	expr, err := scaleParser.ParseString("", trimmed)
	if err != nil {
		return DrawingScale{}, fmt.Errorf("%w: %v", ErrInvalidScale, err)
	}

	var paperIn, realIn float64
	switch {
	case expr.Ratio != nil:
		paperIn, realIn = expr.Ratio.Paper, expr.Ratio.Real
	case expr.Equation != nil:
		paperIn = expr.Equation.Paper.inches(Inches)
		realIn = expr.Equation.Real.inches(Feet)
	}
	if paperIn <= 0 || realIn <= 0 {
		return DrawingScale{}, fmt.Errorf("%w: %q has a zero length", ErrInvalidScale, text)
	}

	fpi := realIn / 12 / paperIn
	for _, p := range Presets {
		if nearlyEqual(p.FeetPerInch, fpi) {
			return PresetScale(p.Name), nil
		}
	}
	return CustomScale(fpi), nil
}

func nearlyEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
