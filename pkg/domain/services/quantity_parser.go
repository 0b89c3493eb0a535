package services

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/vsinha/grocer/pkg/domain/entities"
)

// ParsedQuantity is the structured result of parsing authored quantity text
type ParsedQuantity struct {
	Quantity entities.Quantity
	Unit     string
	FreeText bool
}

type quantityMatcher struct {
	pattern *regexp.Regexp
	build   func(match []string) (entities.Quantity, error)
}

// Order matters: a mixed fraction also contains a whole number and a simple
// fraction, so the more specific forms are tried first.
var quantityMatchers = []quantityMatcher{
	{
		pattern: regexp.MustCompile(`^(\d+\.\d*|\.\d+)$`),
		build: func(m []string) (entities.Quantity, error) {
			// "1." is written as a whole number with a stray point
			d, err := decimal.NewFromString(strings.TrimSuffix(m[0], "."))
			if err != nil {
				return entities.Quantity{}, fmt.Errorf("%w: %q", entities.ErrUnparseableQuantity, m[0])
			}
			return entities.QuantityFromRat(d.Rat())
		},
	},
	{
		pattern: regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)$`),
		build: func(m []string) (entities.Quantity, error) {
			frac, err := fractionFromStrings(m[2], m[3])
			if err != nil {
				return entities.Quantity{}, err
			}
			whole, err := fractionFromStrings(m[1], "1")
			if err != nil {
				return entities.Quantity{}, err
			}
			return whole.Add(frac), nil
		},
	},
	{
		pattern: regexp.MustCompile(`^(\d+)\s*/\s*(\d+)$`),
		build: func(m []string) (entities.Quantity, error) {
			return fractionFromStrings(m[1], m[2])
		},
	},
	{
		pattern: regexp.MustCompile(`^\d+$`),
		build: func(m []string) (entities.Quantity, error) {
			return fractionFromStrings(m[0], "1")
		},
	},
}

var vulgarFractions = map[rune]string{
	'½': "1/2",
	'⅓': "1/3",
	'⅔': "2/3",
	'¼': "1/4",
	'¾': "3/4",
	'⅕': "1/5",
	'⅖': "2/5",
	'⅗': "3/5",
	'⅘': "4/5",
	'⅙': "1/6",
	'⅚': "5/6",
	'⅛': "1/8",
	'⅜': "3/8",
	'⅝': "5/8",
	'⅞': "7/8",
}

func fractionFromStrings(numText, denText string) (entities.Quantity, error) {
	num, ok := new(big.Int).SetString(numText, 10)
	if !ok {
		return entities.Quantity{}, fmt.Errorf("%w: %q", entities.ErrUnparseableQuantity, numText)
	}
	den, ok := new(big.Int).SetString(denText, 10)
	if !ok {
		return entities.Quantity{}, fmt.Errorf("%w: %q", entities.ErrUnparseableQuantity, denText)
	}
	if den.Sign() == 0 {
		return entities.Quantity{}, fmt.Errorf("%w: %s/%s", entities.ErrDivisionByZero, numText, denText)
	}
	return entities.QuantityFromRat(new(big.Rat).SetFrac(num, den))
}

// expandVulgarFractions rewrites "1½" as "1 1/2" and the fraction slash as "/"
func expandVulgarFractions(s string) string {
	var b strings.Builder
	var prev rune
	for _, r := range s {
		if expansion, ok := vulgarFractions[r]; ok {
			if unicode.IsDigit(prev) {
				b.WriteByte(' ')
			}
			b.WriteString(expansion)
			prev = r
			continue
		}
		if r == '⁄' {
			r = '/'
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// QuantityParser turns authored quantity and unit text into exact quantities
type QuantityParser struct {
	units *UnitTable
}

// NewQuantityParser creates a parser backed by the given unit table
func NewQuantityParser(units *UnitTable) *QuantityParser {
	return &QuantityParser{units: units}
}

// Parse parses quantity text ("3.2", "1 1/2", "1/2", "2", "") and unit text.
//
// Blank text yields a free-text result with no quantity or unit. Text that
// matches no numeric form returns ErrUnparseableQuantity and a zero-denominator
// fraction returns ErrDivisionByZero; in both cases the returned unit is still
// usable so the caller can keep the entry unmerged.
func (p *QuantityParser) Parse(text, unit string) (ParsedQuantity, error) {
	cleaned := strings.TrimSpace(expandVulgarFractions(text))
	if cleaned == "" {
		return ParsedQuantity{FreeText: true}, nil
	}

	unitText := p.normalizeUnitText(unit)
	for _, m := range quantityMatchers {
		match := m.pattern.FindStringSubmatch(cleaned)
		if match == nil {
			continue
		}
		q, err := m.build(match)
		if err != nil {
			return ParsedQuantity{Unit: unitText}, err
		}
		return ParsedQuantity{Quantity: q, Unit: unitText}, nil
	}

	return ParsedQuantity{Unit: unitText}, fmt.Errorf("%w: %q", entities.ErrUnparseableQuantity, text)
}

// ParseDecimal accepts a numeric value, e.g. from a REAL database column
func (p *QuantityParser) ParseDecimal(d decimal.Decimal, unit string) (ParsedQuantity, error) {
	if d.IsNegative() {
		return ParsedQuantity{Unit: p.normalizeUnitText(unit)}, fmt.Errorf("%w: %s", entities.ErrUnparseableQuantity, d)
	}
	q, err := entities.QuantityFromRat(d.Rat())
	if err != nil {
		return ParsedQuantity{}, err
	}
	return ParsedQuantity{Quantity: q, Unit: p.normalizeUnitText(unit)}, nil
}

// ParseEntry parses a raw ingredient into an aggregation entry. Parse
// failures are recorded on the entry rather than returned.
func (p *QuantityParser) ParseEntry(recipeID entities.RecipeID, raw entities.RawIngredient) entities.IngredientEntry {
	entry := entities.IngredientEntry{
		RecipeID:    recipeID,
		Name:        strings.TrimSpace(raw.Name),
		RawQuantity: strings.TrimSpace(raw.Quantity),
		RawUnit:     strings.TrimSpace(raw.Unit),
	}

	parsed, err := p.Parse(raw.Quantity, raw.Unit)
	if err != nil {
		entry.Unit = parsed.Unit
		entry.Err = err
		return entry
	}
	entry.Quantity = parsed.Quantity
	entry.Unit = parsed.Unit
	entry.FreeText = parsed.FreeText
	return entry
}

// Preserved count units and unsupported units pass through unchanged; other
// supported units are reduced to their canonical name.
func (p *QuantityParser) normalizeUnitText(unit string) string {
	trimmed := strings.TrimSpace(unit)
	if trimmed == "" {
		return ""
	}
	info, ok := p.units.Lookup(trimmed)
	if !ok || info.Preserved {
		return trimmed
	}
	return info.Name
}
