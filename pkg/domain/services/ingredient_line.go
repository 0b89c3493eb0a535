package services

import (
	"regexp"
	"strings"

	"github.com/vsinha/grocer/pkg/domain/entities"
)

var lineQuantityPattern = regexp.MustCompile(`^(\d+\s+\d+\s*/\s*\d+|\d+\s*/\s*\d+|\d+\.\d*|\.\d+|\d+)(?:\s+|$)`)

// Unit words that are recognized when splitting a line even though they do
// not take part in conversion.
var packageWords = map[string]bool{
	"package": true, "packages": true, "pkg": true, "pkgs": true,
	"jar": true, "jars": true, "bottle": true, "bottles": true,
	"box": true, "boxes": true, "bag": true, "bags": true,
	"container": true, "containers": true, "packet": true, "packets": true,
	"envelope": true, "envelopes": true, "handful": true, "handfuls": true,
	"pinch": true, "pinches": true, "dash": true, "dashes": true,
	"stick": true, "sticks": true,
	"g": true, "gram": true, "grams": true, "kg": true, "kilogram": true, "kilograms": true,
	"ml": true, "milliliter": true, "milliliters": true, "l": true, "liter": true, "liters": true,
}

// LineParser splits authored ingredient lines such as "1 1/2 cups flour"
type LineParser struct {
	units *UnitTable
}

// NewLineParser creates a line parser backed by the given unit table
func NewLineParser(units *UnitTable) *LineParser {
	return &LineParser{units: units}
}

// ParseLine splits a line into raw quantity text, unit text and name. The
// pieces are kept as authored; QuantityParser does the numeric work.
func (p *LineParser) ParseLine(line string) entities.RawIngredient {
	rest := strings.TrimSpace(expandVulgarFractions(line))
	var raw entities.RawIngredient

	if loc := lineQuantityPattern.FindStringSubmatchIndex(rest); loc != nil {
		raw.Quantity = strings.TrimSpace(rest[loc[2]:loc[3]])
		rest = strings.TrimSpace(rest[loc[1]:])
	}

	words := strings.Fields(rest)
	if len(words) >= 3 && p.isUnitWord(words[0]+" "+words[1]) {
		raw.Unit = words[0] + " " + words[1]
		words = words[2:]
	} else if len(words) >= 2 && p.isUnitWord(words[0]) {
		raw.Unit = words[0]
		words = words[1:]
	}

	raw.Name = strings.Join(words, " ")
	return raw
}

func (p *LineParser) isUnitWord(word string) bool {
	normalized := NormalizeUnit(word)
	if normalized == "" {
		return false
	}
	if _, ok := p.units.Lookup(normalized); ok {
		return true
	}
	return packageWords[normalized]
}
