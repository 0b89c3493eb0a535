package services

import (
	"fmt"
	"strings"

	"github.com/vsinha/grocer/pkg/domain/entities"
)

// Base unit names per category
const (
	BaseVolumeUnit = "tsp"
	BaseWeightUnit = "oz"
	BaseCountUnit  = "each"
)

type unitDef struct {
	aliases []string
	info    entities.UnitInfo
}

func volume(name, plural string, tsp int64, aliases ...string) unitDef {
	return unitDef{
		aliases: append([]string{name, plural}, aliases...),
		info:    entities.UnitInfo{Name: name, Plural: plural, Category: entities.Volume, Factor: entities.WholeQuantity(tsp)},
	}
}

func weight(name, plural string, oz int64, aliases ...string) unitDef {
	return unitDef{
		aliases: append([]string{name, plural}, aliases...),
		info:    entities.UnitInfo{Name: name, Plural: plural, Category: entities.Weight, Factor: entities.WholeQuantity(oz)},
	}
}

func count(name, plural string, each int64, preserved bool, aliases ...string) unitDef {
	return unitDef{
		aliases: append([]string{name, plural}, aliases...),
		info: entities.UnitInfo{
			Name:      name,
			Plural:    plural,
			Category:  entities.Count,
			Factor:    entities.WholeQuantity(each),
			Preserved: preserved,
		},
	}
}

// Abbreviations are their own plural. Metric units are deliberately absent.
var standardUnits = []unitDef{
	volume("tsp", "tsp", 1, "teaspoon", "teaspoons", "tsps"),
	volume("tbsp", "tbsp", 3, "tablespoon", "tablespoons", "tbsps", "tbs", "tbl"),
	volume("fl oz", "fl oz", 6, "fluid ounce", "fluid ounces", "fl. oz"),
	volume("cup", "cups", 48, "c"),
	volume("pint", "pints", 96, "pt", "pts"),
	volume("quart", "quarts", 192, "qt", "qts"),
	volume("gallon", "gallons", 768, "gal", "gals"),

	weight("oz", "oz", 1, "ounce", "ounces"),
	weight("lb", "lb", 16, "lbs", "pound", "pounds"),

	count(BaseCountUnit, BaseCountUnit, 1, false, "", "ea", "unit", "units", "whole", "large", "medium", "small"),
	count("half-dozen", "half-dozens", 6, false, "half dozen"),
	count("dozen", "dozen", 12, false, "dozens"),

	count("slice", "slices", 1, true),
	count("clove", "cloves", 1, true),
	count("can", "cans", 1, true),
	count("bunch", "bunches", 1, true),
	count("head", "heads", 1, true),
	count("stalk", "stalks", 1, true),
	count("sprig", "sprigs", 1, true),
	count("leaf", "leaves", 1, true),
	count("piece", "pieces", 1, true),
}

// Units whose meaning depends on the ingredient, keyed by normalized name
var ingredientUnits = map[string][]unitDef{
	"butter": {volume("stick", "sticks", 24)},
}

// UnitTable is a read-only registry of recognized units
type UnitTable struct {
	units           map[string]entities.UnitInfo
	ingredientUnits map[string]map[string]entities.UnitInfo
}

var defaultUnits = newUnitTable(standardUnits, ingredientUnits)

// DefaultUnitTable returns the process-wide unit table. It is built once at
// package initialization and never mutated.
func DefaultUnitTable() *UnitTable {
	return defaultUnits
}

func newUnitTable(defs []unitDef, perIngredient map[string][]unitDef) *UnitTable {
	t := &UnitTable{
		units:           make(map[string]entities.UnitInfo),
		ingredientUnits: make(map[string]map[string]entities.UnitInfo),
	}
	for _, def := range defs {
		for _, alias := range def.aliases {
			t.units[NormalizeUnit(alias)] = def.info
		}
	}
	for ingredient, ingredientDefs := range perIngredient {
		units := make(map[string]entities.UnitInfo)
		for _, def := range ingredientDefs {
			for _, alias := range def.aliases {
				units[NormalizeUnit(alias)] = def.info
			}
		}
		t.ingredientUnits[ingredient] = units
	}
	return t
}

// NormalizeUnit lowercases and trims unit text, dropping a trailing period
func NormalizeUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.TrimSuffix(u, ".")
	return strings.Join(strings.Fields(u), " ")
}

// Lookup returns the unit info for a unit name. Unsupported units return false.
func (t *UnitTable) Lookup(unit string) (entities.UnitInfo, bool) {
	info, ok := t.units[NormalizeUnit(unit)]
	return info, ok
}

// LookupFor checks ingredient-specific units (e.g. sticks of butter) before
// the standard table. ingredientKey must already be normalized.
func (t *UnitTable) LookupFor(unit, ingredientKey string) (entities.UnitInfo, bool) {
	if units, ok := t.ingredientUnits[ingredientKey]; ok {
		if info, ok := units[NormalizeUnit(unit)]; ok {
			return info, true
		}
	}
	return t.Lookup(unit)
}

// IsSupported reports whether a unit participates in conversion for the
// given ingredient
func (t *UnitTable) IsSupported(unit, ingredientKey string) bool {
	_, ok := t.LookupFor(unit, ingredientKey)
	return ok
}

// Convert converts q from one unit to another within a category
func (t *UnitTable) Convert(q entities.Quantity, from, to string) (entities.Quantity, error) {
	fromInfo, ok := t.Lookup(from)
	if !ok {
		return entities.Quantity{}, fmt.Errorf("%w: %q", entities.ErrUnsupportedUnit, from)
	}
	toInfo, ok := t.Lookup(to)
	if !ok {
		return entities.Quantity{}, fmt.Errorf("%w: %q", entities.ErrUnsupportedUnit, to)
	}
	return convertInfo(q, fromInfo, toInfo)
}

func convertInfo(q entities.Quantity, from, to entities.UnitInfo) (entities.Quantity, error) {
	if from.Category != to.Category {
		return entities.Quantity{}, fmt.Errorf("%w: %s (%s) to %s (%s)",
			entities.ErrIncompatibleUnits, from.Name, from.Category, to.Name, to.Category)
	}
	return q.Mul(from.Factor).Quo(to.Factor)
}

// ToBase converts q in unit into its category's base unit
func ToBase(q entities.Quantity, info entities.UnitInfo) entities.Quantity {
	return q.Mul(info.Factor)
}

// BaseUnit returns the base unit name for a category
func BaseUnit(category entities.Category) string {
	switch category {
	case entities.Volume:
		return BaseVolumeUnit
	case entities.Weight:
		return BaseWeightUnit
	case entities.Count:
		return BaseCountUnit
	default:
		return ""
	}
}
