package services

import (
	"math/big"

	"github.com/vsinha/grocer/pkg/domain/entities"
)

// Tier is one display unit in a roll-up sequence
type Tier struct {
	Unit   string
	Plural string
	// Size is the number of base units in one display unit
	Size entities.Quantity
	// Threshold is the base amount at which this tier takes over
	Threshold entities.Quantity
	// Exclusive tiers require the threshold to be exceeded, not just met
	Exclusive bool
	// Step is the purchase granularity in display units; zero means the
	// quantity is only rounded to a displayable fraction
	Step entities.Quantity
}

func (t Tier) applies(base entities.Quantity) bool {
	c := base.Cmp(t.Threshold)
	if t.Exclusive {
		return c > 0
	}
	return c >= 0
}

func (t Tier) label(amount entities.Quantity) string {
	if amount.Cmp(entities.WholeQuantity(1)) > 0 {
		return t.Plural
	}
	return t.Unit
}

// Purchase is the smallest amount of an ingredient a shopper can buy
type Purchase struct {
	// Amount in base units covered by one purchase unit
	Amount entities.Quantity
	Unit   string
}

// RollUpRule overrides the generic tiers for a specific ingredient
type RollUpRule struct {
	Category        entities.Category
	Tiers           []Tier
	MinimumPurchase *Purchase
}

// RollUpConfig holds the large-quantity thresholds for flour, sugar and milk
type RollUpConfig struct {
	// FlourBagThreshold in cups at which flour is shown in bags
	FlourBagThreshold entities.Quantity
	// FlourBagSize in cups held by one bag
	FlourBagSize   entities.Quantity
	FlourBagUnit   string
	FlourBagPlural string
	// SugarBagThreshold in cups at which sugar is shown in bags; below it
	// sugar stays in cups
	SugarBagThreshold entities.Quantity
	SugarBagSize      entities.Quantity
	SugarBagUnit      string
	SugarBagPlural    string
	// MilkGallonThreshold in cups at which milk is shown in gallons
	MilkGallonThreshold entities.Quantity
}

// DefaultRollUpConfig returns the stock thresholds: flour switches to 5 lb
// bags (about 18 cups of all-purpose flour) from 5 cups, sugar switches to
// 4 lb bags (9 cups) once a full bag is needed, milk switches to half-gallon
// steps from 4 cups.
func DefaultRollUpConfig() RollUpConfig {
	return RollUpConfig{
		FlourBagThreshold:   entities.WholeQuantity(5),
		FlourBagSize:        entities.WholeQuantity(18),
		FlourBagUnit:        "bag (5 lb)",
		FlourBagPlural:      "bags (5 lb)",
		SugarBagThreshold:   entities.WholeQuantity(9),
		SugarBagSize:        entities.WholeQuantity(9),
		SugarBagUnit:        "bag (4 lb)",
		SugarBagPlural:      "bags (4 lb)",
		MilkGallonThreshold: entities.WholeQuantity(4),
	}
}

var (
	tspPerCup    = entities.WholeQuantity(48)
	tspPerGallon = entities.WholeQuantity(768)
	oneEighth    = entities.MustQuantity(1, 8)
	oneHalf      = entities.MustQuantity(1, 2)
	one          = entities.WholeQuantity(1)
)

var (
	tspTier  = Tier{Unit: "tsp", Plural: "tsp", Size: one}
	tbspTier = Tier{Unit: "tbsp", Plural: "tbsp", Size: entities.WholeQuantity(3), Threshold: entities.WholeQuantity(3)}
	cupTier  = Tier{Unit: "cup", Plural: "cups", Size: tspPerCup, Threshold: entities.WholeQuantity(6)}
)

var genericTiers = map[entities.Category][]Tier{
	entities.Volume: {
		tspTier,
		tbspTier,
		cupTier,
		{Unit: "pint", Plural: "pints", Size: entities.WholeQuantity(96), Threshold: entities.WholeQuantity(96)},
		{Unit: "quart", Plural: "quarts", Size: entities.WholeQuantity(192), Threshold: entities.WholeQuantity(192)},
		{Unit: "gallon", Plural: "gallons", Size: tspPerGallon, Threshold: tspPerGallon},
	},
	entities.Weight: {
		{Unit: "oz", Plural: "oz", Size: one},
		{Unit: "lb", Plural: "lb", Size: entities.WholeQuantity(16), Threshold: entities.WholeQuantity(2)},
	},
}

// RollUp converts aggregated base-unit quantities into purchase-sized display
// units. It is immutable after construction.
type RollUp struct {
	units     *UnitTable
	overrides map[string]RollUpRule
}

// NewRollUp creates a formatter with the ingredient overrides derived from cfg
func NewRollUp(units *UnitTable, cfg RollUpConfig) *RollUp {
	return &RollUp{
		units:     units,
		overrides: buildOverrides(cfg),
	}
}

func buildOverrides(cfg RollUpConfig) map[string]RollUpRule {
	stick := entities.WholeQuantity(24)
	return map[string]RollUpRule{
		"butter": {
			Category:        entities.Volume,
			Tiers:           []Tier{{Unit: "stick", Plural: "sticks", Size: stick}},
			MinimumPurchase: &Purchase{Amount: stick, Unit: "pack"},
		},
		"egg": {
			Category: entities.Count,
			Tiers: []Tier{
				{Unit: "half-dozen", Plural: "half-dozens", Size: entities.WholeQuantity(6), Step: one},
				{Unit: "dozen", Plural: "dozen", Size: entities.WholeQuantity(12), Threshold: entities.WholeQuantity(6), Exclusive: true, Step: oneHalf},
			},
			MinimumPurchase: &Purchase{Amount: entities.WholeQuantity(6), Unit: "half-dozen"},
		},
		"flour": {
			Category: entities.Volume,
			Tiers:    cupsThenBags(cfg.FlourBagUnit, cfg.FlourBagPlural, cfg.FlourBagSize, cfg.FlourBagThreshold),
		},
		"sugar": {
			Category: entities.Volume,
			Tiers:    cupsThenBags(cfg.SugarBagUnit, cfg.SugarBagPlural, cfg.SugarBagSize, cfg.SugarBagThreshold),
		},
		"milk": {
			Category: entities.Volume,
			Tiers: []Tier{
				tspTier,
				tbspTier,
				cupTier,
				{
					Unit:      "gallon",
					Plural:    "gallons",
					Size:      tspPerGallon,
					Threshold: cfg.MilkGallonThreshold.Mul(tspPerCup),
					Step:      oneHalf,
				},
			},
		},
	}
}

// cupsThenBags keeps an ingredient in tsp, tbsp or cups and moves to whole
// bags of bagCups from thresholdCups
func cupsThenBags(unit, plural string, bagCups, thresholdCups entities.Quantity) []Tier {
	return []Tier{
		tspTier,
		tbspTier,
		cupTier,
		{
			Unit:      unit,
			Plural:    plural,
			Size:      bagCups.Mul(tspPerCup),
			Threshold: thresholdCups.Mul(tspPerCup),
			Step:      one,
		},
	}
}

// FormatForShopping renders an aggregated line in its best purchase unit
func (r *RollUp) FormatForShopping(line entities.AggregatedLine) entities.ShoppingLine {
	switch line.Kind {
	case entities.FreeText:
		return entities.ShoppingLine{
			Key:  line.Key,
			Name: line.Name,
			Unit: line.Unit,
			Kind: line.Kind,
		}
	case entities.Unparseable:
		return entities.ShoppingLine{
			Key:      line.Key,
			Name:     line.Name,
			Quantity: line.RawQuantity,
			Unit:     line.Unit,
			Warning:  true,
			Kind:     line.Kind,
		}
	}
	return r.formatAmount(line.Key, line.Name, line.Kind, line.Category, line.Quantity, line.Unit)
}

// formatAmount renders a measured amount. base is in baseUnit, which is the
// category base unit, a preserved count unit, or unsupported unit text.
func (r *RollUp) formatAmount(key, name string, kind entities.LineKind, category entities.Category, base entities.Quantity, baseUnit string) entities.ShoppingLine {
	out := entities.ShoppingLine{
		Key:      key,
		Name:     name,
		Kind:     kind,
		Measured: true,
		Base:     base,
		BaseUnit: baseUnit,
		Category: category,
	}

	if kind == entities.Unsupported {
		out.Amount = RoundForDisplay(base)
		out.Quantity = RenderQuantity(out.Amount)
		out.Unit = baseUnit
		out.UnitSize = one
		out.Warning = true
		return out
	}

	tier := selectTier(r.tiersFor(key, category, baseUnit), base)
	amount, _ := base.Quo(tier.Size)
	amount = RoundForDisplay(amount.RoundUp(tier.Step))

	out.Amount = amount
	out.Quantity = RenderQuantity(amount)
	out.Unit = tier.label(amount)
	out.UnitSize = tier.Size
	return out
}

func (r *RollUp) tiersFor(key string, category entities.Category, baseUnit string) []Tier {
	if rule, ok := r.overrides[key]; ok && rule.Category == category && baseUnit == BaseUnit(category) {
		return rule.Tiers
	}
	if tiers, ok := genericTiers[category]; ok {
		return tiers
	}

	// Count lines: whole items, labelled with the preserved unit if any
	unit, plural := "", ""
	if baseUnit != BaseCountUnit {
		unit, plural = baseUnit, baseUnit
		if info, ok := r.units.Lookup(baseUnit); ok {
			unit, plural = info.Name, info.Plural
		}
	}
	return []Tier{{Unit: unit, Plural: plural, Size: one, Step: one}}
}

// minimumPurchase returns the smallest purchasable amount for an ingredient
func (r *RollUp) minimumPurchase(key string, category entities.Category) *Purchase {
	if rule, ok := r.overrides[key]; ok && rule.Category == category {
		return rule.MinimumPurchase
	}
	return nil
}

// selectTier returns the largest tier whose threshold the base amount meets
func selectTier(tiers []Tier, base entities.Quantity) Tier {
	selected := tiers[0]
	for _, t := range tiers[1:] {
		if t.applies(base) {
			selected = t
		}
	}
	return selected
}

var displayDenominators = map[int64]bool{1: true, 2: true, 3: true, 4: true, 8: true}

// RoundForDisplay returns q unchanged when it can be written with a
// denominator of 1, 2, 3, 4 or 8, and otherwise rounds it up to the next
// eighth. The result is never smaller than q.
func RoundForDisplay(q entities.Quantity) entities.Quantity {
	den := q.Rat().Denom()
	if den.IsInt64() && displayDenominators[den.Int64()] {
		return q
	}
	return q.RoundUp(oneEighth)
}

// RenderQuantity renders q as "3", "3/4" or "1 1/2" after display rounding
func RenderQuantity(q entities.Quantity) string {
	r := RoundForDisplay(q).Rat()
	whole, rem := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	if rem.Sign() == 0 {
		return whole.String()
	}
	frac := rem.String() + "/" + r.Denom().String()
	if whole.Sign() == 0 {
		return frac
	}
	return whole.String() + " " + frac
}
