package services

import (
	"sort"
	"strings"

	"github.com/vsinha/grocer/pkg/domain/entities"
)

// Aggregator groups parsed ingredient entries by normalized name and sums
// compatible quantities in base units
type Aggregator struct {
	units *UnitTable
}

// NewAggregator creates an aggregator backed by the given unit table
func NewAggregator(units *UnitTable) *Aggregator {
	return &Aggregator{units: units}
}

type indexedEntry struct {
	index int
	entry entities.IngredientEntry
	info  entities.UnitInfo
}

type pendingLine struct {
	first   int
	line    entities.AggregatedLine
	members map[int]bool
}

// Aggregate groups entries and returns one line per mergeable subset plus one
// line for every entry that cannot be merged. Lines are ordered by the
// position of their first contributing entry.
func (a *Aggregator) Aggregate(entries []entities.IngredientEntry) []entities.AggregatedLine {
	var groupOrder []string
	groups := make(map[string][]indexedEntry)

	for i, entry := range entries {
		key := ingredientKey(entry.Name)
		if _, exists := groups[key]; !exists {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], indexedEntry{index: i, entry: entry})
	}

	var pending []pendingLine
	for _, key := range groupOrder {
		pending = append(pending, a.aggregateGroup(key, groups[key])...)
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].first < pending[j].first
	})

	lines := make([]entities.AggregatedLine, 0, len(pending))
	for _, p := range pending {
		lines = append(lines, p.line)
	}
	return lines
}

func ingredientKey(name string) string {
	if key := NormalizeIngredientName(name); key != "" {
		return key
	}
	return strings.ToLower(strings.TrimSpace(name))
}

func (a *Aggregator) aggregateGroup(key string, group []indexedEntry) []pendingLine {
	var lines []pendingLine
	var supported []indexedEntry

	for _, ie := range group {
		switch {
		case ie.entry.FreeText:
			lines = append(lines, singleLine(key, ie, entities.FreeText, entities.Quantity{}, ie.entry.RawUnit, entities.Uncategorized))
		case ie.entry.Err != nil:
			lines = append(lines, singleLine(key, ie, entities.Unparseable, entities.Quantity{}, ie.entry.Unit, entities.Uncategorized))
		default:
			info, ok := a.units.LookupFor(ie.entry.Unit, key)
			if !ok {
				lines = append(lines, singleLine(key, ie, entities.Unsupported, ie.entry.Quantity, ie.entry.Unit, entities.Uncategorized))
				continue
			}
			ie.info = info
			supported = append(supported, ie)
		}
	}

	majority := majorityCategory(supported)

	// Minority categories are summed among themselves into Separate lines
	var mergeOrder []string
	merged := make(map[string]*pendingLine)
	for _, ie := range supported {
		base := ToBase(ie.entry.Quantity, ie.info)
		unit := mergeUnit(ie.info)

		kind := entities.Merged
		if ie.info.Category != majority {
			kind = entities.Separate
		}

		mergeKey := ie.info.Category.String() + "|" + unit
		p, exists := merged[mergeKey]
		if !exists {
			p = &pendingLine{
				first:   ie.index,
				members: make(map[int]bool),
				line: entities.AggregatedLine{
					Key:      key,
					Name:     ie.entry.Name,
					Unit:     unit,
					Category: ie.info.Category,
					Kind:     kind,
				},
			}
			merged[mergeKey] = p
			mergeOrder = append(mergeOrder, mergeKey)
		}
		p.line.Quantity = p.line.Quantity.Add(base)
		p.line.Sources = append(p.line.Sources, ie.entry)
		p.members[ie.index] = true
	}

	for _, mergeKey := range mergeOrder {
		p := merged[mergeKey]
		if p.line.Kind == entities.Merged {
			for _, ie := range group {
				if !p.members[ie.index] {
					p.line.Excluded = append(p.line.Excluded, ie.entry)
				}
			}
		}
		lines = append(lines, *p)
	}
	return lines
}

func singleLine(key string, ie indexedEntry, kind entities.LineKind, q entities.Quantity, unit string, category entities.Category) pendingLine {
	return pendingLine{
		first: ie.index,
		line: entities.AggregatedLine{
			Key:         key,
			Name:        ie.entry.Name,
			Quantity:    q,
			Unit:        unit,
			Category:    category,
			Kind:        kind,
			RawQuantity: ie.entry.RawQuantity,
			Sources:     []entities.IngredientEntry{ie.entry},
		},
	}
}

// Preserved count units merge only with themselves; everything else merges
// in its category's base unit.
func mergeUnit(info entities.UnitInfo) string {
	if info.Category == entities.Count && info.Preserved {
		return info.Name
	}
	return BaseUnit(info.Category)
}

// majorityCategory returns the most common category, ties going to the one
// seen first
func majorityCategory(entries []indexedEntry) entities.Category {
	counts := make(map[entities.Category]int)
	var order []entities.Category
	for _, ie := range entries {
		if counts[ie.info.Category] == 0 {
			order = append(order, ie.info.Category)
		}
		counts[ie.info.Category]++
	}

	best := entities.Uncategorized
	bestCount := 0
	for _, c := range order {
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	return best
}
