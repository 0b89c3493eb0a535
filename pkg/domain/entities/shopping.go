package entities

import "strings"

// ShoppingLine is a display-ready shopping list entry
type ShoppingLine struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Quantity string   `json:"quantity"`
	Unit     string   `json:"unit"`
	Warning  bool     `json:"warning"`
	Kind     LineKind `json:"kind"`

	// Amount is the rounded value shown in Quantity, expressed in Unit
	Amount Quantity `json:"amount"`
	// Measured is false for free-text and unparseable lines
	Measured bool `json:"measured"`
	// Base is the exact amount in BaseUnit before any rounding
	Base     Quantity `json:"base"`
	BaseUnit string   `json:"base_unit"`
	// UnitSize is the number of base units in one display Unit
	UnitSize Quantity `json:"unit_size"`
	Category Category `json:"category"`
}

// String renders the line as "quantity unit name"
func (l ShoppingLine) String() string {
	return joinNonEmpty(l.Quantity, l.Unit, l.Name)
}

// BuyText renders the line as a purchase instruction, e.g. "Buy 1 pack of butter"
func (l ShoppingLine) BuyText() string {
	amount := joinNonEmpty(l.Quantity, l.Unit)
	switch {
	case amount == "":
		return "Buy " + l.Name
	case l.Unit == "":
		return "Buy " + amount + " " + l.Name
	default:
		return "Buy " + amount + " of " + l.Name
	}
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
