package services

import (
	"testing"

	"github.com/vsinha/grocer/pkg/domain/entities"
)

func neededLine(t *testing.T, raws ...entities.RawIngredient) entities.ShoppingLine {
	t.Helper()
	lines := shoppingLines(raws...)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 needed line, got %d", len(lines))
	}
	return lines[0]
}

func TestInventoryDiffer_Diff(t *testing.T) {
	differ := NewInventoryDiffer(NewRollUp(DefaultUnitTable(), DefaultRollUpConfig()))

	testCases := []struct {
		name     string
		needed   []entities.RawIngredient
		onHand   entities.Quantity
		expected string
	}{
		{"nothing on hand", []entities.RawIngredient{raw("1/2", "cup", "sugar"), raw("2", "tbsp", "sugar")}, entities.Quantity{}, "Buy 5/8 cup of sugar"},
		{"half cup on hand", []entities.RawIngredient{raw("1", "cup", "sugar")}, entities.MustQuantity(1, 2), "Buy 1/2 cup of sugar"},
		{"shortfall re-rounded", []entities.RawIngredient{raw("1", "cup", "sugar")}, entities.MustQuantity(1, 3), "Buy 2/3 cup of sugar"},
		{"sub-stick butter", []entities.RawIngredient{raw("1", "tbsp", "butter")}, entities.Quantity{}, "Buy 1 pack of butter"},
		{"one tbsp past a stick", []entities.RawIngredient{raw("9", "tbsp", "butter")}, entities.WholeQuantity(1), "Buy 1 pack of butter"},
		{"whole stick short", []entities.RawIngredient{raw("2", "sticks", "butter")}, entities.WholeQuantity(1), "Buy 1 stick of butter"},
		{"eggs below a half-dozen", []entities.RawIngredient{raw("8", "", "eggs")}, entities.MustQuantity(1, 2), "Buy 1 half-dozen of eggs"},
		{"bag on hand leaves cups", []entities.RawIngredient{raw("20", "cups", "flour")}, entities.WholeQuantity(1), "Buy 2 cups of flour"},
		{"flour bag", []entities.RawIngredient{raw("20", "cups", "flour")}, entities.Quantity{}, "Buy 2 bags (5 lb) of flour"},
		{"count items", []entities.RawIngredient{raw("3", "", "onions")}, entities.WholeQuantity(1), "Buy 2 onions"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			needed := neededLine(t, tc.needed...)
			got, ok := differ.Diff(needed, tc.onHand)
			if !ok {
				t.Fatal("Expected a line to buy")
			}
			if got.BuyText() != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got.BuyText())
			}
			if got.Amount.Mul(got.UnitSize).Cmp(got.Base) < 0 {
				t.Errorf("Expected buy amount %s %s to cover shortfall %s", got.Quantity, got.Unit, got.Base)
			}
		})
	}
}

func TestInventoryDiffer_OmitsCoveredLines(t *testing.T) {
	differ := NewInventoryDiffer(NewRollUp(DefaultUnitTable(), DefaultRollUpConfig()))

	testCases := []struct {
		name   string
		needed []entities.RawIngredient
		onHand entities.Quantity
	}{
		{"exactly enough", []entities.RawIngredient{raw("1", "cup", "sugar")}, entities.WholeQuantity(1)},
		{"more than enough", []entities.RawIngredient{raw("1", "cup", "sugar")}, entities.WholeQuantity(5)},
		{"rounded display covers need", []entities.RawIngredient{raw("3", "tbsp", "butter")}, entities.MustQuantity(3, 8)},
		{"a dozen eggs on hand", []entities.RawIngredient{raw("8", "", "eggs")}, entities.WholeQuantity(1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			needed := neededLine(t, tc.needed...)
			if got, ok := differ.Diff(needed, tc.onHand); ok {
				t.Errorf("Expected line to be omitted, got %q", got.BuyText())
			}
		})
	}
}

func TestInventoryDiffer_UnmeasuredLinesPassThrough(t *testing.T) {
	differ := NewInventoryDiffer(NewRollUp(DefaultUnitTable(), DefaultRollUpConfig()))

	lines := shoppingLines(
		raw("", "", "salt to taste"),
		raw("a few", "sprigs", "thyme"),
	)
	for _, line := range lines {
		got, ok := differ.Diff(line, entities.WholeQuantity(10))
		if !ok {
			t.Fatalf("Expected %s to be kept", line.Name)
		}
		if got.Quantity != line.Quantity || got.Unit != line.Unit || got.Warning != line.Warning {
			t.Errorf("Expected %s to pass through unchanged, got %+v", line.Name, got)
		}
	}
}

func TestInventoryDiffer_UnsupportedUnitKeepsWarning(t *testing.T) {
	differ := NewInventoryDiffer(NewRollUp(DefaultUnitTable(), DefaultRollUpConfig()))

	needed := neededLine(t, raw("3", "package", "tortillas"))
	got, ok := differ.Diff(needed, entities.WholeQuantity(1))
	if !ok {
		t.Fatal("Expected a line to buy")
	}
	if got.Quantity != "2" || got.Unit != "package" || !got.Warning {
		t.Errorf("Expected 2 package with a warning, got %q %q %v", got.Quantity, got.Unit, got.Warning)
	}
}
