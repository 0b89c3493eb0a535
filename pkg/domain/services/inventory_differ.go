package services

import (
	"github.com/vsinha/grocer/pkg/domain/entities"
)

// InventoryDiffer subtracts on-hand amounts from needed shopping lines
type InventoryDiffer struct {
	rollup *RollUp
}

// NewInventoryDiffer creates a differ that re-rounds shortfalls with rollup
func NewInventoryDiffer(rollup *RollUp) *InventoryDiffer {
	return &InventoryDiffer{rollup: rollup}
}

// Diff returns the amount still to buy once onHand (in the needed line's
// display unit) is used up. The second result is false when nothing needs
// to be bought and the line should be dropped from the list.
//
// Lines without a measured quantity (free text, unparseable) are returned
// unchanged.
func (d *InventoryDiffer) Diff(needed entities.ShoppingLine, onHand entities.Quantity) (entities.ShoppingLine, bool) {
	if !needed.Measured {
		return needed, true
	}

	size := needed.UnitSize
	if size.IsZero() {
		size = one
	}

	have := onHand.Mul(size)
	if have.Cmp(needed.Base) >= 0 {
		return entities.ShoppingLine{}, false
	}
	shortfall := needed.Base.Sub(have)

	if p := d.rollup.minimumPurchase(needed.Key, needed.Category); p != nil && shortfall.Cmp(p.Amount) < 0 {
		out := needed
		out.Base = shortfall
		out.Amount = one
		out.Quantity = RenderQuantity(one)
		out.Unit = p.Unit
		out.UnitSize = p.Amount
		return out, true
	}

	return d.rollup.formatAmount(needed.Key, needed.Name, needed.Kind, needed.Category, shortfall, needed.BaseUnit), true
}
