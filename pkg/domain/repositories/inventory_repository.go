package repositories

import "context"

// InventoryRepository provides access to on-hand pantry amounts.
//
// Keys are normalized ingredient names. Amounts are authored quantity text
// expressed in the display unit of the matching shopping line; a blank
// amount means nothing is on hand.
type InventoryRepository interface {
	GetOnHand(ctx context.Context, ingredientKey string) (string, bool, error)
	GetAllOnHand(ctx context.Context) (map[string]string, error)
}
