package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/vsinha/grocer/pkg/domain/entities"
	"github.com/vsinha/grocer/pkg/domain/repositories"
	"github.com/vsinha/grocer/pkg/domain/services"
)

// InventoryRepository provides in-memory on-hand storage keyed by
// normalized ingredient name
type InventoryRepository struct {
	mu     sync.RWMutex
	onHand map[string]string
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		onHand: make(map[string]string),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadOnHand loads on-hand amounts. Later rows for the same ingredient
// replace earlier ones.
func (r *InventoryRepository) LoadOnHand(items []entities.OnHand) error {
	for _, item := range items {
		r.SetOnHand(item.Ingredient, item.Quantity)
	}
	return nil
}

// SetOnHand records the amount on hand for an ingredient
func (r *InventoryRepository) SetOnHand(ingredient, quantity string) {
	key := services.NormalizeIngredientName(ingredient)
	if key == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.onHand[key] = strings.TrimSpace(quantity)
}

// GetOnHand returns the on-hand amount for a normalized ingredient key
func (r *InventoryRepository) GetOnHand(_ context.Context, ingredientKey string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quantity, exists := r.onHand[ingredientKey]
	return quantity, exists, nil
}

// GetAllOnHand returns a copy of every on-hand amount
func (r *InventoryRepository) GetAllOnHand(_ context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make(map[string]string, len(r.onHand))
	for key, quantity := range r.onHand {
		all[key] = quantity
	}
	return all, nil
}
