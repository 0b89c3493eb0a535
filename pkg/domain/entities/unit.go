package entities

// Category represents the measurement category of a unit
type Category int

const (
	Uncategorized Category = iota
	Volume
	Weight
	Count
)

// String method for Category enum
func (c Category) String() string {
	switch c {
	case Volume:
		return "volume"
	case Weight:
		return "weight"
	case Count:
		return "count"
	default:
		return "uncategorized"
	}
}

// MarshalText encodes the category by name
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnitInfo describes a recognized unit
type UnitInfo struct {
	Name     string
	Plural   string
	Category Category
	// Factor converts one of this unit into the category's base unit
	Factor Quantity
	// Preserved count units (clove, can, slice ...) keep their own identity
	// and are never folded into a generic "each"
	Preserved bool
}

// Label returns the singular or plural name appropriate for amount
func (u UnitInfo) Label(amount Quantity) string {
	if amount.Cmp(WholeQuantity(1)) > 0 && u.Plural != "" {
		return u.Plural
	}
	return u.Name
}
