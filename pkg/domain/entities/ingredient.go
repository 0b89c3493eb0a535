package entities

// IngredientEntry is a parsed ingredient ready for aggregation
type IngredientEntry struct {
	RecipeID    RecipeID
	Name        string
	RawQuantity string
	RawUnit     string
	Quantity    Quantity
	Unit        string
	// FreeText entries ("salt to taste") carry no quantity or unit and are
	// never merged with anything
	FreeText bool
	// Err holds the parse failure for entries that are kept but unmergeable
	Err error
}

// Mergeable reports whether the entry may take part in unit conversion
func (e IngredientEntry) Mergeable() bool {
	return !e.FreeText && e.Err == nil
}

// LineKind classifies how an aggregated line came to be
type LineKind int

const (
	// Merged lines are the sum of compatible entries in a base unit
	Merged LineKind = iota
	// Separate lines use a supported unit whose category differs from the
	// rest of the ingredient's entries
	Separate
	// Unsupported lines use a unit that is not in the unit table
	Unsupported
	// Unparseable lines have quantity text that matched no numeric form
	Unparseable
	// FreeText lines have no quantity at all
	FreeText
)

// String method for LineKind enum
func (k LineKind) String() string {
	switch k {
	case Merged:
		return "merged"
	case Separate:
		return "separate"
	case Unsupported:
		return "unsupported"
	case Unparseable:
		return "unparseable"
	case FreeText:
		return "free_text"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name
func (k LineKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// AggregatedLine is the result of summing one ingredient's compatible entries
type AggregatedLine struct {
	Key         string
	Name        string
	Quantity    Quantity
	Unit        string
	Category    Category
	Kind        LineKind
	RawQuantity string
	Sources     []IngredientEntry
	// Excluded lists same-name entries that could not be merged into this line
	Excluded []IngredientEntry
}

// Aggregated reports whether the line is a sum in a base unit
func (l AggregatedLine) Aggregated() bool {
	return l.Kind == Merged
}

// NeedsWarning reports whether the line did not take part in conversion
func (l AggregatedLine) NeedsWarning() bool {
	return l.Kind == Unsupported || l.Kind == Unparseable
}
