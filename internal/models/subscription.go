package models

type Category string

const (
	CategoryEntertainment Category = "entertainment"
	CategoryProductivity  Category = "productivity"
	CategoryUtilities     Category = "utilities"
	CategoryOther         Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryEntertainment,
	CategoryProductivity,
	CategoryUtilities,
	CategoryOther,
}

// ParseCategory maps a raw string onto a known category. Unknown or
// empty values fall back to CategoryOther.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryEntertainment, CategoryProductivity, CategoryUtilities:
		return Category(s)
	default:
		return CategoryOther
	}
}

// Subscription is one tracked recurring subscription. Billing is
// assumed to be monthly; Price is the monthly amount.
type Subscription struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Price     float64  `json:"price" yaml:"price"`
	Category  Category `json:"category" yaml:"category"`
	Date      string   `json:"date" yaml:"date"`                                   // YYYY-MM-DD, next renewal
	StartDate string   `json:"start_date,omitempty" yaml:"start_date,omitempty"`   // YYYY-MM-DD, may be empty
	Notes     string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Valid reports whether the record satisfies the store invariant:
// non-empty name and a positive price. Records failing this are
// dropped by Tracker.Validate.
func (s Subscription) Valid() bool {
	return s.Name != "" && s.Price > 0
}
