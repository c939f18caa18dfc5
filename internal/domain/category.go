package domain

// Category is a static display grouping for ledger entries.
type Category struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// IncomeCategoryID is the reserved category used by income entries.
// Budgets can never target it.
const IncomeCategoryID int32 = 9

// Categories is the fixed category universe. It is seeded into the
// database for referential integrity but never changes at runtime.
var Categories = []Category{
	{ID: 1, Name: "Food & Dining", Color: "#FF9800", Icon: "utensils"},
	{ID: 2, Name: "Transportation", Color: "#03A9F4", Icon: "car"},
	{ID: 3, Name: "Housing", Color: "#4CAF50", Icon: "home"},
	{ID: 4, Name: "Entertainment", Color: "#9C27B0", Icon: "film"},
	{ID: 5, Name: "Shopping", Color: "#E91E63", Icon: "shopping-bag"},
	{ID: 6, Name: "Utilities", Color: "#607D8B", Icon: "bolt"},
	{ID: 7, Name: "Health", Color: "#F44336", Icon: "heart"},
	{ID: 8, Name: "Travel", Color: "#8BC34A", Icon: "plane"},
	{ID: IncomeCategoryID, Name: "Income", Color: "#4ADE80", Icon: "banknote"},
}

// CategoryByID returns the category for the given ID. Unknown IDs fall
// back to the first category so display code never dereferences nil.
func CategoryByID(id int32) Category {
	for _, c := range Categories {
		if c.ID == id {
			return c
		}
	}
	return Categories[0]
}

// ValidCategoryID reports whether the ID belongs to the category universe.
func ValidCategoryID(id int32) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
