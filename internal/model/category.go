package model

import "github.com/google/uuid"

// Category represents a named, colored grouping for expense transactions.
// Color is a 24-bit RGB value.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color int    `json:"color"`
}

// NewCategory creates a category with a fresh id.
func NewCategory(name string, color int) Category {
	return Category{
		ID:    uuid.NewString(),
		Name:  name,
		Color: color,
	}
}

// DefaultCategories returns the eight categories seeded on first run.
func DefaultCategories() []Category {
	return []Category{
		NewCategory("Food", 0xFF6666),
		NewCategory("Transport", 0x66B2FF),
		NewCategory("Bills", 0x66FF66),
		NewCategory("Entertainment", 0xFFFF66),
		NewCategory("Shopping", 0xFFB266),
		NewCategory("Health", 0xB266FF),
		NewCategory("Education", 0xD09900),
		NewCategory("Other", 0xC0C0C0),
	}
}
