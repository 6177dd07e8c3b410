package model

import (
	"strings"
	"time"
)

// Color is a presentation tag for a category. The core logic treats it as
// opaque; only the view layer gives it meaning.
type Color string

const (
	ColorGreen   Color = "green"
	ColorEmerald Color = "emerald"
	ColorLime    Color = "lime"
	ColorRed     Color = "red"
	ColorOrange  Color = "orange"
	ColorYellow  Color = "yellow"
	ColorPink    Color = "pink"
	ColorBlue    Color = "blue"
	ColorPurple  Color = "purple"
	ColorTeal    Color = "teal"
	ColorIndigo  Color = "indigo"

	// ColorNeutral is the fallback for category names that no longer exist
	// in the registry.
	ColorNeutral Color = "gray"
)

// Palette holds the colors assigned to user-created categories.
var Palette = []Color{ColorBlue, ColorPurple, ColorTeal, ColorIndigo, ColorOrange, ColorLime}

// Category labels transactions of one type. Built-in categories are compiled
// in, carry no ID and cannot be deleted; user categories live in the store.
type Category struct {
	ID        string          `json:"id,omitempty"`
	UserID    string          `json:"user_id,omitempty"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	Color     Color           `json:"color"`
	IsDefault bool            `json:"-"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
}

// CategorySet groups categories by transaction type.
type CategorySet struct {
	Income  []Category
	Expense []Category
}

// BuiltinCategories returns the compiled-in category table. The set is fixed
// for the lifetime of the process.
func BuiltinCategories() CategorySet {
	return CategorySet{
		Income: []Category{
			{Name: "ប្រាក់ខែ (Salary)", Type: TypeIncome, Color: ColorGreen, IsDefault: true},
			{Name: "ជំនួញ (Business)", Type: TypeIncome, Color: ColorEmerald, IsDefault: true},
			{Name: "ផ្សេងៗ (Other)", Type: TypeIncome, Color: ColorLime, IsDefault: true},
		},
		Expense: []Category{
			{Name: "អាហារ (Food)", Type: TypeExpense, Color: ColorRed, IsDefault: true},
			{Name: "ជួលផ្ទះ (Rent)", Type: TypeExpense, Color: ColorOrange, IsDefault: true},
			{Name: "ដឹកជញ្ជូន (Transport)", Type: TypeExpense, Color: ColorYellow, IsDefault: true},
			{Name: "ផ្សេងៗ (Other)", Type: TypeExpense, Color: ColorPink, IsDefault: true},
		},
	}
}

// IsBuiltinName reports whether name collides case-insensitively with a
// built-in category of the given type.
func IsBuiltinName(name string, typ TransactionType) bool {
	for _, c := range BuiltinCategories().ByType(typ) {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// MergeCategories combines the built-ins with the user's own categories:
// built-ins first, then user categories in store-delivery order.
func MergeCategories(user []Category) CategorySet {
	merged := BuiltinCategories()
	for _, c := range user {
		switch c.Type {
		case TypeIncome:
			merged.Income = append(merged.Income, c)
		case TypeExpense:
			merged.Expense = append(merged.Expense, c)
		}
	}
	return merged
}

// ByType returns the categories of one transaction type.
func (s CategorySet) ByType(typ TransactionType) []Category {
	if typ == TypeIncome {
		return s.Income
	}
	return s.Expense
}

// ColorFor looks up the display color for a category name. Transactions keep
// their category string after the category is deleted, so unknown names fall
// back to the neutral color.
func (s CategorySet) ColorFor(name string, typ TransactionType) Color {
	for _, c := range s.ByType(typ) {
		if c.Name == name {
			return c.Color
		}
	}
	return ColorNeutral
}
