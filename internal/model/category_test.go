package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinCategories(t *testing.T) {
	set := BuiltinCategories()

	assert.Len(t, set.Income, 3)
	assert.Len(t, set.Expense, 4)
	for _, c := range append(append([]Category{}, set.Income...), set.Expense...) {
		assert.True(t, c.IsDefault)
		assert.Empty(t, c.ID)
	}
}

func TestIsBuiltinName(t *testing.T) {
	assert.True(t, IsBuiltinName("អាហារ (Food)", TypeExpense))
	assert.True(t, IsBuiltinName("អាហារ (food)", TypeExpense), "comparison is case-insensitive")
	assert.False(t, IsBuiltinName("អាហារ (Food)", TypeIncome), "names are scoped per type")
	assert.False(t, IsBuiltinName("Groceries", TypeExpense))
}

func TestMergeCategories(t *testing.T) {
	user := []Category{
		{ID: "c2", Name: "Side hustle", Type: TypeIncome, Color: ColorBlue},
		{ID: "c1", Name: "Groceries", Type: TypeExpense, Color: ColorPurple},
		{ID: "c3", Name: "Travel", Type: TypeExpense, Color: ColorTeal},
	}

	set := MergeCategories(user)

	// Built-ins come first, then user categories in delivery order.
	assert.Len(t, set.Income, 4)
	assert.Equal(t, "Side hustle", set.Income[3].Name)

	assert.Len(t, set.Expense, 6)
	assert.Equal(t, "Groceries", set.Expense[4].Name)
	assert.Equal(t, "Travel", set.Expense[5].Name)
}

func TestColorFor(t *testing.T) {
	set := MergeCategories([]Category{
		{ID: "c1", Name: "Groceries", Type: TypeExpense, Color: ColorPurple},
	})

	assert.Equal(t, ColorPurple, set.ColorFor("Groceries", TypeExpense))
	assert.Equal(t, ColorRed, set.ColorFor("អាហារ (Food)", TypeExpense))
	assert.Equal(t, ColorNeutral, set.ColorFor("Deleted category", TypeExpense),
		"unknown names resolve to the neutral color")
}

func TestByType(t *testing.T) {
	set := BuiltinCategories()
	assert.Equal(t, set.Income, set.ByType(TypeIncome))
	assert.Equal(t, set.Expense, set.ByType(TypeExpense))
}
