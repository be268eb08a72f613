package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-matcher/internal/pkg/common"
)

func TestMatchIngredientsSubset(t *testing.T) {
	available := []string{"Garlic", "Extra Virgin Olive Oil", "Penne Rigate Pasta", "Butter Sticks", "Salt"}
	result := MatchIngredients([]string{"Garlic", "Penne Rigate Pasta", "Butter Sticks"}, available)

	assert.Equal(t, 1.0, result.MatchScore)
	assert.Equal(t, 0, result.MissingIngredients)
	assert.Equal(t, 3, result.MatchedIngredients)
	assert.Equal(t, 3, result.TotalIngredients)
}

func TestMatchIngredientsEmptyRecipe(t *testing.T) {
	result := MatchIngredients(nil, []string{"garlic"})

	assert.Equal(t, 0.0, result.MatchScore)
	assert.Equal(t, 0, result.MissingIngredients)
	assert.Equal(t, 0, result.TotalIngredients)
}

func TestMatchIngredientsPartial(t *testing.T) {
	result := MatchIngredients([]string{"Tomatoes", "Cilantro", "Garlic", "Pasta"}, []string{"garlic", "penne pasta"})

	assert.Equal(t, 2, result.MatchedIngredients)
	assert.Equal(t, 2, result.MissingIngredients)
	assert.InDelta(t, 0.5, result.MatchScore, 1e-9)
}

func TestPantryCovers(t *testing.T) {
	p := NewPantry([]string{"Chicken Breast", "Rice"})

	tests := []struct {
		ing  string
		want bool
	}{
		{"chicken breast", true},
		{"chicken", true},
		{"boneless chicken breast skin on", true},
		{"chicken thighs", true},
		{"brown rice", true},
		{"beef", false},
		{"", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Covers(tt.ing), "ingredient %q", tt.ing)
	}
}

func TestPantryIgnoresEmptyNames(t *testing.T) {
	p := NewPantry([]string{"", "  ", "!!"})
	require.Equal(t, 0, p.Len())

	result := p.Match([]string{"Garlic", "Onion"})
	assert.Equal(t, 0.0, result.MatchScore)
	assert.Equal(t, 2, result.MissingIngredients)
}

func TestPantryOneItemSatisfiesManyLines(t *testing.T) {
	p := NewPantry([]string{"garlic"})
	result := p.MatchRecipe(common.Recipe{ID: "x", Ingredients: []string{"Garlic", "Garlic Powder", "Minced garlic"}})

	assert.Equal(t, "x", result.Recipe.ID)
	assert.Equal(t, 1.0, result.MatchScore)
}
