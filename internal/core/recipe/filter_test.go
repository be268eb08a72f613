package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recipe-matcher/internal/pkg/common"
)

func matchResult(score float64, missing, servings int, meal common.MealType, continent common.Continent) common.MatchResult {
	return common.MatchResult{
		Recipe: common.Recipe{
			Name:      "test",
			Servings:  servings,
			MealType:  meal,
			Continent: continent,
		},
		MatchScore:         score,
		MissingIngredients: missing,
	}
}

func TestPassesStructuredFiltersGate(t *testing.T) {
	full := matchResult(1.0, 0, 4, common.MealDinner, common.ContinentEurope)
	partial := matchResult(0.75, 1, 4, common.MealDinner, common.ContinentEurope)
	weak := matchResult(0.4, 3, 4, common.MealDinner, common.ContinentEurope)

	strict := common.RecipeFilters{MaxAdditionalIngredients: common.IntPtr(0)}
	assert.True(t, PassesStructuredFilters(full, strict))
	assert.False(t, PassesStructuredFilters(partial, strict))

	unset := common.RecipeFilters{}
	assert.True(t, PassesStructuredFilters(full, unset))
	assert.True(t, PassesStructuredFilters(partial, unset))
	assert.False(t, PassesStructuredFilters(weak, unset))

	// 上限大於 0 時仍套用 0.5 門檻
	loose := common.RecipeFilters{MaxAdditionalIngredients: common.IntPtr(5)}
	assert.False(t, PassesStructuredFilters(weak, loose))
	assert.True(t, PassesStructuredFilters(partial, loose))
}

func TestPassesStructuredFiltersBudget(t *testing.T) {
	r := matchResult(0.6, 2, 4, common.MealDinner, common.ContinentEurope)

	assert.False(t, PassesStructuredFilters(r, common.RecipeFilters{MaxAdditionalIngredients: common.IntPtr(1)}))
	assert.True(t, PassesStructuredFilters(r, common.RecipeFilters{MaxAdditionalIngredients: common.IntPtr(2)}))
}

func TestPassesRecipeFilters(t *testing.T) {
	r := common.Recipe{Servings: 4, MealType: common.MealLunch, Continent: common.ContinentEastAsia}

	tests := []struct {
		name    string
		filters common.RecipeFilters
		want    bool
	}{
		{"no filters", common.RecipeFilters{}, true},
		{"min servings ok", common.RecipeFilters{MinServings: common.IntPtr(4)}, true},
		{"min servings too high", common.RecipeFilters{MinServings: common.IntPtr(6)}, false},
		{"max servings too low", common.RecipeFilters{MaxServings: common.IntPtr(2)}, false},
		{"meal type listed", common.RecipeFilters{MealTypes: []common.MealType{common.MealDinner, common.MealLunch}}, true},
		{"meal type not listed", common.RecipeFilters{MealTypes: []common.MealType{common.MealBreakfast}}, false},
		{"continent listed", common.RecipeFilters{Continents: []common.Continent{common.ContinentEastAsia}}, true},
		{"continent not listed", common.RecipeFilters{Continents: []common.Continent{common.ContinentAfrica}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PassesRecipeFilters(r, tt.filters))
		})
	}
}

func TestPassesRecipeFiltersUnknownServings(t *testing.T) {
	r := common.Recipe{MealType: common.MealDinner}
	f := common.RecipeFilters{MinServings: common.IntPtr(8), MaxServings: common.IntPtr(1)}

	assert.True(t, PassesRecipeFilters(r, f))
}

func TestMatchesFlavor(t *testing.T) {
	h := DefaultHeuristicFilter

	curry := common.Recipe{Name: "Chicken Curry", Ingredients: []string{"Chicken", "Curry paste"}}
	mash := common.Recipe{Name: "Mashed Potatoes", Ingredients: []string{"Potato", "Milk", "Butter"}}
	salad := common.Recipe{Name: "Green Salad", Ingredients: []string{"Lettuce", "Cucumber"}}

	assert.True(t, h.MatchesFlavor(curry, common.FlavorBold))
	assert.False(t, h.MatchesFlavor(mash, common.FlavorBold))
	assert.True(t, h.IsBold(curry))
	assert.False(t, h.IsBold(salad))

	assert.True(t, h.MatchesFlavor(mash, common.FlavorBland))
	assert.False(t, h.MatchesFlavor(curry, common.FlavorBland))
	assert.False(t, h.MatchesFlavor(salad, common.FlavorBland))

	for _, r := range []common.Recipe{curry, mash, salad} {
		assert.True(t, h.MatchesFlavor(r, common.FlavorAny))
		assert.True(t, h.MatchesFlavor(r, common.FlavorBalanced))
		assert.True(t, h.MatchesFlavor(r, ""))
	}
}

func TestMatchesDiet(t *testing.T) {
	h := DefaultHeuristicFilter

	chicken := common.Recipe{Name: "Roast dinner", Ingredients: []string{"Chicken", "Carrots"}}
	pancakes := common.Recipe{Name: "Pancakes", Ingredients: []string{"Flour", "Egg", "Milk", "Honey"}}
	beans := common.Recipe{Name: "Bean Stew", Ingredients: []string{"Black beans", "Onion", "Tomato"}}

	assert.False(t, h.MatchesDiet(chicken, []common.Diet{common.DietVegetarian}))
	assert.True(t, h.MatchesDiet(chicken, []common.Diet{common.DietGlutenFree, common.DietDairyFree}))

	assert.False(t, h.MatchesDiet(pancakes, []common.Diet{common.DietGlutenFree}))
	assert.False(t, h.MatchesDiet(pancakes, []common.Diet{common.DietDiabetic}))
	assert.False(t, h.MatchesDiet(pancakes, []common.Diet{common.DietVegan}))
	assert.True(t, h.MatchesDiet(pancakes, []common.Diet{common.DietVegetarian}))

	assert.True(t, h.MatchesDiet(beans, []common.Diet{common.DietVegan, common.DietGlutenFree, common.DietDiabetic}))
	assert.True(t, h.MatchesDiet(chicken, nil))
}

func TestVegetarianExcludesChickenRegardlessOfFlavor(t *testing.T) {
	r := common.Recipe{Name: "Stir fry", Ingredients: []string{"Chicken", "Garlic", "Ginger"}}

	for _, flavor := range []common.FlavorProfile{common.FlavorAny, common.FlavorBold, common.FlavorBalanced} {
		assert.False(t, DefaultHeuristicFilter.PassesHeuristicFilters(r, flavor, []common.Diet{common.DietVegetarian}))
	}
}

func TestHeuristicFilterCustomTables(t *testing.T) {
	tables := KeywordTables{
		Version:    "test",
		Categories: map[string][]string{CategoryMeat: {"tofu"}},
		Diets:      map[common.Diet][]string{common.DietVegetarian: {CategoryMeat}},
	}
	h := NewHeuristicFilter(tables)

	assert.False(t, h.MatchesDiet(common.Recipe{Ingredients: []string{"Tofu"}}, []common.Diet{common.DietVegetarian}))
	assert.True(t, h.MatchesDiet(common.Recipe{Ingredients: []string{"Chicken"}}, []common.Diet{common.DietVegetarian}))
}
