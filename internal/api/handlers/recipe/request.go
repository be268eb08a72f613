package recipe

import (
	"fmt"

	"recipe-matcher/internal/pkg/common"
)

// FiltersRequest 篩選條件，省略的欄位表示不限制
type FiltersRequest struct {
	MaxAdditionalIngredients *int     `json:"max_additional_ingredients,omitempty"` // 最多缺幾樣食材
	MinServings              *int     `json:"min_servings,omitempty"`
	MaxServings              *int     `json:"max_servings,omitempty"`
	MealTypes                []string `json:"meal_types,omitempty"`
	Continents               []string `json:"continents,omitempty"`
}

// ToFilters 驗證並轉換為核心篩選條件
func (f FiltersRequest) ToFilters() (common.RecipeFilters, error) {
	out := common.RecipeFilters{
		MaxAdditionalIngredients: f.MaxAdditionalIngredients,
		MinServings:              f.MinServings,
		MaxServings:              f.MaxServings,
	}

	if err := nonNegative("max_additional_ingredients", f.MaxAdditionalIngredients); err != nil {
		return out, err
	}
	if err := nonNegative("min_servings", f.MinServings); err != nil {
		return out, err
	}
	if err := nonNegative("max_servings", f.MaxServings); err != nil {
		return out, err
	}

	for _, s := range f.MealTypes {
		m, err := common.ParseMealType(s)
		if err != nil {
			return out, err
		}
		out.MealTypes = append(out.MealTypes, m)
	}
	for _, s := range f.Continents {
		c, err := common.ParseContinent(s)
		if err != nil {
			return out, err
		}
		out.Continents = append(out.Continents, c)
	}

	return out, nil
}

func nonNegative(field string, v *int) error {
	if v != nil && *v < 0 {
		return common.NewValidationError(fmt.Sprintf("%s must be >= 0, got %d", field, *v))
	}
	return nil
}

// SearchRequest 以指定食材搜尋本地目錄
type SearchRequest struct {
	AvailableIngredients []string       `json:"available_ingredients"`
	Filters              FiltersRequest `json:"filters"`
}

// SearchResponse 搜尋結果，已依缺少食材數與比對分數排序
type SearchResponse struct {
	Results []common.MatchResult `json:"results"`
	Count   int                  `json:"count"`
}

// SuggestRequest 以庫存食材推薦食譜
type SuggestRequest struct {
	Filters        FiltersRequest `json:"filters"`
	FlavorProfile  string         `json:"flavor_profile,omitempty"`
	DietaryFilters []string       `json:"dietary_filters,omitempty"`
}

// SuggestResponse 合併本地與外部來源後的推薦結果
type SuggestResponse struct {
	Ingredients []string        `json:"ingredients"`
	Recipes     []common.Recipe `json:"recipes"`
	Count       int             `json:"count"`
}

// parse 驗證推薦請求的口味與飲食限制
func (r SuggestRequest) parse() (common.RecipeFilters, common.FlavorProfile, []common.Diet, error) {
	filters, err := r.Filters.ToFilters()
	if err != nil {
		return filters, "", nil, err
	}

	flavor, err := common.ParseFlavorProfile(r.FlavorProfile)
	if err != nil {
		return filters, "", nil, err
	}

	diets := make([]common.Diet, 0, len(r.DietaryFilters))
	for _, s := range r.DietaryFilters {
		d, err := common.ParseDiet(s)
		if err != nil {
			return filters, "", nil, err
		}
		diets = append(diets, d)
	}

	return filters, flavor, diets, nil
}
