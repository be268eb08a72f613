package recipe

import (
	"strings"

	"recipe-matcher/internal/pkg/common"
)

// 最低比對門檻
const (
	minMatchScore       = 0.5
	minMatchScoreStrict = 1.0
)

// PassesRecipeFilters 只檢查份量、餐別、地區，不看比對分數
// 外部來源的食譜沒有在本地計算比對品質，因此只套用這部分條件
func PassesRecipeFilters(r common.Recipe, f common.RecipeFilters) bool {
	// 份量未知的食譜不受份量條件限制
	if f.MinServings != nil && r.Servings > 0 && r.Servings < *f.MinServings {
		return false
	}
	if f.MaxServings != nil && r.Servings > 0 && r.Servings > *f.MaxServings {
		return false
	}

	if len(f.MealTypes) > 0 && !containsMealType(f.MealTypes, r.MealType) {
		return false
	}
	if len(f.Continents) > 0 && !containsContinent(f.Continents, r.Continent) {
		return false
	}
	return true
}

// PassesStructuredFilters 依序檢查額外食材上限、份量、餐別、地區，最後是比對門檻
// 額外食材上限為 0 時要求全部食材都符合，否則至少一半
func PassesStructuredFilters(result common.MatchResult, f common.RecipeFilters) bool {
	if f.MaxAdditionalIngredients != nil && result.MissingIngredients > *f.MaxAdditionalIngredients {
		return false
	}
	if !PassesRecipeFilters(result.Recipe, f) {
		return false
	}

	threshold := minMatchScore
	if f.MaxAdditionalIngredients != nil && *f.MaxAdditionalIngredients == 0 {
		threshold = minMatchScoreStrict
	}
	return result.MatchScore >= threshold
}

func containsMealType(list []common.MealType, m common.MealType) bool {
	for _, v := range list {
		if v == m {
			return true
		}
	}
	return false
}

func containsContinent(list []common.Continent, c common.Continent) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}

// HeuristicFilter 以關鍵字判斷口味與飲食限制，屬於盡力而為的篩選
type HeuristicFilter struct {
	tables KeywordTables
}

// NewHeuristicFilter 使用指定關鍵字表建立篩選器
func NewHeuristicFilter(tables KeywordTables) HeuristicFilter {
	return HeuristicFilter{tables: tables}
}

// DefaultHeuristicFilter 使用預設關鍵字表的篩選器
var DefaultHeuristicFilter = NewHeuristicFilter(DefaultKeywords)

// recipeText 食譜名稱、描述與食材串接後轉小寫
func recipeText(r common.Recipe) string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	sb.WriteByte(' ')
	sb.WriteString(r.Description)
	sb.WriteByte(' ')
	sb.WriteString(strings.Join(r.Ingredients, " "))
	return strings.ToLower(sb.String())
}

func (h HeuristicFilter) has(text, category string) bool {
	for _, w := range h.tables.Words(category) {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// IsBold 判斷食譜是否屬於重口味
func (h HeuristicFilter) IsBold(r common.Recipe) bool {
	return h.has(recipeText(r), CategoryBold)
}

// MatchesFlavor 口味篩選
//
// bold 需要出現重口味關鍵字；bland 需要出現基底食材且沒有重口味關鍵字。
// balanced 與 any 一律通過，balanced 目前沒有對應的分類器。
func (h HeuristicFilter) MatchesFlavor(r common.Recipe, flavor common.FlavorProfile) bool {
	switch flavor {
	case common.FlavorBold:
		return h.IsBold(r)
	case common.FlavorBland:
		text := recipeText(r)
		return h.has(text, CategoryBlandBase) && !h.has(text, CategoryBold)
	default:
		return true
	}
}

// MatchesDiet 飲食限制篩選，多個限制需全部通過
func (h HeuristicFilter) MatchesDiet(r common.Recipe, diets []common.Diet) bool {
	if len(diets) == 0 {
		return true
	}
	text := recipeText(r)
	for _, diet := range diets {
		for _, category := range h.tables.Diets[diet] {
			if h.has(text, category) {
				return false
			}
		}
	}
	return true
}

// PassesHeuristicFilters 先檢查口味再檢查飲食限制
func (h HeuristicFilter) PassesHeuristicFilters(r common.Recipe, flavor common.FlavorProfile, diets []common.Diet) bool {
	return h.MatchesFlavor(r, flavor) && h.MatchesDiet(r, diets)
}
