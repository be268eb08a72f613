package recipe

import (
	"strings"

	"recipe-matcher/internal/pkg/common"
)

// Pantry 已正規化的可用食材集合，一次搜尋只建立一次
type Pantry struct {
	items  []string
	tokens [][]string
}

// NewPantry 建立可用食材集合，正規化後為空字串的項目會被忽略
func NewPantry(available []string) Pantry {
	p := Pantry{
		items:  make([]string, 0, len(available)),
		tokens: make([][]string, 0, len(available)),
	}
	for _, raw := range available {
		n := Normalize(raw)
		if n == "" {
			continue
		}
		p.items = append(p.items, n)
		p.tokens = append(p.tokens, strings.Fields(n))
	}
	return p
}

// Len 可用食材數量
func (p Pantry) Len() int {
	return len(p.items)
}

// Covers 判斷一個已正規化的食譜食材是否能由現有食材滿足
//
// 任一條件成立即視為符合：現有食材包含該食材、該食材包含現有食材、
// 現有食材的任一單字出現在該食材中、該食材的任一單字出現在現有食材中。
// 一個現有食材可以同時滿足多行食譜食材。
func (p Pantry) Covers(ing string) bool {
	ingTokens := strings.Fields(ing)
	for i, avail := range p.items {
		if strings.Contains(avail, ing) || strings.Contains(ing, avail) {
			return true
		}
		for _, word := range p.tokens[i] {
			if strings.Contains(ing, word) {
				return true
			}
		}
		for _, word := range ingTokens {
			if strings.Contains(avail, word) {
				return true
			}
		}
	}
	return false
}

// Match 計算食材清單的比對結果（不含 Recipe 欄位）
func (p Pantry) Match(recipeIngredients []string) common.MatchResult {
	total := len(recipeIngredients)
	if total == 0 {
		return common.MatchResult{}
	}

	matched := 0
	for _, raw := range recipeIngredients {
		if p.Covers(Normalize(raw)) {
			matched++
		}
	}

	return common.MatchResult{
		MatchScore:         float64(matched) / float64(total),
		MatchedIngredients: matched,
		TotalIngredients:   total,
		MissingIngredients: total - matched,
	}
}

// MatchRecipe 計算單一食譜的比對結果
func (p Pantry) MatchRecipe(r common.Recipe) common.MatchResult {
	result := p.Match(r.Ingredients)
	result.Recipe = r
	return result
}

// MatchIngredients 以食譜食材與可用食材計算比對結果
func MatchIngredients(recipeIngredients, available []string) common.MatchResult {
	return NewPantry(available).Match(recipeIngredients)
}
