package recipe

import (
	"sort"

	"recipe-matcher/internal/pkg/common"
)

// SortResults 依缺少食材數遞增、比對分數遞減排序，相同時保留原順序
// 不會修改傳入的切片
func SortResults(results []common.MatchResult) []common.MatchResult {
	sorted := make([]common.MatchResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].MissingIngredients != sorted[j].MissingIngredients {
			return sorted[i].MissingIngredients < sorted[j].MissingIngredients
		}
		return sorted[i].MatchScore > sorted[j].MatchScore
	})
	return sorted
}

// Rank 排序後只回傳食譜
func Rank(results []common.MatchResult) []common.Recipe {
	sorted := SortResults(results)
	recipes := make([]common.Recipe, len(sorted))
	for i, r := range sorted {
		recipes[i] = r.Recipe
	}
	return recipes
}
