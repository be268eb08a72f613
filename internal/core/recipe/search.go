package recipe

import (
	"recipe-matcher/internal/pkg/common"

	"go.uber.org/zap"
)

// CatalogSource 唯讀的本地食譜來源
type CatalogSource interface {
	All() []common.Recipe
}

// SearchService 本地目錄搜尋
type SearchService struct {
	source CatalogSource
}

// NewSearchService 創建搜尋服務
func NewSearchService(source CatalogSource) *SearchService {
	return &SearchService{source: source}
}

// SearchResults 比對、篩選後排序，保留比對分數
func (s *SearchService) SearchResults(available []string, filters common.RecipeFilters) []common.MatchResult {
	if s == nil || s.source == nil {
		return nil
	}

	pantry := NewPantry(available)
	recipes := s.source.All()
	results := make([]common.MatchResult, 0, len(recipes))
	for _, r := range recipes {
		result := pantry.MatchRecipe(r)
		if PassesStructuredFilters(result, filters) {
			results = append(results, result)
		}
	}

	common.LogDebug("本地目錄搜尋完成",
		zap.Int("available", pantry.Len()),
		zap.Int("catalog", len(recipes)),
		zap.Int("matched", len(results)),
	)

	return SortResults(results)
}

// Search 與 SearchResults 相同，只回傳食譜
func (s *SearchService) Search(available []string, filters common.RecipeFilters) []common.Recipe {
	results := s.SearchResults(available, filters)
	recipes := make([]common.Recipe, len(results))
	for i, r := range results {
		recipes[i] = r.Recipe
	}
	return recipes
}
