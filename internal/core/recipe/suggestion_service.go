package recipe

import (
	"context"
	"time"

	"recipe-matcher/internal/pkg/common"

	"go.uber.org/zap"
)

// ExternalSource 外部食譜來源，失敗或逾時時回傳空集合
type ExternalSource interface {
	Recipes(ctx context.Context, ingredients []string) []common.Recipe
}

// SuggestRequest 推薦請求
type SuggestRequest struct {
	Ingredients []string
	Filters     common.RecipeFilters
	Flavor      common.FlavorProfile
	Diets       []common.Diet
}

// SuggestionService 食譜推薦服務，合併本地目錄與外部來源
type SuggestionService struct {
	search     *SearchService
	external   ExternalSource
	heuristics HeuristicFilter
}

// NewSuggestionService 創建新的食譜推薦服務，external 可為 nil
func NewSuggestionService(search *SearchService, external ExternalSource, heuristics HeuristicFilter) *SuggestionService {
	return &SuggestionService{
		search:     search,
		external:   external,
		heuristics: heuristics,
	}
}

// Suggest 根據現有食材推薦食譜
// 沒有任何食材時不查詢外部來源
func (s *SuggestionService) Suggest(ctx context.Context, req SuggestRequest) []common.Recipe {
	start := time.Now()

	local := s.search.Search(req.Ingredients, req.Filters)

	var external []common.Recipe
	if s.external != nil && NewPantry(req.Ingredients).Len() > 0 {
		external = s.external.Recipes(ctx, req.Ingredients)
	}

	recipes := s.heuristics.Reconcile(local, external, req.Filters, req.Flavor, req.Diets)

	common.LogInfo("食譜推薦完成",
		zap.Int("ingredients", len(req.Ingredients)),
		zap.Int("local", len(local)),
		zap.Int("external", len(external)),
		zap.Int("result", len(recipes)),
		zap.String("flavor", string(req.Flavor)),
		zap.Duration("耗時", time.Since(start)),
	)

	return recipes
}
