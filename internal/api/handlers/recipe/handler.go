// Package recipe 食譜搜尋與推薦的 HTTP 處理器
package recipe

import (
	"context"
	"net/http"

	"recipe-matcher/internal/api/handlers"
	recipeService "recipe-matcher/internal/core/recipe"
	"recipe-matcher/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Searcher 本地目錄搜尋
type Searcher interface {
	SearchResults(available []string, filters common.RecipeFilters) []common.MatchResult
}

// Suggester 多來源推薦
type Suggester interface {
	Suggest(ctx context.Context, req recipeService.SuggestRequest) []common.Recipe
}

// Lookup 依 ID 取得目錄食譜
type Lookup interface {
	Get(id string) (common.Recipe, bool)
}

// IngredientSource 提供目前庫存的食材名稱
type IngredientSource interface {
	IngredientNames() []string
}

// Handler 食譜處理程序
type Handler struct {
	search    Searcher
	suggest   Suggester
	catalog   Lookup
	inventory IngredientSource
}

// NewHandler 創建新的食譜處理程序
func NewHandler(search Searcher, suggest Suggester, catalog Lookup, inventory IngredientSource) *Handler {
	return &Handler{
		search:    search,
		suggest:   suggest,
		catalog:   catalog,
		inventory: inventory,
	}
}

// HandleSearch 以請求中的食材搜尋並排序本地食譜
func (h *Handler) HandleSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondBadRequest(c, err)
		return
	}

	filters, err := req.Filters.ToFilters()
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	results := h.search.SearchResults(req.AvailableIngredients, filters)
	if results == nil {
		results = []common.MatchResult{}
	}

	common.LogInfo("食譜搜尋完成",
		zap.String("request_id", requestid.Get(c)),
		zap.Int("ingredients", len(req.AvailableIngredients)),
		zap.Int("results", len(results)),
	)

	c.JSON(http.StatusOK, SearchResponse{Results: results, Count: len(results)})
}

// HandleSuggest 以庫存食材合併本地與外部來源推薦食譜
func (h *Handler) HandleSuggest(c *gin.Context) {
	var req SuggestRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handlers.RespondBadRequest(c, err)
			return
		}
	}

	filters, flavor, diets, err := req.parse()
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	ingredients := h.inventory.IngredientNames()
	recipes := h.suggest.Suggest(c.Request.Context(), recipeService.SuggestRequest{
		Ingredients: ingredients,
		Filters:     filters,
		Flavor:      flavor,
		Diets:       diets,
	})
	if recipes == nil {
		recipes = []common.Recipe{}
	}
	if ingredients == nil {
		ingredients = []string{}
	}

	c.JSON(http.StatusOK, SuggestResponse{
		Ingredients: ingredients,
		Recipes:     recipes,
		Count:       len(recipes),
	})
}

// HandleGet 取得單一目錄食譜
func (h *Handler) HandleGet(c *gin.Context) {
	r, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		handlers.RespondError(c, common.ErrRecipeNotFound)
		return
	}
	c.JSON(http.StatusOK, r)
}
