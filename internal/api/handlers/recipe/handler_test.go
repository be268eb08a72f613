package recipe

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-matcher/internal/api/handlers"
	"recipe-matcher/internal/core/catalog"
	recipeService "recipe-matcher/internal/core/recipe"
	"recipe-matcher/internal/pkg/common"
)

type staticInventory []string

func (s staticInventory) IngredientNames() []string { return s }

func newRouter(t *testing.T, inventory staticInventory) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := catalog.LoadDefault()
	require.NoError(t, err)

	search := recipeService.NewSearchService(c)
	suggest := recipeService.NewSuggestionService(search, nil, recipeService.DefaultHeuristicFilter)
	h := NewHandler(search, suggest, c, inventory)

	r := gin.New()
	r.POST("/recipes/search", h.HandleSearch)
	r.POST("/recipes/suggest", h.HandleSuggest)
	r.GET("/recipes/:id", h.HandleGet)
	return r
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHandleSearchStrictBudget(t *testing.T) {
	r := newRouter(t, nil)

	w := perform(r, http.MethodPost, "/recipes/search", `{
		"available_ingredients": ["Garlic", "Extra Virgin Olive Oil", "Penne Rigate Pasta", "Butter Sticks"],
		"filters": {"max_additional_ingredients": 0}
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	require.NoError(t, common.ParseJSONBytes(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, len(resp.Results), resp.Count)

	var ids []string
	for _, res := range resp.Results {
		ids = append(ids, res.Recipe.ID)
		assert.Equal(t, 0, res.MissingIngredients)
	}
	assert.Contains(t, ids, "1")
	assert.NotContains(t, ids, "2")
}

func TestHandleSearchEmptyIngredients(t *testing.T) {
	r := newRouter(t, nil)

	w := perform(r, http.MethodPost, "/recipes/search", `{"available_ingredients": []}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results": [], "count": 0}`, w.Body.String())
}

func TestHandleSearchValidation(t *testing.T) {
	r := newRouter(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"negative budget", `{"filters": {"max_additional_ingredients": -1}}`},
		{"negative servings", `{"filters": {"min_servings": -2}}`},
		{"unknown meal type", `{"filters": {"meal_types": ["brunch"]}}`},
		{"unknown continent", `{"filters": {"continents": ["Atlantis"]}}`},
		{"malformed json", `{"available_ingredients": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, http.MethodPost, "/recipes/search", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body handlers.ErrorBody
			require.NoError(t, common.ParseJSONBytes(w.Body.Bytes(), &body))
			assert.Equal(t, common.ErrCodeInvalidRequest, body.Error.Code)
		})
	}
}

func TestHandleSuggestUsesInventory(t *testing.T) {
	r := newRouter(t, staticInventory{"Garlic", "Extra Virgin Olive Oil", "Penne Rigate Pasta", "Butter Sticks"})

	w := perform(r, http.MethodPost, "/recipes/suggest", `{
		"filters": {"max_additional_ingredients": 0},
		"flavor_profile": "any",
		"dietary_filters": ["vegetarian"]
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SuggestResponse
	require.NoError(t, common.ParseJSONBytes(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Ingredients, 4)
	require.NotEmpty(t, resp.Recipes)
	assert.Equal(t, "1", resp.Recipes[0].ID)
}

func TestHandleSuggestEmptyBody(t *testing.T) {
	r := newRouter(t, nil)

	w := perform(r, http.MethodPost, "/recipes/suggest", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SuggestResponse
	require.NoError(t, common.ParseJSONBytes(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Ingredients)
}

func TestHandleSuggestValidation(t *testing.T) {
	r := newRouter(t, nil)

	for _, body := range []string{
		`{"flavor_profile": "umami"}`,
		`{"dietary_filters": ["keto"]}`,
		`{"filters": {"max_servings": -1}}`,
	} {
		w := perform(r, http.MethodPost, "/recipes/suggest", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestHandleGet(t *testing.T) {
	r := newRouter(t, nil)

	w := perform(r, http.MethodGet, "/recipes/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got common.Recipe
	require.NoError(t, common.ParseJSONBytes(w.Body.Bytes(), &got))
	assert.Equal(t, "Garlic Pasta", got.Name)

	w = perform(r, http.MethodGet, "/recipes/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "RECIPE_NOT_FOUND")
}

func TestFiltersRequestToFilters(t *testing.T) {
	f, err := FiltersRequest{
		MaxAdditionalIngredients: common.IntPtr(2),
		MealTypes:                []string{"Dinner", "lunch"},
		Continents:               []string{"east asia"},
	}.ToFilters()
	require.NoError(t, err)
	assert.Equal(t, 2, *f.MaxAdditionalIngredients)
	assert.Equal(t, []common.MealType{common.MealDinner, common.MealLunch}, f.MealTypes)
	assert.Equal(t, []common.Continent{common.ContinentEastAsia}, f.Continents)

	_, err = FiltersRequest{MaxServings: common.IntPtr(-1)}.ToFilters()
	assert.True(t, common.IsValidationError(err))
}
