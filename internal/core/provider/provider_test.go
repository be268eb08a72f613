package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-matcher/internal/pkg/common"
)

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func testConfig(url string) Config {
	return Config{BaseURL: url, Timeout: 2 * time.Second, DetailLimit: 2}
}

func TestMealDBSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/filter.php":
			assert.Equal(t, "chicken", r.URL.Query().Get("i"))
			writeJSON(t, w, map[string]interface{}{"meals": []map[string]string{
				{"idMeal": "100"}, {"idMeal": "200"}, {"idMeal": "300"},
			}})
		case "/lookup.php":
			id := r.URL.Query().Get("i")
			if id == "200" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			writeJSON(t, w, map[string]interface{}{"meals": []map[string]interface{}{{
				"idMeal":          id,
				"strMeal":         "Chicken Handi",
				"strArea":         "Indian",
				"strCategory":     "Chicken",
				"strInstructions": "Heat oil.\r\nAdd chicken.\r\n\r\nServe.",
				"strMealThumb":    "https://example.com/handi.jpg",
				"strIngredient1":  "Chicken",
				"strMeasure1":     "1.2 kg",
				"strIngredient2":  "Onion",
				"strMeasure2":     "",
				"strIngredient3":  "",
				"strMeasure3":     nil,
			}}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := NewMealDB(testConfig(srv.URL))
	recipes, err := p.Search(context.Background(), "chicken")
	require.NoError(t, err)

	// 第三筆超過 DetailLimit，第二筆詳細資料失敗被略過
	require.Len(t, recipes, 1)
	r := recipes[0]
	assert.Equal(t, "mealdb-100", r.ID)
	assert.Equal(t, "Chicken Handi", r.Name)
	assert.Equal(t, []string{"1.2 kg Chicken", "Onion"}, r.Ingredients)
	assert.Equal(t, []string{"Heat oil.", "Add chicken.", "Serve."}, r.Instructions)
	assert.Equal(t, common.ContinentSouthAsia, r.Continent)
	assert.Equal(t, common.MealDinner, r.MealType)
	assert.Equal(t, 4, r.Servings)
	assert.Equal(t, NameMealDB, r.Source)
	assert.True(t, r.Nutrition.Estimated)
	assert.Contains(t, r.Description, "...")
}

func TestMealDBNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{"meals": nil})
	}))
	defer srv.Close()

	recipes, err := NewMealDB(testConfig(srv.URL)).Search(context.Background(), "unobtainium")
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestMealDBServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewMealDB(testConfig(srv.URL)).Search(context.Background(), "chicken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestForkifySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes":
			assert.Equal(t, "pasta", r.URL.Query().Get("search"))
			writeJSON(t, w, map[string]interface{}{"data": map[string]interface{}{"recipes": []map[string]string{
				{"id": "abc", "title": "Pasta Salad"},
			}}})
		case "/recipes/abc":
			writeJSON(t, w, map[string]interface{}{"data": map[string]interface{}{"recipe": map[string]interface{}{
				"id":           "abc",
				"title":        "Pasta Salad",
				"publisher":    "Closet Cooking",
				"source_url":   "https://example.com/pasta-salad",
				"image_url":    "https://example.com/pasta.jpg",
				"servings":     2,
				"cooking_time": 45,
				"ingredients": []map[string]interface{}{
					{"quantity": 0.5, "unit": "lb", "description": "pasta"},
					{"quantity": nil, "unit": "", "description": "salt"},
				},
			}}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	recipes, err := NewForkify(testConfig(srv.URL)).Search(context.Background(), "pasta")
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.Equal(t, "forkify-abc", r.ID)
	assert.Equal(t, []string{"0.5 lb pasta", "salt"}, r.Ingredients)
	assert.Equal(t, "45 min", r.CookTime)
	assert.Equal(t, 2, r.Servings)
	assert.Equal(t, "Closet Cooking", r.Description)
	assert.Equal(t, common.ContinentInternational, r.Continent)
	assert.Equal(t, common.MealDinner, r.MealType)
}

func TestCocktailDBSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/filter.php":
			writeJSON(t, w, map[string]interface{}{"drinks": []map[string]string{{"idDrink": "11000"}}})
		case "/lookup.php":
			writeJSON(t, w, map[string]interface{}{"drinks": []map[string]interface{}{{
				"idDrink":         "11000",
				"strDrink":        "Mojito",
				"strCategory":     "Cocktail",
				"strInstructions": "Muddle mint. Add rum. Top with soda.",
				"strDrinkThumb":   "https://example.com/mojito.jpg",
				"strIngredient1":  "Light rum",
				"strMeasure1":     "2-3 oz ",
				"strIngredient2":  "Mint",
				"strMeasure2":     nil,
			}}})
		}
	}))
	defer srv.Close()

	recipes, err := NewCocktailDB(testConfig(srv.URL)).Search(context.Background(), "rum")
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.Equal(t, "cocktaildb-11000", r.ID)
	assert.Equal(t, common.MealBeverage, r.MealType)
	assert.Equal(t, 1, r.Servings)
	assert.Equal(t, "Cocktail", r.Cuisine)
	assert.Equal(t, []string{"2-3 oz Light rum", "Mint"}, r.Ingredients)
	assert.Equal(t, []string{"Muddle mint", "Add rum", "Top with soda"}, r.Instructions)
	assert.Equal(t, 150, r.Nutrition.Calories)
}

func TestEstimateNutrition(t *testing.T) {
	veg := EstimateNutrition([]string{"Onion", "Carrot", "Rice", "Beans"})
	assert.Equal(t, 380, veg.Calories)
	assert.Equal(t, 20, veg.ProteinG)
	assert.Equal(t, 60, veg.CarbsG)
	assert.Equal(t, 12, veg.FatG)
	require.NotNil(t, veg.FiberG)
	assert.Equal(t, 5, *veg.FiberG)

	meat := EstimateNutrition([]string{"Beef mince", "Onion", "Tomato"})
	assert.Equal(t, 460, meat.Calories)
	assert.Equal(t, 30, meat.ProteinG)
	assert.Equal(t, 18, meat.FatG)
	assert.Equal(t, 5, *meat.FiberG)
}

func TestCategoryAndAreaMaps(t *testing.T) {
	assert.Equal(t, common.MealBreakfast, MealTypeForCategory("Breakfast"))
	assert.Equal(t, common.MealSnack, MealTypeForCategory("Dessert"))
	assert.Equal(t, common.MealSnack, MealTypeForCategory("Starter"))
	assert.Equal(t, common.MealDinner, MealTypeForCategory("Seafood"))

	assert.Equal(t, common.ContinentCentralAmerica, ContinentForArea("Mexican"))
	assert.Equal(t, common.ContinentInternational, ContinentForArea("Atlantean"))
}
