package provider

import (
	"context"
	"fmt"
	"strings"

	"recipe-matcher/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

type mealDBResponse struct {
	Meals []map[string]*string `json:"meals"`
}

// MealDB TheMealDB 轉接器：先依食材篩選，再查詢前幾筆的詳細資料
type MealDB struct {
	client      *resty.Client
	detailLimit int
}

// NewMealDB 創建 TheMealDB 轉接器
func NewMealDB(cfg Config) *MealDB {
	return &MealDB{
		client:      newClient(cfg, DefaultMealDBURL),
		detailLimit: cfg.detailLimit(),
	}
}

// Name 來源名稱
func (p *MealDB) Name() string {
	return NameMealDB
}

// Search 依食材搜尋
func (p *MealDB) Search(ctx context.Context, term string) ([]common.Recipe, error) {
	var list mealDBResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("i", term).
		SetResult(&list).
		Get("/filter.php")
	if err := checkResponse(NameMealDB, resp, err); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(list.Meals))
	for _, m := range list.Meals {
		if id := value(m, "idMeal"); id != "" {
			ids = append(ids, id)
		}
	}

	return fetchDetails(ctx, NameMealDB, topIDs(ids, p.detailLimit), p.lookup), nil
}

func (p *MealDB) lookup(ctx context.Context, id string) (*common.Recipe, error) {
	var detail mealDBResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("i", id).
		SetResult(&detail).
		Get("/lookup.php")
	if err := checkResponse(NameMealDB, resp, err); err != nil {
		return nil, err
	}
	if len(detail.Meals) == 0 {
		return nil, fmt.Errorf("mealdb: meal %s not found", id)
	}

	r := convertMeal(detail.Meals[0])
	return &r, nil
}

// convertMeal 將 TheMealDB 的餐點轉為食譜
func convertMeal(m map[string]*string) common.Recipe {
	ingredients := numberedPairs(m, 20)
	instructions := value(m, "strInstructions")

	name := strings.TrimSpace(value(m, "strMeal"))
	if name == "" {
		name = "Unknown Recipe"
	}
	area := value(m, "strArea")
	if area == "" {
		area = "Unknown"
	}

	return common.Recipe{
		ID:           NameMealDB + "-" + value(m, "idMeal"),
		Name:         name,
		Description:  describe(instructions, "Delicious recipe from TheMealDB"),
		Ingredients:  ingredients,
		Instructions: splitNonEmpty(instructions, isLineBreak),
		Cuisine:      value(m, "strArea"),
		Continent:    ContinentForArea(area),
		PrepTime:     defaultPrepTime,
		CookTime:     defaultCookTime,
		Servings:     defaultServings,
		MealType:     MealTypeForCategory(value(m, "strCategory")),
		Nutrition:    EstimateNutrition(ingredients),
		Image:        value(m, "strMealThumb"),
		Source:       NameMealDB,
	}
}
