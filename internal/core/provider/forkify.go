package provider

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"recipe-matcher/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

type forkifySearchResponse struct {
	Data struct {
		Recipes []struct {
			ID string `json:"id"`
		} `json:"recipes"`
	} `json:"data"`
}

type forkifyIngredient struct {
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
}

type forkifyRecipe struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Publisher   string              `json:"publisher"`
	SourceURL   string              `json:"source_url"`
	ImageURL    string              `json:"image_url"`
	Servings    int                 `json:"servings"`
	CookingTime int                 `json:"cooking_time"`
	Ingredients []forkifyIngredient `json:"ingredients"`
}

type forkifyDetailResponse struct {
	Data struct {
		Recipe *forkifyRecipe `json:"recipe"`
	} `json:"data"`
}

// Forkify Forkify 轉接器
// 搜尋結果沒有食材，因此前幾筆會再查詢詳細資料
type Forkify struct {
	client      *resty.Client
	detailLimit int
}

// NewForkify 創建 Forkify 轉接器
func NewForkify(cfg Config) *Forkify {
	return &Forkify{
		client:      newClient(cfg, DefaultForkifyURL),
		detailLimit: cfg.detailLimit(),
	}
}

// Name 來源名稱
func (p *Forkify) Name() string {
	return NameForkify
}

// Search 以關鍵字搜尋
func (p *Forkify) Search(ctx context.Context, term string) ([]common.Recipe, error) {
	var list forkifySearchResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("search", term).
		SetResult(&list).
		Get("/recipes")
	if err := checkResponse(NameForkify, resp, err); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(list.Data.Recipes))
	for _, r := range list.Data.Recipes {
		if r.ID != "" {
			ids = append(ids, r.ID)
		}
	}

	return fetchDetails(ctx, NameForkify, topIDs(ids, p.detailLimit), p.lookup), nil
}

func (p *Forkify) lookup(ctx context.Context, id string) (*common.Recipe, error) {
	var detail forkifyDetailResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&detail).
		Get("/recipes/{id}")
	if err := checkResponse(NameForkify, resp, err); err != nil {
		return nil, err
	}
	if detail.Data.Recipe == nil {
		return nil, fmt.Errorf("forkify: recipe %s not found", id)
	}

	r := convertForkify(*detail.Data.Recipe)
	return &r, nil
}

func formatQuantity(q *float64) string {
	if q == nil || *q == 0 {
		return ""
	}
	return strconv.FormatFloat(*q, 'f', -1, 64)
}

// convertForkify 將 Forkify 食譜轉為食譜
func convertForkify(f forkifyRecipe) common.Recipe {
	ingredients := make([]string, 0, len(f.Ingredients))
	for _, ing := range f.Ingredients {
		line := strings.Join(strings.Fields(formatQuantity(ing.Quantity)+" "+ing.Unit+" "+ing.Description), " ")
		if line != "" {
			ingredients = append(ingredients, line)
		}
	}

	var instructions []string
	if f.SourceURL != "" {
		instructions = []string{"See full directions at " + f.SourceURL}
	}

	name := strings.TrimSpace(f.Title)
	if name == "" {
		name = "Unknown"
	}
	description := f.Publisher
	if description == "" {
		description = "Delicious recipe"
	}
	cookTime := defaultCookTime
	if f.CookingTime > 0 {
		cookTime = fmt.Sprintf("%d min", f.CookingTime)
	}
	servings := f.Servings
	if servings <= 0 {
		servings = defaultServings
	}

	return common.Recipe{
		ID:           NameForkify + "-" + f.ID,
		Name:         name,
		Description:  description,
		Ingredients:  ingredients,
		Instructions: instructions,
		Continent:    common.ContinentInternational,
		PrepTime:     defaultPrepTime,
		CookTime:     cookTime,
		Servings:     servings,
		MealType:     common.MealDinner,
		Nutrition:    EstimateNutrition(ingredients),
		Image:        f.ImageURL,
		Source:       NameForkify,
	}
}
