package provider

import (
	"context"
	"fmt"
	"strings"

	"recipe-matcher/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

type cocktailDBResponse struct {
	Drinks []map[string]*string `json:"drinks"`
}

// CocktailDB TheCocktailDB 轉接器，回傳的食譜一律為飲品
type CocktailDB struct {
	client      *resty.Client
	detailLimit int
}

// NewCocktailDB 創建 TheCocktailDB 轉接器
func NewCocktailDB(cfg Config) *CocktailDB {
	return &CocktailDB{
		client:      newClient(cfg, DefaultCocktailDBURL),
		detailLimit: cfg.detailLimit(),
	}
}

// Name 來源名稱
func (p *CocktailDB) Name() string {
	return NameCocktailDB
}

// Search 依食材搜尋飲品
func (p *CocktailDB) Search(ctx context.Context, term string) ([]common.Recipe, error) {
	var list cocktailDBResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("i", term).
		SetResult(&list).
		Get("/filter.php")
	if err := checkResponse(NameCocktailDB, resp, err); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(list.Drinks))
	for _, d := range list.Drinks {
		if id := value(d, "idDrink"); id != "" {
			ids = append(ids, id)
		}
	}

	return fetchDetails(ctx, NameCocktailDB, topIDs(ids, p.detailLimit), p.lookup), nil
}

func (p *CocktailDB) lookup(ctx context.Context, id string) (*common.Recipe, error) {
	var detail cocktailDBResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("i", id).
		SetResult(&detail).
		Get("/lookup.php")
	if err := checkResponse(NameCocktailDB, resp, err); err != nil {
		return nil, err
	}
	if len(detail.Drinks) == 0 {
		return nil, fmt.Errorf("cocktaildb: drink %s not found", id)
	}

	r := convertDrink(detail.Drinks[0])
	return &r, nil
}

// convertDrink 將 TheCocktailDB 的飲品轉為食譜
func convertDrink(d map[string]*string) common.Recipe {
	instructions := value(d, "strInstructions")

	name := strings.TrimSpace(value(d, "strDrink"))
	if name == "" {
		name = "Unknown"
	}
	description := strings.TrimSpace(instructions)
	if description == "" {
		description = "Refreshing beverage"
	} else {
		runes := []rune(description)
		if len(runes) > 150 {
			description = string(runes[:150])
		}
	}

	return common.Recipe{
		ID:           NameCocktailDB + "-" + value(d, "idDrink"),
		Name:         name,
		Description:  description,
		Ingredients:  numberedPairs(d, 15),
		Instructions: splitNonEmpty(instructions, isSentenceEnd),
		Cuisine:      value(d, "strCategory"),
		Continent:    common.ContinentInternational,
		PrepTime:     "5 min",
		CookTime:     "0 min",
		Servings:     1,
		MealType:     common.MealBeverage,
		Nutrition:    beverageNutrition(),
		Image:        value(d, "strDrinkThumb"),
		Source:       NameCocktailDB,
	}
}
