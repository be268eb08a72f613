// Package provider 外部食譜來源（TheMealDB、Forkify、TheCocktailDB）的 HTTP 轉接器
package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-matcher/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"
)

// 來源名稱，同時作為食譜 ID 前綴
const (
	NameMealDB     = "mealdb"
	NameForkify    = "forkify"
	NameCocktailDB = "cocktaildb"
)

// 預設 API 位址
const (
	DefaultMealDBURL     = "https://www.themealdb.com/api/json/v1/1"
	DefaultForkifyURL    = "https://forkify-api.herokuapp.com/api/v2"
	DefaultCocktailDBURL = "https://www.thecocktaildb.com/api/json/v1/1"
)

// DefaultDetailLimit 每次搜尋最多取得詳細資料的筆數
const DefaultDetailLimit = 5

// Provider 定義外部食譜來源介面
type Provider interface {
	// Name 來源名稱
	Name() string

	// Search 以單一搜尋詞查詢食譜
	Search(ctx context.Context, term string) ([]common.Recipe, error)
}

// Config 外部來源配置
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxRetries  int
	DetailLimit int
}

func (c Config) detailLimit() int {
	if c.DetailLimit <= 0 {
		return DefaultDetailLimit
	}
	return c.DetailLimit
}

// newClient 建立共用設定的 resty 客戶端
func newClient(cfg Config, defaultURL string) *resty.Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(200*time.Millisecond).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "recipe-matcher")
}

// checkResponse 將非 2xx 回應轉為錯誤
func checkResponse(name string, resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%s request failed: %w", name, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%s returned status %d", name, resp.StatusCode())
	}
	return nil
}

// fetchDetails 並行取得詳細資料，失敗的項目直接略過，結果維持 ids 的順序
func fetchDetails(ctx context.Context, name string, ids []string, fetch func(ctx context.Context, id string) (*common.Recipe, error)) []common.Recipe {
	slots := make([]*common.Recipe, len(ids))

	var g errgroup.Group
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			r, err := fetch(ctx, id)
			if err != nil {
				common.LogProviderCall(name+"/detail", id, 0, 0, err)
				return nil
			}
			slots[i] = r
			return nil
		})
	}
	_ = g.Wait()

	recipes := make([]common.Recipe, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			recipes = append(recipes, *r)
		}
	}
	return recipes
}

// topIDs 取前 limit 筆 ID
func topIDs(ids []string, limit int) []string {
	if len(ids) > limit {
		return ids[:limit]
	}
	return ids
}

// numberedPairs 讀取 strIngredient1..n 與 strMeasure1..n，組成「份量 食材」
func numberedPairs(fields map[string]*string, n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		ing := strings.TrimSpace(value(fields, fmt.Sprintf("strIngredient%d", i)))
		if ing == "" {
			continue
		}
		measure := strings.TrimSpace(value(fields, fmt.Sprintf("strMeasure%d", i)))
		if measure == "" {
			out = append(out, ing)
			continue
		}
		out = append(out, strings.TrimSpace(measure+" "+ing))
	}
	return out
}

func value(fields map[string]*string, key string) string {
	if v, ok := fields[key]; ok && v != nil {
		return *v
	}
	return ""
}

// splitNonEmpty 依分隔函式切割並去除空白段落
func splitNonEmpty(s string, sep func(rune) bool) []string {
	parts := strings.FieldsFunc(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isLineBreak(r rune) bool { return r == '\n' || r == '\r' }

func isSentenceEnd(r rune) bool { return r == '.' }
