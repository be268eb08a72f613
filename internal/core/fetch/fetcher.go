package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"recipe-matcher/internal/core/cache"
	"recipe-matcher/internal/core/image"
	"recipe-matcher/internal/core/provider"
	"recipe-matcher/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fetcher 對所有來源與搜尋詞並行查詢，個別失敗不影響其他結果
type Fetcher struct {
	providers []provider.Provider
	store     cache.Store
	images    *image.Resolver
	maxTerms  int
}

// NewFetcher 創建查詢器，store 與 images 可為 nil
func NewFetcher(providers []provider.Provider, store cache.Store, images *image.Resolver, maxTerms int) *Fetcher {
	return &Fetcher{
		providers: providers,
		store:     store,
		images:    images,
		maxTerms:  maxTerms,
	}
}

// Providers 已啟用的來源名稱
func (f *Fetcher) Providers() []string {
	names := make([]string, len(f.providers))
	for i, p := range f.providers {
		names[i] = p.Name()
	}
	return names
}

// Fetch 查詢外部食譜
//
// 結果依來源順序、再依搜尋詞順序排列，同名（不分大小寫）只保留第一筆。
// 所有查詢都完成後才回傳；失敗的查詢只記錄日誌。
func (f *Fetcher) Fetch(ctx context.Context, ingredients []string) []common.Recipe {
	terms := QueryTerms(ingredients, f.maxTerms)
	if len(terms) == 0 || len(f.providers) == 0 {
		return nil
	}

	start := time.Now()
	slots := make([][]common.Recipe, len(f.providers)*len(terms))

	var g errgroup.Group
	for pi, p := range f.providers {
		for ti, term := range terms {
			idx := pi*len(terms) + ti
			p, term := p, term
			g.Go(func() error {
				slots[idx] = f.search(ctx, p, term)
				return nil
			})
		}
	}
	_ = g.Wait()

	seen := make(map[string]bool)
	recipes := make([]common.Recipe, 0)
	for _, slot := range slots {
		for _, r := range slot {
			key := strings.ToLower(r.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			recipes = append(recipes, r)
		}
	}

	filled := f.images.Apply(recipes)

	common.LogInfo("外部食譜查詢完成",
		zap.Strings("terms", terms),
		zap.Int("providers", len(f.providers)),
		zap.Int("recipes", len(recipes)),
		zap.Int("fallback_images", filled),
		zap.Duration("耗時", time.Since(start)),
	)

	return recipes
}

func cacheKey(providerName, term string) string {
	return "provider:" + providerName + ":" + term
}

// search 單一來源與搜尋詞，先查快取
func (f *Fetcher) search(ctx context.Context, p provider.Provider, term string) []common.Recipe {
	key := cacheKey(p.Name(), term)
	if cached, ok := f.fromCache(ctx, key); ok {
		return cached
	}

	start := time.Now()
	recipes, err := p.Search(ctx, term)
	common.LogProviderCall(p.Name(), term, len(recipes), time.Since(start), err)
	if err != nil {
		return nil
	}

	f.toCache(ctx, key, recipes)
	return recipes
}

func (f *Fetcher) fromCache(ctx context.Context, key string) ([]common.Recipe, bool) {
	if f.store == nil {
		return nil, false
	}
	data, err := f.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			common.LogWarn("讀取快取失敗", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var recipes []common.Recipe
	if err := common.ParseJSONBytes(data, &recipes); err != nil {
		common.LogWarn("快取內容無法解析", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return recipes, true
}

func (f *Fetcher) toCache(ctx context.Context, key string, recipes []common.Recipe) {
	if f.store == nil {
		return
	}
	data, err := json.Marshal(recipes)
	if err != nil {
		common.LogWarn("快取序列化失敗", zap.String("key", key), zap.Error(err))
		return
	}
	if err := f.store.Set(ctx, key, data); err != nil {
		common.LogWarn("寫入快取失敗", zap.String("key", key), zap.Error(err))
	}
}
