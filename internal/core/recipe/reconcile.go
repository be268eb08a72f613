package recipe

import (
	"strings"

	"recipe-matcher/internal/pkg/common"
)

// orderedRecipes 以小寫名稱為鍵、保留插入順序的食譜集合
type orderedRecipes struct {
	index map[string]int
	items []common.Recipe
}

func newOrderedRecipes(capacity int) *orderedRecipes {
	return &orderedRecipes{
		index: make(map[string]int, capacity),
		items: make([]common.Recipe, 0, capacity),
	}
}

func (o *orderedRecipes) get(key string) (*common.Recipe, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return &o.items[i], true
}

// add 鍵已存在時不覆蓋
func (o *orderedRecipes) add(key string, r common.Recipe) bool {
	if _, ok := o.index[key]; ok {
		return false
	}
	o.index[key] = len(o.items)
	o.items = append(o.items, r)
	return true
}

func nameKey(name string) string {
	return strings.ToLower(name)
}

func hasImage(r common.Recipe) bool {
	return strings.TrimSpace(r.Image) != ""
}

// Reconcile 使用預設關鍵字表合併本地與外部食譜
func Reconcile(local, external []common.Recipe, filters common.RecipeFilters, flavor common.FlavorProfile, diets []common.Diet) []common.Recipe {
	return DefaultHeuristicFilter.Reconcile(local, external, filters, flavor, diets)
}

// Reconcile 合併本地與外部食譜
//
// 本地食譜先放入，同名（不分大小寫）以先出現者為準。外部食譜只套用份量、餐別、地區條件；
// 新名稱直接加入，已存在的名稱只在原本沒有圖片時補上外部圖片，其餘內容不變。
// 最後依口味與飲食限制篩選，輸出維持插入順序。
func (h HeuristicFilter) Reconcile(local, external []common.Recipe, filters common.RecipeFilters, flavor common.FlavorProfile, diets []common.Diet) []common.Recipe {
	merged := newOrderedRecipes(len(local) + len(external))
	for _, r := range local {
		merged.add(nameKey(r.Name), r)
	}

	for _, ext := range external {
		if !PassesRecipeFilters(ext, filters) {
			continue
		}
		key := nameKey(ext.Name)
		existing, ok := merged.get(key)
		if !ok {
			merged.add(key, ext)
			continue
		}
		if !hasImage(*existing) && hasImage(ext) {
			existing.Image = ext.Image
		}
	}

	out := make([]common.Recipe, 0, len(merged.items))
	for _, r := range merged.items {
		if h.PassesHeuristicFilters(r, flavor, diets) {
			out = append(out, r)
		}
	}
	return out
}
