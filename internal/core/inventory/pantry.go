package inventory

import (
	"context"
	"fmt"
	"strings"

	"recipe-matcher/internal/pkg/common"

	"github.com/sahilm/fuzzy"
)

// CommonPantryItems 快速新增用的常見食材
var CommonPantryItems = []common.InventoryItem{
	{Item: "Onion", Quantity: "1", Type: "produce"},
	{Item: "Garlic", Quantity: "2 cloves", Type: "produce"},
	{Item: "Tomato", Quantity: "2", Type: "produce"},
	{Item: "Potatoes", Quantity: "2", Type: "produce"},
	{Item: "Rice", Quantity: "1 cup", Type: "grain"},
	{Item: "Pasta", Quantity: "1 lb", Type: "grain"},
	{Item: "Chicken breast", Quantity: "1 lb", Type: "protein"},
	{Item: "Eggs", Quantity: "6", Type: "protein"},
	{Item: "Milk", Quantity: "1 qt", Type: "dairy"},
	{Item: "Butter", Quantity: "2 tbsp", Type: "dairy"},
	{Item: "Black beans", Quantity: "1 can", Type: "pantry"},
	{Item: "Lentils", Quantity: "1 cup", Type: "pantry"},
	{Item: "Coconut milk", Quantity: "1 can", Type: "pantry"},
}

type pantrySource []common.InventoryItem

func (p pantrySource) String(i int) string { return p[i].Item }

func (p pantrySource) Len() int { return len(p) }

// SuggestPantryItems 以模糊比對搜尋常見食材，query 為空時回傳完整清單
func SuggestPantryItems(query string, limit int) []common.InventoryItem {
	query = strings.TrimSpace(query)

	var out []common.InventoryItem
	if query == "" {
		out = append(out, CommonPantryItems...)
	} else {
		for _, m := range fuzzy.FindFrom(query, pantrySource(CommonPantryItems)) {
			out = append(out, CommonPantryItems[m.Index])
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// AddPantryItem 將常見食材加入庫存，名稱不分大小寫
func (s *Service) AddPantryItem(ctx context.Context, name string) (common.InventoryItem, error) {
	name = strings.TrimSpace(name)
	for _, p := range CommonPantryItems {
		if strings.EqualFold(p.Item, name) {
			return s.Add(ctx, p)
		}
	}
	return common.InventoryItem{}, common.NewValidationError(fmt.Sprintf("unknown pantry item %q", name))
}
