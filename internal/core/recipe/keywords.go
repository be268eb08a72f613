package recipe

import "recipe-matcher/internal/pkg/common"

// 關鍵字分類名稱
const (
	CategoryBold      = "bold"
	CategoryBlandBase = "bland_base"
	CategoryMeat      = "meat"
	CategoryDairy     = "dairy"
	CategoryEgg       = "egg"
	CategoryGluten    = "gluten"
	CategorySweet     = "sweet"
)

// KeywordTables 口味與飲食啟發式篩選使用的關鍵字表
//
// Categories 是分類到關鍵字的對照，Diets 列出每種飲食限制會排除的分類。
// 調整關鍵字時請一併提升 Version，方便對照搜尋結果的差異。
type KeywordTables struct {
	Version    string
	Categories map[string][]string
	Diets      map[common.Diet][]string
}

// DefaultKeywords 預設關鍵字表
var DefaultKeywords = KeywordTables{
	Version: "v1",
	Categories: map[string][]string{
		CategoryBold: {
			"chili", "chilli", "spicy", "curry", "harissa", "jerk", "peri peri",
			"sichuan", "gochujang", "kimchi", "garlic", "ginger",
		},
		CategoryBlandBase: {"potato", "rice", "pasta", "chicken", "milk"},
		CategoryMeat:      {"chicken", "beef", "pork", "lamb", "shrimp", "fish", "bacon", "sausage"},
		CategoryDairy:     {"milk", "cheese", "butter", "cream", "yogurt"},
		CategoryEgg:       {"egg"},
		CategoryGluten:    {"flour", "pasta", "noodle", "bread", "tortilla", "wheat", "barley"},
		CategorySweet:     {"sugar", "honey", "syrup", "cake", "dessert"},
	},
	Diets: map[common.Diet][]string{
		common.DietDiabetic:   {CategorySweet},
		common.DietGlutenFree: {CategoryGluten},
		common.DietDairyFree:  {CategoryDairy},
		common.DietVegetarian: {CategoryMeat},
		common.DietVegan:      {CategoryMeat, CategoryDairy, CategoryEgg, CategorySweet},
	},
}

// Words 取得分類的關鍵字
func (k KeywordTables) Words(category string) []string {
	return k.Categories[category]
}
