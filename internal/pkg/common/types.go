package common

import (
	"fmt"
	"strings"
)

// Continent 食譜所屬地區
type Continent string

const (
	ContinentNorthAmerica   Continent = "North America"
	ContinentCentralAmerica Continent = "Central America"
	ContinentSouthAmerica   Continent = "South America"
	ContinentEurope         Continent = "Europe"
	ContinentEastAsia       Continent = "East Asia"
	ContinentSouthAsia      Continent = "South Asia"
	ContinentAfrica         Continent = "Africa"
	ContinentOceania        Continent = "Oceania"
	ContinentInternational  Continent = "International"
)

// Continents 所有合法地區，依畫面顯示順序
var Continents = []Continent{
	ContinentNorthAmerica,
	ContinentCentralAmerica,
	ContinentSouthAmerica,
	ContinentEurope,
	ContinentEastAsia,
	ContinentSouthAsia,
	ContinentAfrica,
	ContinentOceania,
	ContinentInternational,
}

// IsValid 檢查地區是否合法
func (c Continent) IsValid() bool {
	for _, v := range Continents {
		if c == v {
			return true
		}
	}
	return false
}

// ParseContinent 解析地區（不分大小寫）
func ParseContinent(s string) (Continent, error) {
	for _, v := range Continents {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", NewValidationError(fmt.Sprintf("unknown continent %q", s))
}

// MealType 餐別
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
	MealBeverage  MealType = "beverage"
)

// MealTypes 所有合法餐別
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack, MealBeverage}

// IsValid 檢查餐別是否合法
func (m MealType) IsValid() bool {
	for _, v := range MealTypes {
		if m == v {
			return true
		}
	}
	return false
}

// ParseMealType 解析餐別（不分大小寫）
func ParseMealType(s string) (MealType, error) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", NewValidationError(fmt.Sprintf("unknown meal type %q", s))
	}
	return m, nil
}

// FlavorProfile 口味強度
type FlavorProfile string

const (
	FlavorAny      FlavorProfile = "any"
	FlavorBland    FlavorProfile = "bland"
	FlavorBalanced FlavorProfile = "balanced"
	FlavorBold     FlavorProfile = "bold"
)

// ParseFlavorProfile 解析口味，空字串視為 any
func ParseFlavorProfile(s string) (FlavorProfile, error) {
	switch f := FlavorProfile(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FlavorAny, nil
	case FlavorAny, FlavorBland, FlavorBalanced, FlavorBold:
		return f, nil
	}
	return "", NewValidationError(fmt.Sprintf("unknown flavor profile %q", s))
}

// Diet 飲食限制
type Diet string

const (
	DietDiabetic   Diet = "diabetic"
	DietGlutenFree Diet = "gluten-free"
	DietDairyFree  Diet = "dairy-free"
	DietVegetarian Diet = "vegetarian"
	DietVegan      Diet = "vegan"
)

// Diets 所有支援的飲食限制
var Diets = []Diet{DietDiabetic, DietGlutenFree, DietDairyFree, DietVegetarian, DietVegan}

// ParseDiet 解析飲食限制
func ParseDiet(s string) (Diet, error) {
	d := Diet(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Diets {
		if d == v {
			return d, nil
		}
	}
	return "", NewValidationError(fmt.Sprintf("unknown dietary filter %q", s))
}

// Nutrition 營養資訊（每份）
type Nutrition struct {
	Calories  int  `json:"calories" yaml:"calories"`
	ProteinG  int  `json:"protein_g" yaml:"protein_g"`
	CarbsG    int  `json:"carbs_g" yaml:"carbs_g"`
	FatG      int  `json:"fat_g" yaml:"fat_g"`
	FiberG    *int `json:"fiber_g,omitempty" yaml:"fiber_g,omitempty"`
	Estimated bool `json:"estimated,omitempty" yaml:"-"` // 由食材數量推估，非實際量測
}

// Recipe 食譜
// 本地目錄的 ID 為數字字串，外部來源的 ID 帶有 mealdb-、forkify-、cocktaildb- 前綴
type Recipe struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Description  string    `json:"description" yaml:"description"`
	Ingredients  []string  `json:"ingredients" yaml:"ingredients"`
	Instructions []string  `json:"instructions" yaml:"instructions"`
	Cuisine      string    `json:"cuisine,omitempty" yaml:"cuisine,omitempty"`
	Continent    Continent `json:"continent" yaml:"continent"`
	PrepTime     string    `json:"prep_time,omitempty" yaml:"prep_time,omitempty"`
	CookTime     string    `json:"cook_time,omitempty" yaml:"cook_time,omitempty"`
	Servings     int       `json:"servings,omitempty" yaml:"servings,omitempty"` // 0 表示未知
	MealType     MealType  `json:"meal_type" yaml:"meal_type"`
	Nutrition    Nutrition `json:"nutrition" yaml:"nutrition"`
	Image        string    `json:"image" yaml:"image"`
	Source       string    `json:"source,omitempty" yaml:"-"`
}

// Clone 深拷貝，避免呼叫端改到目錄內的切片
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = append([]string(nil), r.Ingredients...)
	out.Instructions = append([]string(nil), r.Instructions...)
	if r.Nutrition.FiberG != nil {
		fiber := *r.Nutrition.FiberG
		out.Nutrition.FiberG = &fiber
	}
	return out
}

// InventoryItem 庫存品項
type InventoryItem struct {
	ID             string `json:"id"`
	Item           string `json:"item"`
	Quantity       string `json:"quantity,omitempty"`
	Type           string `json:"type,omitempty"`
	Brand          string `json:"brand,omitempty"`
	Classification string `json:"classification,omitempty"`
	Ethnicity      string `json:"ethnicity,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// MatchResult 單一食譜對現有食材的比對結果，每次搜尋重新計算
type MatchResult struct {
	Recipe             Recipe  `json:"recipe"`
	MatchScore         float64 `json:"match_score"`
	MatchedIngredients int     `json:"matched_ingredients"`
	TotalIngredients   int     `json:"total_ingredients"`
	MissingIngredients int     `json:"missing_ingredients"`
}

// RecipeFilters 結構化篩選條件，nil 或空切片表示不限制
type RecipeFilters struct {
	MaxAdditionalIngredients *int        `json:"max_additional_ingredients,omitempty"`
	MinServings              *int        `json:"min_servings,omitempty"`
	MaxServings              *int        `json:"max_servings,omitempty"`
	MealTypes                []MealType  `json:"meal_types,omitempty"`
	Continents               []Continent `json:"continents,omitempty"`
}

// IntPtr 方便建立選填整數欄位
func IntPtr(v int) *int {
	return &v
}
