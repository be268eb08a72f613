package provider

import (
	"math"
	"strings"

	"recipe-matcher/internal/pkg/common"
)

// 外部來源沒有提供時使用的預設值
const (
	defaultServings = 4
	defaultPrepTime = "15 min"
	defaultCookTime = "30 min"
)

var estimateMeatWords = []string{"chicken", "beef", "pork"}

// EstimateNutrition 依食材數量與是否含肉粗略推估每份營養
func EstimateNutrition(ingredients []string) common.Nutrition {
	n := len(ingredients)
	hasMeat := false
	for _, ing := range ingredients {
		lower := strings.ToLower(ing)
		for _, w := range estimateMeatWords {
			if strings.Contains(lower, w) {
				hasMeat = true
				break
			}
		}
	}

	calories, protein, fat := 300+20*n, 20, 12
	if hasMeat {
		calories += 100
		protein = 30
		fat = 18
	}
	fiber := int(math.Round(3 + 0.5*float64(n)))

	return common.Nutrition{
		Calories:  calories,
		ProteinG:  protein,
		CarbsG:    40 + 5*n,
		FatG:      fat,
		FiberG:    common.IntPtr(fiber),
		Estimated: true,
	}
}

// beverageNutrition 飲品固定的營養估計值
func beverageNutrition() common.Nutrition {
	return common.Nutrition{
		Calories:  150,
		CarbsG:    15,
		FiberG:    common.IntPtr(0),
		Estimated: true,
	}
}

var areaContinents = map[string]common.Continent{
	"American":   common.ContinentNorthAmerica,
	"British":    common.ContinentEurope,
	"Canadian":   common.ContinentNorthAmerica,
	"Chinese":    common.ContinentEastAsia,
	"Croatian":   common.ContinentEurope,
	"Dutch":      common.ContinentEurope,
	"Egyptian":   common.ContinentAfrica,
	"Filipino":   common.ContinentEastAsia,
	"French":     common.ContinentEurope,
	"Greek":      common.ContinentEurope,
	"Indian":     common.ContinentSouthAsia,
	"Irish":      common.ContinentEurope,
	"Italian":    common.ContinentEurope,
	"Jamaican":   common.ContinentCentralAmerica,
	"Japanese":   common.ContinentEastAsia,
	"Kenyan":     common.ContinentAfrica,
	"Malaysian":  common.ContinentEastAsia,
	"Mexican":    common.ContinentCentralAmerica,
	"Moroccan":   common.ContinentAfrica,
	"Polish":     common.ContinentEurope,
	"Portuguese": common.ContinentEurope,
	"Russian":    common.ContinentEurope,
	"Spanish":    common.ContinentEurope,
	"Thai":       common.ContinentEastAsia,
	"Tunisian":   common.ContinentAfrica,
	"Turkish":    common.ContinentEurope,
	"Unknown":    common.ContinentInternational,
	"Vietnamese": common.ContinentEastAsia,
}

// ContinentForArea 將 TheMealDB 的 strArea 對應到地區，未知時為 International
func ContinentForArea(area string) common.Continent {
	if c, ok := areaContinents[area]; ok {
		return c
	}
	return common.ContinentInternational
}

// MealTypeForCategory 將 TheMealDB 的 strCategory 對應到餐別，其餘一律視為晚餐
func MealTypeForCategory(category string) common.MealType {
	switch category {
	case "Breakfast":
		return common.MealBreakfast
	case "Dessert", "Side", "Starter":
		return common.MealSnack
	default:
		return common.MealDinner
	}
}

// describe 以說明文字前 150 字作為描述
func describe(instructions, fallback string) string {
	instructions = strings.TrimSpace(instructions)
	if instructions == "" {
		return fallback
	}
	runes := []rune(instructions)
	if len(runes) > 150 {
		runes = runes[:150]
	}
	return string(runes) + "..."
}
