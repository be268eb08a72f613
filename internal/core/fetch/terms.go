// Package fetch 外部食譜查詢：搜尋詞產生、多來源並行查詢與查詢週期管理
package fetch

import (
	"strings"

	"recipe-matcher/internal/core/recipe"
)

// MaxQueryTerms 每個查詢週期最多使用的搜尋詞數量
const MaxQueryTerms = 3

// canonicalTerms 依序比對，先命中者為準
var canonicalTerms = []struct {
	keywords []string
	term     string
}{
	{[]string{"chicken"}, "chicken"},
	{[]string{"pasta", "noodle"}, "pasta"},
	{[]string{"rice"}, "rice"},
	{[]string{"pork"}, "pork"},
	{[]string{"beef"}, "beef"},
	{[]string{"tomato"}, "tomato"},
	{[]string{"potato"}, "potato"},
	{[]string{"egg"}, "egg"},
	{[]string{"garlic"}, "garlic"},
	{[]string{"onion"}, "onion"},
	{[]string{"pepper"}, "pepper"},
	{[]string{"carrot"}, "carrot"},
	{[]string{"bean"}, "bean"},
	{[]string{"chickpea"}, "chickpea"},
	{[]string{"avocado"}, "avocado"},
}

// SearchTerm 將食材名稱轉為外部來源的搜尋詞，沒有對應時取第一個單字
func SearchTerm(ingredient string) string {
	n := recipe.Normalize(ingredient)
	if n == "" {
		return ""
	}
	for _, c := range canonicalTerms {
		for _, kw := range c.keywords {
			if strings.Contains(n, kw) {
				return c.term
			}
		}
	}
	return strings.Fields(n)[0]
}

// QueryTerms 產生去重後的搜尋詞，保留第一次出現的順序，最多 limit 個
// limit 小於等於 0 或大於 MaxQueryTerms 時使用 MaxQueryTerms
func QueryTerms(ingredients []string, limit int) []string {
	if limit <= 0 || limit > MaxQueryTerms {
		limit = MaxQueryTerms
	}

	seen := make(map[string]bool, len(ingredients))
	terms := make([]string, 0, limit)
	for _, ing := range ingredients {
		term := SearchTerm(ing)
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		terms = append(terms, term)
		if len(terms) == limit {
			break
		}
	}
	return terms
}
