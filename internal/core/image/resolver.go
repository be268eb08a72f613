// Package image 外部食譜圖片的替代網址
package image

import (
	"fmt"
	"net/url"
	"strings"

	"recipe-matcher/internal/pkg/common"
)

// DefaultFallbackURL 以食譜名稱搜尋圖片的網址樣板
const DefaultFallbackURL = "https://source.unsplash.com/800x600/?%s"

// Resolver 替代圖片產生器
type Resolver struct {
	enabled bool
	pattern string
}

// NewResolver 創建替代圖片產生器，pattern 需包含一個 %s
func NewResolver(enabled bool, pattern string) *Resolver {
	if pattern == "" || !strings.Contains(pattern, "%s") {
		pattern = DefaultFallbackURL
	}
	return &Resolver{
		enabled: enabled,
		pattern: pattern,
	}
}

// HasImage 圖片是否為可用的網址
func HasImage(image string) bool {
	return strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://")
}

// FallbackURL 依食譜名稱產生替代網址
func (r *Resolver) FallbackURL(name string) string {
	query := url.QueryEscape(strings.TrimSpace(name))
	if query == "" {
		query = "food"
	}
	return fmt.Sprintf(r.pattern, query)
}

// Apply 為沒有可用圖片的食譜補上替代網址，回傳補上的數量
func (r *Resolver) Apply(recipes []common.Recipe) int {
	if r == nil || !r.enabled {
		return 0
	}
	count := 0
	for i := range recipes {
		if HasImage(recipes[i].Image) {
			continue
		}
		recipes[i].Image = r.FallbackURL(recipes[i].Name)
		count++
	}
	return count
}
