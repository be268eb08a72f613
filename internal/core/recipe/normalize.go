package recipe

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents 去除重音符號（é -> e），讓 "jalapeño" 與 "jalapeno" 可以互相比對
// 組合（NFC）留到過濾字元之後，避免過濾後又出現可組合的序列
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize 正規化食材名稱：轉小寫、去重音、移除字母數字與空白以外的字元、去除前後空白
//
// 結果是冪等的：Normalize(Normalize(s)) == Normalize(s)
func Normalize(text string) string {
	lower := strings.ToLower(text)
	folded, _, err := transform.String(foldAccents, lower)
	if err != nil {
		folded = lower
	}

	var sb strings.Builder
	sb.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(norm.NFC.String(sb.String()))
}
