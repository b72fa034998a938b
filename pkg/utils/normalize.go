package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// 去重音折叠器：NFD 分解后丢弃组合记号，再组合回 NFC
var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// FoldString 搜索用折叠：小写 + 去重音
// "Café" 和 "cafe" 折叠后相等
func FoldString(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// 极少数非法 UTF-8 输入，退化为仅小写
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// FoldContains 折叠后的子串匹配
func FoldContains(haystack, needle string) bool {
	return strings.Contains(FoldString(haystack), FoldString(needle))
}
