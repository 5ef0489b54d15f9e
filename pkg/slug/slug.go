package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// 常见带重音的拉丁字母转为ASCII
var transliterator = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ä", "a", "ã", "a", "å", "a",
	"ç", "c",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i", "ı", "i",
	"ñ", "n",
	"ò", "o", "ó", "o", "ô", "o", "ö", "o", "õ", "o", "ø", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ş", "s", "ğ", "g", "ß", "ss",
)

// Generate 生成URL友好的slug
//
// 示例：
//   - "Clean Code" → "clean-code"
//   - "Café  Society!" → "cafe-society"
//   - "Jane Doe 6560f1c2a9b3e4d5f6a7b8c9" → "jane-doe-6560f1c2a9b3e4d5f6a7b8c9"
func Generate(parts ...string) string {
	s := strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))
	s = transliterator.Replace(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
