// Package locale selects insight text for a BCP 47 locale.
package locale

import (
	"golang.org/x/text/language"
)

// Insight keys
const (
	KeyAvoidedCrowd    = "avoided_crowd"
	KeyLuggageFriendly = "luggage_friendly"
	KeyStairsWarning   = "stairs_warning"
	KeyDiffTransfer    = "diff_transfer"
)

// Supported locales. English is the fallback and must stay first.
var Supported = []language.Tag{
	language.English,
	language.Japanese,
	language.MustParse("zh-TW"),
}

// Catalog maps insight keys to text per locale.
type Catalog struct {
	matcher language.Matcher
	tags    []language.Tag
	texts   map[string]map[language.Tag]string
}

// Default is the built-in catalog.
var Default = NewCatalog(Supported, map[string]map[language.Tag]string{
	KeyAvoidedCrowd: {
		language.English:            "Avoided High Traffic",
		language.Japanese:           "混雑回避",
		language.MustParse("zh-TW"): "避開人潮",
	},
	KeyLuggageFriendly: {
		language.English:            "Luggage Friendly",
		language.Japanese:           "荷物に優しい",
		language.MustParse("zh-TW"): "適合攜帶行李",
	},
	KeyStairsWarning: {
		language.English:            "Contains Stairs",
		language.Japanese:           "階段あり",
		language.MustParse("zh-TW"): "途經樓梯",
	},
	KeyDiffTransfer: {
		language.English:            "Difficult Transfer",
		language.Japanese:           "乗り換え困難",
		language.MustParse("zh-TW"): "轉乘複雜",
	},
})

// NewCatalog builds a catalog. tags[0] is the fallback locale.
func NewCatalog(tags []language.Tag, texts map[string]map[language.Tag]string) *Catalog {
	return &Catalog{
		matcher: language.NewMatcher(tags),
		tags:    tags,
		texts:   texts,
	}
}

// Match returns the supported tag closest to locale. Unparseable or
// unsupported locales match the fallback.
func (c *Catalog) Match(locale string) language.Tag {
	if locale == "" {
		return c.tags[0]
	}
	_, idx, conf := c.matcher.Match(language.Make(locale))
	if conf == language.No {
		return c.tags[0]
	}
	return c.tags[idx]
}

// Text returns the text for key in the matched locale, then the fallback
// locale, then the key itself.
func (c *Catalog) Text(locale, key string) string {
	byTag, ok := c.texts[key]
	if !ok {
		return key
	}
	if s, ok := byTag[c.Match(locale)]; ok {
		return s
	}
	if s, ok := byTag[c.tags[0]]; ok {
		return s
	}
	return key
}
