package model

import "time"

const (
	CategoryMarketAnalysis   = "market_analysis"
	CategoryProductionSupply = "production_supply"
	CategoryPolicyTrade      = "policy_trade"
	CategoryPriceForecasts   = "price_forecasts"
	CategoryAll              = "all"
)

const (
	LanguageEnglish    = "en"
	LanguageChinese    = "zh"
	LanguageSpanish    = "es"
	LanguagePortuguese = "pt"
)

// ValidCategory reports whether c is accepted by the news feed routes.
// "all" is a query value, never a stored category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryAll, CategoryMarketAnalysis, CategoryProductionSupply,
		CategoryPolicyTrade, CategoryPriceForecasts:
		return true
	}
	return false
}

type NewsArticle struct {
	ID                int64
	Title             string
	OriginalLanguage  string
	Content           string
	TranslatedContent string
	Source            string
	SourceURL         string
	Category          string
	PublishedAt       time.Time
	ImageURL          string
	IsTranslated      bool
	CreatedAt         time.Time
}
