package news

import (
	"context"
	"net/http"
	"strings"
	"time"

	"sugartrack/internal/model"
)

// SugarOnlineClient reads the SugarOnline industry feed. The feed is sugar
// specific, so instead of filtering we classify each headline.
type SugarOnlineClient struct {
	feedURL    string
	httpClient *http.Client
}

func NewSugarOnlineClient() *SugarOnlineClient {
	return &SugarOnlineClient{
		feedURL:    "https://www.sugaronline.com/feed/",
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

func (c *SugarOnlineClient) Name() string {
	return "SugarOnline"
}

func (c *SugarOnlineClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	items := fetchRSSItems(ctx, c.httpClient, c.feedURL)
	if len(items) > limit {
		items = items[:limit]
	}

	var articles []Article
	for _, itemXML := range items {
		title := ExtractTag(itemXML, "title")
		if title == "" {
			continue
		}

		description := ExtractTag(itemXML, "description")
		if description == "" {
			description = title
		}

		link := ExtractTag(itemXML, "link")
		if link == "" {
			link = "https://www.sugaronline.com/"
		}

		publishedAt := time.Now()
		if pubDate := ExtractTag(itemXML, "pubDate"); pubDate != "" {
			publishedAt = parsePubDate(pubDate)
		}

		articles = append(articles, Article{
			Title:       CleanHTML(title),
			Content:     CleanHTML(description),
			Source:      c.Name(),
			SourceURL:   link,
			Category:    classifyCategory(title),
			PublishedAt: publishedAt,
			Language:    model.LanguageEnglish,
		})
	}

	return articles, nil
}

// classifyCategory buckets an English headline by keyword. Precedence is
// price -> production -> policy, then the market analysis default.
func classifyCategory(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "price") || strings.Contains(t, "forecast"):
		return model.CategoryPriceForecasts
	case strings.Contains(t, "production") || strings.Contains(t, "harvest") || strings.Contains(t, "crop"):
		return model.CategoryProductionSupply
	case strings.Contains(t, "policy") || strings.Contains(t, "trade") ||
		strings.Contains(t, "export") || strings.Contains(t, "import"):
		return model.CategoryPolicyTrade
	}
	return model.CategoryMarketAnalysis
}
