package news

import (
	"context"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"sugartrack/internal/model"
)

// FinnhubClient pulls general market news through the Finnhub SDK and keeps
// only sugar coverage. Optional source, only wired when an API key is
// configured.
type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubClient{client: client}
}

func (c *FinnhubClient) Name() string {
	return "Finnhub"
}

func (c *FinnhubClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	res, _, err := c.client.MarketNews(ctx).Category("general").Execute()
	if err != nil {
		return nil, err
	}

	var articles []Article
	for _, item := range res {
		if len(articles) >= limit {
			break
		}
		if item.Headline == nil {
			continue
		}

		title := *item.Headline
		if !strings.Contains(strings.ToLower(title), "sugar") {
			continue
		}

		content := title
		if item.Summary != nil && *item.Summary != "" {
			content = *item.Summary
		}

		sourceURL := "https://finnhub.io/"
		if item.Url != nil && *item.Url != "" {
			sourceURL = *item.Url
		}

		publishedAt := time.Now()
		if item.Datetime != nil && *item.Datetime > 0 {
			publishedAt = time.Unix(*item.Datetime, 0)
		}

		articles = append(articles, Article{
			Title:       title,
			Content:     CleanHTML(content),
			Source:      c.Name(),
			SourceURL:   sourceURL,
			Category:    classifyCategory(title),
			PublishedAt: publishedAt,
			Language:    model.LanguageEnglish,
		})
	}

	return articles, nil
}
