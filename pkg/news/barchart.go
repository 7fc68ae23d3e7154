package news

import (
	"context"
	"net/http"
	"strings"
	"time"

	"sugartrack/internal/model"
)

// BarchartClient reads the Barchart sugar commodity RSS feed.
type BarchartClient struct {
	feedURL    string
	httpClient *http.Client
}

func NewBarchartClient() *BarchartClient {
	return &BarchartClient{
		feedURL:    "https://www.barchart.com/news/rss/sugar",
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

func (c *BarchartClient) Name() string {
	return "Barchart"
}

func (c *BarchartClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	items := fetchRSSItems(ctx, c.httpClient, c.feedURL)
	if len(items) > limit {
		items = items[:limit]
	}

	var articles []Article
	for _, itemXML := range items {
		title := ExtractTag(itemXML, "title")
		if title == "" || !strings.Contains(strings.ToLower(title), "sugar") {
			continue
		}

		description := ExtractTag(itemXML, "description")
		if description == "" {
			description = title
		}

		link := ExtractTag(itemXML, "link")
		if link == "" {
			link = "https://www.barchart.com/"
		}

		publishedAt := time.Now()
		if pubDate := ExtractTag(itemXML, "pubDate"); pubDate != "" {
			publishedAt = parsePubDate(pubDate)
		}

		articles = append(articles, Article{
			Title:       title,
			Content:     CleanHTML(description),
			Source:      c.Name(),
			SourceURL:   link,
			Category:    model.CategoryMarketAnalysis,
			PublishedAt: publishedAt,
			Language:    model.LanguageEnglish,
		})
	}

	return articles, nil
}
