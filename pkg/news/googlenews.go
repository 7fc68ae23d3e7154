package news

import (
	"context"
	"net/http"
	"time"

	"sugartrack/internal/model"
)

// GoogleNewsClient searches the Google News RSS index for sugar commodity
// coverage. The query already narrows the feed, so no keyword filter is
// applied on top.
type GoogleNewsClient struct {
	feedURL    string
	httpClient *http.Client
}

func NewGoogleNewsClient() *GoogleNewsClient {
	return &GoogleNewsClient{
		feedURL:    "https://news.google.com/rss/search?q=sugar+commodity+price&hl=en-US&gl=US&ceid=US:en",
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

func (c *GoogleNewsClient) Name() string {
	return "Google News"
}

func (c *GoogleNewsClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
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
			link = "https://news.google.com/"
		}

		// Google News items carry the publisher in a <source> tag.
		source := ExtractTag(itemXML, "source")
		if source == "" {
			source = c.Name()
		}

		publishedAt := time.Now()
		if pubDate := ExtractTag(itemXML, "pubDate"); pubDate != "" {
			publishedAt = parsePubDate(pubDate)
		}

		articles = append(articles, Article{
			Title:       CleanHTML(title),
			Content:     CleanHTML(description),
			Source:      source,
			SourceURL:   link,
			Category:    model.CategoryMarketAnalysis,
			PublishedAt: publishedAt,
			Language:    model.LanguageEnglish,
		})
	}

	return articles, nil
}
