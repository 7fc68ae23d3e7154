package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"sugartrack/internal/model"
)

var sugarKeywordsHexun = []string{"糖", "白糖", "食糖", "甘蔗", "糖价"}

// HexunClient reads the Hexun futures article list. The endpoint nominally
// serves JSON but sometimes answers with an HTML error page; a body that does
// not parse is treated as an empty result, not a failure.
type HexunClient struct {
	apiURL     string
	httpClient *http.Client
}

func NewHexunClient() *HexunClient {
	return &HexunClient{
		apiURL:     "http://api.hexun.com/api/article/list?columnId=8483&pageSize=20",
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

func (c *HexunClient) Name() string {
	return "和讯期货"
}

func (c *HexunClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("hexun request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hexun fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hexun fetch: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("hexun read: %w", err)
	}

	var raw hexunResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		slog.Info("hexun response not JSON, skipping", "error", err)
		return nil, nil
	}

	items := raw.Data
	if len(items) > limit {
		items = items[:limit]
	}

	var articles []Article
	for _, item := range items {
		if !containsAny(item.Title, sugarKeywordsHexun) {
			continue
		}

		sourceURL := item.URL
		if sourceURL == "" {
			sourceURL = "https://futures.hexun.com/"
		}

		content := item.Summary
		if content == "" {
			content = item.Title
		}

		publishedAt := time.Now()
		if item.PublishTime > 0 {
			publishedAt = time.UnixMilli(item.PublishTime)
		}

		articles = append(articles, Article{
			Title:       item.Title,
			Content:     CleanHTML(content),
			Source:      c.Name(),
			SourceURL:   sourceURL,
			Category:    model.CategoryMarketAnalysis,
			PublishedAt: publishedAt,
			Language:    model.LanguageChinese,
		})
	}

	return articles, nil
}

type hexunResponse struct {
	Data []hexunItem `json:"data"`
}

type hexunItem struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	URL         string `json:"url"`
	PublishTime int64  `json:"publishTime"`
}
