package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sugartrack/internal/model"
)

// Eastmoney tags Zhengzhou sugar futures articles with the contract code.
var sugarKeywordsEastmoney = append([]string{"SR"}, sugarKeywordsZh...)

// EastmoneyClient reads the Eastmoney futures news list (JSON API).
type EastmoneyClient struct {
	apiURL     string
	httpClient *http.Client
}

func NewEastmoneyClient() *EastmoneyClient {
	return &EastmoneyClient{
		apiURL:     "https://np-listapi.eastmoney.com/comm/web/getFutures?type=1&pageSize=20&pageNo=1",
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

func (c *EastmoneyClient) Name() string {
	return "东方财富网"
}

func (c *EastmoneyClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("eastmoney request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eastmoney fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eastmoney fetch: status %d", resp.StatusCode)
	}

	var raw eastmoneyResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("eastmoney decode: %w", err)
	}

	items := raw.Data.List
	if len(items) > limit {
		items = items[:limit]
	}

	var articles []Article
	for _, item := range items {
		if !containsAny(item.Title, sugarKeywordsEastmoney) {
			continue
		}

		sourceURL := item.URL
		if sourceURL == "" {
			sourceURL = "https://futures.eastmoney.com/"
		}

		content := item.Digest
		if content == "" {
			content = item.Title
		}

		publishedAt := time.Now()
		if item.ShowTime != "" {
			if t, err := time.Parse("2006-01-02 15:04:05", item.ShowTime); err == nil {
				publishedAt = t
			}
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

type eastmoneyResponse struct {
	Data struct {
		List []eastmoneyItem `json:"list"`
	} `json:"data"`
}

type eastmoneyItem struct {
	Title    string `json:"title"`
	Digest   string `json:"digest"`
	URL      string `json:"url"`
	ShowTime string `json:"showTime"`
}
