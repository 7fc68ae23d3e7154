package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sugartrack/internal/model"
)

// Sugar keywords for the Chinese finance feeds. Substring match is
// case-sensitive; CJK needs no folding.
var sugarKeywordsZh = []string{"糖", "白糖", "食糖", "甘蔗", "糖价", "郑糖"}

// SinaFinanceClient reads the Sina Finance futures roll feed (JSON API).
type SinaFinanceClient struct {
	apiURL     string
	httpClient *http.Client
}

func NewSinaFinanceClient() *SinaFinanceClient {
	return &SinaFinanceClient{
		apiURL:     "https://feed.mix.sina.com.cn/api/roll/get?pageid=153&lid=2516&k=&num=20&page=1",
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

func (c *SinaFinanceClient) Name() string {
	return "新浪财经"
}

func (c *SinaFinanceClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("sina request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sina fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sina fetch: status %d", resp.StatusCode)
	}

	var raw sinaResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("sina decode: %w", err)
	}

	items := raw.Result.Data
	if len(items) > limit {
		items = items[:limit]
	}

	var articles []Article
	for _, item := range items {
		if !containsAny(item.Title, sugarKeywordsZh) {
			continue
		}

		sourceURL := item.URL
		if sourceURL == "" {
			sourceURL = "https://finance.sina.com.cn/"
		}

		content := item.Intro
		if content == "" {
			content = item.Title
		}

		publishedAt := time.Now()
		if item.Ctime > 0 {
			publishedAt = time.Unix(item.Ctime, 0)
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

type sinaResponse struct {
	Result struct {
		Data []sinaItem `json:"data"`
	} `json:"result"`
}

type sinaItem struct {
	Title string `json:"title"`
	Intro string `json:"intro"`
	URL   string `json:"url"`
	Ctime int64  `json:"ctime"`
}
