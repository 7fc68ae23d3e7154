package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"sugartrack/internal/model"
)

func sinaPayload(titles ...string) map[string]any {
	items := make([]map[string]any, 0, len(titles))
	for _, title := range titles {
		items = append(items, map[string]any{
			"title": title,
			"intro": "<p>简介&nbsp;" + title + "</p>",
			"url":   "https://finance.sina.com.cn/article",
			"ctime": 1700000000,
		})
	}
	return map[string]any{"result": map[string]any{"data": items}}
}

func TestSinaFetchFiltersAndBounds(t *testing.T) {
	// Seven items; only the first five are considered, and of those only the
	// sugar-related ones survive.
	payload := sinaPayload(
		"白糖期货价格震荡走高，机构看多后市",
		"原油期货夜盘收跌",
		"郑糖主力合约突破五千关口",
		"螺纹钢库存持续下降",
		"甘蔗主产区天气改善，供应预期宽松",
		"白糖现货报价上调",
		"食糖进口配额政策调整",
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := &SinaFinanceClient{apiURL: srv.URL, httpClient: srv.Client()}

	articles, err := client.Fetch(context.Background(), 5)

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(articles))
	assert.Equal(t, "白糖期货价格震荡走高，机构看多后市", articles[0].Title)
	assert.Equal(t, "郑糖主力合约突破五千关口", articles[1].Title)
	assert.Equal(t, "甘蔗主产区天气改善，供应预期宽松", articles[2].Title)

	a := articles[0]
	assert.Equal(t, "新浪财经", a.Source)
	assert.Equal(t, "https://finance.sina.com.cn/article", a.SourceURL)
	assert.Equal(t, model.CategoryMarketAnalysis, a.Category)
	assert.Equal(t, model.LanguageChinese, a.Language)
	assert.Equal(t, "简介 白糖期货价格震荡走高，机构看多后市", a.Content)
	assert.Equal(t, time.Unix(1700000000, 0), a.PublishedAt)
}

func TestSinaFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := &SinaFinanceClient{apiURL: srv.URL, httpClient: srv.Client()}

	articles, err := client.Fetch(context.Background(), 5)
	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(articles))
}

func TestEastmoneyFetchMatchesContractCode(t *testing.T) {
	payload := map[string]any{
		"data": map[string]any{
			"list": []map[string]any{
				{
					"title":    "SR主力合约增仓上行",
					"digest":   "郑商所白糖期货放量",
					"url":      "https://futures.eastmoney.com/a/1.html",
					"showTime": "2026-02-10 09:30:00",
				},
				{
					"title":    "沪铜夜盘收涨",
					"digest":   "金属板块普涨",
					"url":      "https://futures.eastmoney.com/a/2.html",
					"showTime": "2026-02-10 09:31:00",
				},
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := &EastmoneyClient{apiURL: srv.URL, httpClient: srv.Client()}

	articles, err := client.Fetch(context.Background(), 5)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "SR主力合约增仓上行", articles[0].Title)
	assert.Equal(t, "东方财富网", articles[0].Source)
	assert.Equal(t, 2026, articles[0].PublishedAt.Year())
}
