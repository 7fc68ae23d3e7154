package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestHexunFetchToleratesNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>维护中</body></html>"))
	}))
	defer srv.Close()

	client := &HexunClient{apiURL: srv.URL, httpClient: srv.Client()}

	articles, err := client.Fetch(context.Background(), 5)

	// A non-JSON body yields an empty result, not a failure.
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(articles))
}

func TestHexunFetchParsesArticles(t *testing.T) {
	body := `{"data":[
		{"title":"糖价短期承压，现货成交清淡","summary":"主产区报价持稳","url":"https://futures.hexun.com/a/1.html","publishTime":1700000000000},
		{"title":"豆粕期货走弱","summary":"养殖需求偏弱","url":"https://futures.hexun.com/a/2.html","publishTime":1700000000000}
	]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	client := &HexunClient{apiURL: srv.URL, httpClient: srv.Client()}

	articles, err := client.Fetch(context.Background(), 5)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "糖价短期承压，现货成交清淡", articles[0].Title)
	assert.Equal(t, "和讯期货", articles[0].Source)
	assert.Equal(t, "主产区报价持稳", articles[0].Content)
}
