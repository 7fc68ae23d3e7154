package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"sugartrack/internal/model"
)

type fakeStore struct {
	articles     []model.NewsArticle
	total        int
	err          error
	lastCategory string
	translations map[int64]string
}

func (f *fakeStore) GetFeed(category string, limit, offset int) ([]model.NewsArticle, error) {
	f.lastCategory = category
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

func (f *fakeStore) GetFeedTotal(category string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.total, nil
}

func (f *fakeStore) GetByID(id int64) (*model.NewsArticle, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.articles {
		if f.articles[i].ID == id {
			return &f.articles[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpdateTranslation(id int64, translated string) error {
	if f.translations == nil {
		f.translations = map[int64]string{}
	}
	f.translations[id] = translated
	return nil
}

type stubTranslator struct {
	result string
	err    error
}

func (s *stubTranslator) Translate(ctx context.Context, text string) (string, error) {
	return s.result, s.err
}

func (s *stubTranslator) ModelName() string {
	return "stub"
}

func articleFixture(id int64) model.NewsArticle {
	return model.NewsArticle{
		ID:               id,
		Title:            "白糖期货价格震荡走高",
		OriginalLanguage: model.LanguageChinese,
		Content:          "郑糖主力合约收涨。",
		Source:           "新浪财经",
		SourceURL:        "https://finance.sina.com.cn/article",
		Category:         model.CategoryMarketAnalysis,
		PublishedAt:      time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC),
	}
}

func newsRouter(store ArticleStore, translator *stubTranslator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var h *NewsHandler
	if translator == nil {
		h = NewNewsHandler(store, nil)
	} else {
		h = NewNewsHandler(store, translator)
	}

	r.GET("/news", h.GetNews)
	r.GET("/news/:id", h.GetArticle)
	r.POST("/news/translate", h.TranslateArticle)
	r.GET("/health", h.GetHealth)
	return r
}

func TestGetNewsFeed(t *testing.T) {
	store := &fakeStore{articles: []model.NewsArticle{articleFixture(1)}, total: 42}
	router := newsRouter(store, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/news", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.CategoryAll, store.lastCategory)

	var res struct {
		Success bool             `json:"success"`
		Data    NewsFeedResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, true, res.Success)
	assert.Equal(t, 42, res.Data.Total)
	assert.Equal(t, 1, res.Data.Page)
	assert.Equal(t, 20, res.Data.Limit)
	assert.Equal(t, 1, len(res.Data.Articles))
	assert.Equal(t, "白糖期货价格震荡走高", res.Data.Articles[0].Title)
}

func TestGetNewsInvalidCategory(t *testing.T) {
	router := newsRouter(&fakeStore{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/news?category=crypto", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetNewsLimitClamped(t *testing.T) {
	store := &fakeStore{}
	router := newsRouter(store, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/news?limit=999&page=3", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data NewsFeedResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, 100, res.Data.Limit)
	assert.Equal(t, 3, res.Data.Page)
}

func TestGetArticleNotFound(t *testing.T) {
	router := newsRouter(&fakeStore{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/news/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetArticleInvalidID(t *testing.T) {
	router := newsRouter(&fakeStore{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/news/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTranslateReturnsCachedTranslation(t *testing.T) {
	article := articleFixture(1)
	article.TranslatedContent = "Zhengzhou sugar futures closed higher."
	article.IsTranslated = true

	store := &fakeStore{articles: []model.NewsArticle{article}}
	router := newsRouter(store, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/news/translate", bytes.NewBufferString(`{"articleId":1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data TranslateResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, true, res.Data.Cached)
	assert.Equal(t, "Zhengzhou sugar futures closed higher.", res.Data.TranslatedContent)
}

func TestTranslateWithoutTranslator(t *testing.T) {
	store := &fakeStore{articles: []model.NewsArticle{articleFixture(1)}}
	router := newsRouter(store, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/news/translate", bytes.NewBufferString(`{"articleId":1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTranslateAndPersist(t *testing.T) {
	store := &fakeStore{articles: []model.NewsArticle{articleFixture(1)}}
	translator := &stubTranslator{result: "Zhengzhou sugar futures closed higher."}
	router := newsRouter(store, translator)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/news/translate", bytes.NewBufferString(`{"articleId":1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data TranslateResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, false, res.Data.Cached)
	assert.Equal(t, "Zhengzhou sugar futures closed higher.", store.translations[1])
}

func TestTranslateProviderFailure(t *testing.T) {
	store := &fakeStore{articles: []model.NewsArticle{articleFixture(1)}}
	translator := &stubTranslator{err: errors.New("rate limited")}
	router := newsRouter(store, translator)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/news/translate", bytes.NewBufferString(`{"articleId":1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetHealth(t *testing.T) {
	router := newsRouter(&fakeStore{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "healthy", res["status"])
	assert.Equal(t, "connected", res["database"])
}

func TestGetHealthDatabaseDown(t *testing.T) {
	router := newsRouter(&fakeStore{err: errors.New("connection refused")}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
