package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sugartrack/internal/model"
	"sugartrack/pkg/translate"
)

type ArticleStore interface {
	GetFeed(category string, limit, offset int) ([]model.NewsArticle, error)
	GetFeedTotal(category string) (int, error)
	GetByID(id int64) (*model.NewsArticle, error)
	UpdateTranslation(id int64, translated string) error
}

type NewsHandler struct {
	repository ArticleStore
	translator translate.Translator // nil when no provider key is configured
}

func NewNewsHandler(repository ArticleStore, translator translate.Translator) *NewsHandler {
	return &NewsHandler{repository: repository, translator: translator}
}

func (h *NewsHandler) GetNews(c *gin.Context) {
	category := c.DefaultQuery("category", model.CategoryAll)
	if !model.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid category"})
		return
	}

	limit := getQueryLimit(c)
	page := getQueryPage(c)
	offset := (page - 1) * limit

	articles, err := h.repository.GetFeed(category, limit, offset)
	if err != nil {
		slog.Error("error fetching news feed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error"})
		return
	}

	total, err := h.repository.GetFeedTotal(category)
	if err != nil {
		slog.Error("error fetching news feed total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error"})
		return
	}

	articleRes := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		articleRes = append(articleRes, toArticleResponse(a))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": NewsFeedResponse{
		Articles: articleRes,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}})
}

func (h *NewsHandler) GetArticle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid article id"})
		return
	}

	article, err := h.repository.GetByID(id)
	if err != nil {
		slog.Error("error fetching article", "error", err, "article_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error"})
		return
	}

	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": toArticleResponse(*article)})
}

func (h *NewsHandler) TranslateArticle(c *gin.Context) {
	var body struct {
		ArticleID int64 `json:"articleId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ArticleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid article ID"})
		return
	}

	article, err := h.repository.GetByID(body.ArticleID)
	if err != nil {
		slog.Error("error fetching article for translation", "error", err, "article_id", body.ArticleID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error"})
		return
	}

	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Article not found"})
		return
	}

	if article.IsTranslated && article.TranslatedContent != "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": TranslateResponse{
			TranslatedContent: article.TranslatedContent,
			Cached:            true,
		}})
		return
	}

	if h.translator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Translation service not configured"})
		return
	}

	translated, err := h.translator.Translate(c.Request.Context(), article.Content)
	if err != nil {
		slog.Error("error translating article", "error", err, "article_id", article.ID)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Translation failed"})
		return
	}

	// Serve the translation even if persisting it fails; the next request
	// will just translate again.
	if err := h.repository.UpdateTranslation(article.ID, translated); err != nil {
		slog.Error("error saving translation", "error", err, "article_id", article.ID)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": TranslateResponse{
		TranslatedContent: translated,
		Cached:            false,
	}})
}

func (h *NewsHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.GetFeedTotal(model.CategoryAll)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func toArticleResponse(a model.NewsArticle) ArticleResponse {
	res := ArticleResponse{
		ID:               a.ID,
		Title:            a.Title,
		OriginalLanguage: a.OriginalLanguage,
		Content:          a.Content,
		Source:           a.Source,
		SourceURL:        a.SourceURL,
		Category:         a.Category,
		PublishedAt:      a.PublishedAt.Format(time.RFC3339),
		IsTranslated:     a.IsTranslated,
	}
	if a.TranslatedContent != "" {
		res.TranslatedContent = &a.TranslatedContent
	}
	if a.ImageURL != "" {
		res.ImageURL = &a.ImageURL
	}
	return res
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}
	return parsed
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func getQueryPage(c *gin.Context) int {
	page := getQueryInt("page", 1, c)
	if page < 1 {
		return 1
	}
	return page
}
