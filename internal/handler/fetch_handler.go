package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sugartrack/internal/model"
	"sugartrack/pkg/news"
)

// Fetcher is the news aggregation pipeline. It is total: failed sources have
// already been absorbed by the time it returns.
type Fetcher interface {
	FetchAll(ctx context.Context) []news.Article
}

type FetchStore interface {
	ExistsByTitle(title string) (bool, error)
	Save(article *model.NewsArticle) (bool, error)
	InitSchema() error
}

// FetchHandler exposes the admin- and cron-triggered ingestion endpoints.
type FetchHandler struct {
	fetcher    Fetcher
	store      FetchStore
	adminKey   string
	cronSecret string
}

func NewFetchHandler(fetcher Fetcher, store FetchStore, adminKey, cronSecret string) *FetchHandler {
	return &FetchHandler{
		fetcher:    fetcher,
		store:      store,
		adminKey:   adminKey,
		cronSecret: cronSecret,
	}
}

// AdminFetch triggers a fetch cycle from the browser, gated by a query key.
// When the store is down it returns a preview of what would have been saved.
func (h *FetchHandler) AdminFetch(c *gin.Context) {
	if h.adminKey == "" || c.Query("key") != h.adminKey {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized. Add ?key=YOUR_ADMIN_KEY to the URL",
		})
		return
	}

	start := time.Now()
	articles := h.fetcher.FetchAll(c.Request.Context())

	if len(articles) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success":           true,
			"message":           "No new articles found from sources",
			"articlesProcessed": 0,
			"duration":          time.Since(start).Milliseconds(),
		})
		return
	}

	if _, err := h.store.ExistsByTitle("connection-probe"); err != nil {
		slog.Warn("article store unavailable, returning preview", "error", err)

		preview := make([]ArticlePreview, 0, 10)
		for _, a := range articles {
			if len(preview) == 10 {
				break
			}
			preview = append(preview, ArticlePreview{
				Title:       a.Title,
				Source:      a.Source,
				Language:    a.Language,
				PublishedAt: a.PublishedAt.Format(time.RFC3339),
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"success":           true,
			"message":           "Database not available. Returning fetched articles preview.",
			"articlesProcessed": len(articles),
			"preview":           preview,
			"duration":          time.Since(start).Milliseconds(),
		})
		return
	}

	saved, skipped, savedTitles, errs := h.saveBatch(articles)

	if len(savedTitles) > 10 {
		savedTitles = savedTitles[:10]
	}
	if len(errs) > 5 {
		errs = errs[:5]
	}

	c.JSON(http.StatusOK, FetchResponse{
		Success:           true,
		Message:           "News fetch completed",
		ArticlesProcessed: len(articles),
		ArticlesSaved:     saved,
		ArticlesSkipped:   skipped,
		SavedArticles:     savedTitles,
		Errors:            errs,
		Duration:          time.Since(start).Milliseconds(),
	})
}

// CronFetch is the scheduled trigger, gated by a bearer token.
func (h *FetchHandler) CronFetch(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	if h.cronSecret == "" || auth != "Bearer "+h.cronSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	start := time.Now()
	articles := h.fetcher.FetchAll(c.Request.Context())

	if len(articles) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success":           true,
			"message":           "No new articles found",
			"articlesProcessed": 0,
			"duration":          time.Since(start).Milliseconds(),
		})
		return
	}

	saved, skipped, _, errs := h.saveBatch(articles)

	slog.Info("scheduled news fetch completed",
		"saved", saved, "skipped", skipped, "errors", len(errs),
		"duration_ms", time.Since(start).Milliseconds())

	c.JSON(http.StatusOK, FetchResponse{
		Success:           true,
		Message:           "News fetch completed",
		ArticlesProcessed: len(articles),
		ArticlesSaved:     saved,
		ArticlesSkipped:   skipped,
		Errors:            errs,
		Duration:          time.Since(start).Milliseconds(),
	})
}

// InitDB creates the schema, gated by the admin key.
func (h *FetchHandler) InitDB(c *gin.Context) {
	if h.adminKey == "" || c.Query("key") != h.adminKey {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	if err := h.store.InitSchema(); err != nil {
		slog.Error("error initializing schema", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Database initialized"})
}

func (h *FetchHandler) saveBatch(articles []news.Article) (saved, skipped int, savedTitles, errs []string) {
	for _, fetched := range articles {
		exists, err := h.store.ExistsByTitle(fetched.Title)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Failed to save %q: %v", truncate(fetched.Title, 50), err))
			continue
		}
		if exists {
			skipped++
			continue
		}

		article := news.ToNewsArticle(fetched)
		inserted, err := h.store.Save(&article)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Failed to save %q: %v", truncate(fetched.Title, 50), err))
			continue
		}
		if !inserted {
			skipped++
			continue
		}

		saved++
		savedTitles = append(savedTitles, article.Title)
	}
	return saved, skipped, savedTitles, errs
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
