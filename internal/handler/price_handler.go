package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sugartrack/db"
	"sugartrack/internal/model"
	"sugartrack/pkg/price"
)

// PriceProvider is total: it always answers, degrading to tagged mock data.
type PriceProvider interface {
	CurrentQuote(ctx context.Context) model.PriceQuote
	History(ctx context.Context, rng string) price.HistoryResult
}

type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

const priceCacheTTL = 5 * time.Minute

type PriceHandler struct {
	provider PriceProvider
	cache    Cache // nil when Redis is not configured
}

func NewPriceHandler(provider PriceProvider, cache Cache) *PriceHandler {
	return &PriceHandler{provider: provider, cache: cache}
}

func (h *PriceHandler) GetCurrentPrice(c *gin.Context) {
	if body, ok := h.cached(c, db.CurrentPriceKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	quote := h.provider.CurrentQuote(c.Request.Context())

	res := gin.H{"success": true, "data": toQuoteResponse(quote)}

	// Mock quotes are not cached, so a recovered provider shows up within
	// one request instead of one TTL.
	if quote.Source != model.PriceSourceMock {
		h.store(c, db.CurrentPriceKey, res)
	}

	c.JSON(http.StatusOK, res)
}

func (h *PriceHandler) GetPriceHistory(c *gin.Context) {
	rng := c.DefaultQuery("range", "2y")

	if !price.ValidRange(rng) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid range parameter. Valid values: 1d, 1w, 1m, 3m, 1y, 2y, 5y",
		})
		return
	}

	key := db.PriceHistoryKeyPrefix + rng
	if body, ok := h.cached(c, key); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	history := h.provider.History(c.Request.Context(), rng)

	points := make([]PricePointResponse, 0, len(history.Data))
	for _, p := range history.Data {
		points = append(points, PricePointResponse{
			Timestamp: p.Timestamp.Format(time.RFC3339),
			Open:      p.Open,
			High:      p.High,
			Low:       p.Low,
			Close:     p.Close,
			Volume:    p.Volume,
		})
	}

	res := gin.H{"success": true, "data": HistoryResponse{
		Data:     points,
		Range:    history.Range,
		Interval: history.Interval,
	}}

	if !history.Synthetic {
		h.store(c, key, res)
	}

	c.JSON(http.StatusOK, res)
}

func (h *PriceHandler) cached(c *gin.Context, key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	val, ok := h.cache.Get(c.Request.Context(), key)
	if !ok {
		return nil, false
	}
	return []byte(val), true
}

func (h *PriceHandler) store(c *gin.Context, key string, res gin.H) {
	if h.cache == nil {
		return
	}
	body, err := json.Marshal(res)
	if err != nil {
		return
	}
	h.cache.Set(c.Request.Context(), key, string(body), priceCacheTTL)
}

func toQuoteResponse(q model.PriceQuote) QuoteResponse {
	return QuoteResponse{
		Price:            q.Price,
		Change24h:        q.Change24h,
		ChangePercent24h: q.ChangePercent24h,
		High24h:          q.High24h,
		Low24h:           q.Low24h,
		Timestamp:        q.Timestamp.Format(time.RFC3339),
		Source:           q.Source,
	}
}
