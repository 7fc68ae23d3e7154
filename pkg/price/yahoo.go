package price

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"sugartrack/internal/model"
)

// Sugar No. 11 futures on Yahoo Finance. The chart endpoint reports prices
// in cents per pound; everything leaving this package is dollars per pound.
const (
	sugarSymbol  = "SB=F"
	yahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

type rangeConfig struct {
	interval   string
	yahooRange string
	outputSize int
	step       time.Duration
}

// Fixed range table. outputSize and step only drive the synthetic fallback.
var rangeConfigs = map[string]rangeConfig{
	"1d": {interval: "15m", yahooRange: "1d", outputSize: 96, step: 15 * time.Minute},
	"1w": {interval: "1h", yahooRange: "5d", outputSize: 120, step: time.Hour},
	"1m": {interval: "1d", yahooRange: "1mo", outputSize: 30, step: 24 * time.Hour},
	"3m": {interval: "1d", yahooRange: "3mo", outputSize: 90, step: 24 * time.Hour},
	"1y": {interval: "1d", yahooRange: "1y", outputSize: 252, step: 24 * time.Hour},
	"2y": {interval: "1wk", yahooRange: "2y", outputSize: 104, step: 7 * 24 * time.Hour},
	"5y": {interval: "1wk", yahooRange: "5y", outputSize: 260, step: 7 * 24 * time.Hour},
}

// ValidRange reports whether rng is a supported history range. Routes must
// reject anything else with a 400 before calling into this package.
func ValidRange(rng string) bool {
	_, ok := rangeConfigs[rng]
	return ok
}

func configFor(rng string) rangeConfig {
	if cfg, ok := rangeConfigs[rng]; ok {
		return cfg
	}
	return rangeConfigs["1y"]
}

// HistoryResult is the payload of the history route. Synthetic marks a
// fallback series; the route layer uses it to decide cacheability.
type HistoryResult struct {
	Data      []model.PricePoint
	Range     string
	Interval  string
	Synthetic bool
}

// Client fetches sugar quotes from Yahoo Finance and degrades to synthetic
// data when the provider is unavailable. Its public operations never fail.
type Client struct {
	baseURL    string
	symbol     string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:    yahooBaseURL,
		symbol:     sugarSymbol,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// CurrentQuote returns the live quote, or a synthetic one tagged
// model.PriceSourceMock when the provider call fails. Exactly one of the two
// paths runs.
func (c *Client) CurrentQuote(ctx context.Context) model.PriceQuote {
	quote, err := c.fetchQuote(ctx)
	if err != nil {
		slog.Error("error fetching quote, serving mock data", "error", err)
		return mockQuote()
	}
	return *quote
}

// History returns bars for the given range, falling back to a synthetic
// random walk of the range's documented length on provider failure.
func (c *Client) History(ctx context.Context, rng string) HistoryResult {
	cfg := configFor(rng)

	points, err := c.fetchHistory(ctx, cfg)
	if err != nil {
		slog.Error("error fetching history, serving mock data", "range", rng, "error", err)
	}

	synthetic := false
	if len(points) == 0 {
		points = mockHistory(cfg)
		synthetic = true
	}

	return HistoryResult{Data: points, Range: rng, Interval: cfg.interval, Synthetic: synthetic}
}

func (c *Client) fetchQuote(ctx context.Context) (*model.PriceQuote, error) {
	raw, err := c.fetchChart(ctx, "1d", "2d")
	if err != nil {
		return nil, err
	}

	meta := raw.Chart.Result[0].Meta

	price := meta.RegularMarketPrice / 100

	// Ordered fallback: explicit previous close, then the chart's previous
	// close, then the current price (zero change). The order determines the
	// displayed change magnitude.
	previousClose := meta.PreviousClose
	if previousClose == 0 {
		previousClose = meta.ChartPreviousClose
	}
	if previousClose == 0 {
		previousClose = meta.RegularMarketPrice
	}
	previousClose /= 100

	change := price - previousClose
	var changePercent float64
	if previousClose != 0 {
		changePercent = change / previousClose * 100
	}

	return &model.PriceQuote{
		Price:            round4(price),
		Change24h:        round4(change),
		ChangePercent24h: round2(changePercent),
		High24h:          round4(meta.RegularMarketDayHigh / 100),
		Low24h:           round4(meta.RegularMarketDayLow / 100),
		Timestamp:        time.Unix(meta.RegularMarketTime, 0),
		Source:           model.PriceSourceYahoo,
	}, nil
}

func (c *Client) fetchHistory(ctx context.Context, cfg rangeConfig) ([]model.PricePoint, error) {
	raw, err := c.fetchChart(ctx, cfg.interval, cfg.yahooRange)
	if err != nil {
		return nil, err
	}

	result := raw.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo history: empty series")
	}
	quote := result.Indicators.Quote[0]

	points := make([]model.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		p := model.PricePoint{
			Timestamp: time.Unix(ts, 0),
			Open:      floatAt(quote.Open, i) / 100,
			High:      floatAt(quote.High, i) / 100,
			Low:       floatAt(quote.Low, i) / 100,
			Close:     floatAt(quote.Close, i) / 100,
			Volume:    intAt(quote.Volume, i),
		}
		if p.Close <= 0 {
			continue
		}
		points = append(points, p)
	}

	return points, nil
}

func (c *Client) fetchChart(ctx context.Context, interval, rng string) (*yahooResponse, error) {
	url := fmt.Sprintf("%s/%s?interval=%s&range=%s", c.baseURL, c.symbol, interval, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("yahoo request: %w", err)
	}
	req.Header.Set("User-Agent", yahooAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo fetch: status %d", resp.StatusCode)
	}

	var raw yahooResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}

	if raw.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart error: %s", raw.Chart.Error.Description)
	}
	if len(raw.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart: empty result")
	}

	return &raw, nil
}

// Bars with gaps come back as nulls in the quote arrays.
func floatAt(vals []*float64, i int) float64 {
	if i < len(vals) && vals[i] != nil {
		return *vals[i]
	}
	return 0
}

func intAt(vals []*int64, i int) int64 {
	if i < len(vals) && vals[i] != nil {
		return *vals[i]
	}
	return 0
}

type yahooResponse struct {
	Chart struct {
		Result []struct {
			Meta       yahooMeta `json:"meta"`
			Timestamp  []int64   `json:"timestamp"`
			Indicators struct {
				Quote []yahooQuote `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

type yahooMeta struct {
	RegularMarketPrice   float64 `json:"regularMarketPrice"`
	PreviousClose        float64 `json:"previousClose"`
	ChartPreviousClose   float64 `json:"chartPreviousClose"`
	RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
	RegularMarketTime    int64   `json:"regularMarketTime"`
}

type yahooQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
