package price

import (
	"math"
	"math/rand/v2"
	"time"

	"sugartrack/internal/model"
)

// Synthetic data parameters: a plausible sugar price band around the recent
// trading level, in dollars per pound.
const (
	mockBasePrice  = 0.1485
	mockPriceFloor = 0.10
	mockPriceCeil  = 0.20
)

// mockQuote builds a synthetic current quote. Change and percent change are
// derived from the same perturbation so the arithmetic stays consistent.
func mockQuote() model.PriceQuote {
	price := mockBasePrice + (rand.Float64()-0.5)*0.01
	change := (rand.Float64() - 0.5) * 0.005
	changePercent := change / price * 100

	return model.PriceQuote{
		Price:            round4(price),
		Change24h:        round4(change),
		ChangePercent24h: round2(changePercent),
		High24h:          round4(price + 0.003),
		Low24h:           round4(price - 0.003),
		Timestamp:        time.Now(),
		Source:           model.PriceSourceMock,
	}
}

// mockHistory synthesizes a random-walk series of cfg.outputSize bars ending
// now, with the base price clamped to the mock band. Every bar satisfies
// high >= max(open, close), low <= min(open, close) and close > 0.
func mockHistory(cfg rangeConfig) []model.PricePoint {
	points := make([]model.PricePoint, 0, cfg.outputSize)

	base := mockBasePrice
	now := time.Now()

	for i := cfg.outputSize - 1; i >= 0; i-- {
		base += (rand.Float64() - 0.5) * 0.005
		base = math.Max(mockPriceFloor, math.Min(mockPriceCeil, base))

		open := base
		closePrice := base + (rand.Float64()-0.5)*0.003
		high := math.Max(open, closePrice) + rand.Float64()*0.002
		low := math.Min(open, closePrice) - rand.Float64()*0.002

		points = append(points, model.PricePoint{
			Timestamp: now.Add(-time.Duration(i) * cfg.step),
			Open:      round4(open),
			High:      round4(high),
			Low:       round4(low),
			Close:     round4(closePrice),
		})
	}

	return points
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
