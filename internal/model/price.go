package model

import "time"

// Quote sources. Synthetic data is always tagged "mock" so the frontend can
// flag it; it must never be passed off as provider data.
const (
	PriceSourceYahoo = "yahoo_finance"
	PriceSourceMock  = "mock"
)

// PriceQuote is the current sugar price in dollars per pound.
type PriceQuote struct {
	Price            float64
	Change24h        float64
	ChangePercent24h float64
	High24h          float64
	Low24h           float64
	Timestamp        time.Time
	Source           string
}

// PricePoint is one bar of historical data, all fields in dollars per pound.
type PricePoint struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}
