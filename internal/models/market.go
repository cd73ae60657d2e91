package models

import "time"

// Quote holds a point-in-time price snapshot for a symbol. Quotes are
// ephemeral: they are served to callers and may be cached briefly, but are
// never part of account state.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name,omitempty"`
	Price         float64   `json:"price"`
	PreviousClose float64   `json:"previous_close"`
	Change        float64   `json:"change"`
	ChangePct     float64   `json:"change_p"`
	Currency      string    `json:"currency,omitempty"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// Candle represents one OHLCV bar of price history.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// History is an ordered (oldest first) series of candles for a symbol.
type History struct {
	Symbol   string   `json:"symbol"`
	Period   string   `json:"period"`
	Interval string   `json:"interval"`
	Candles  []Candle `json:"candles"`
}
