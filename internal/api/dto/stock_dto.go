package dto

import (
	"time"

	"stock-trading-backend/internal/models"
)

// GetSymbols

type GetSymbolsSingle struct {
	Symbol     string    `json:"symbol"`
	TickCount  int64     `json:"tick_count"`
	LastPrice  float64   `json:"last_price"`
	LastTickAt time.Time `json:"last_tick_at"`
}

type GetSymbolsRes struct {
	Available []GetSymbolsSingle `json:"available"`
}

// GetQuote

type GetQuoteRes struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// GetMovers

type GetMoversRes struct {
	Movers []models.MoverEntry `json:"movers"`
}
