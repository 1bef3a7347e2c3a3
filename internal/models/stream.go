package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventStockUpdate  = "stock_update"
	EventMarketMovers = "market_movers"

	// TimeLayout is RFC 3339 with millisecond precision.
	TimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Envelope is the outbound frame shape on the streaming channel.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// PriceUpdate is built fresh per tick for each subscription.
type PriceUpdate struct {
	Symbol     string
	Price      decimal.Decimal
	ObservedAt time.Time
	// Synthetic marks a fallback price substituted for an unavailable quote.
	Synthetic bool
}

type StockUpdateData struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Time   string  `json:"time"`
}

func (u PriceUpdate) Message() Envelope {
	return Envelope{
		Event: EventStockUpdate,
		Data: StockUpdateData{
			Symbol: u.Symbol,
			Price:  u.Price.Round(2).InexactFloat64(),
			Time:   u.ObservedAt.Format(TimeLayout),
		},
	}
}

func (u PriceUpdate) Tick() TickData {
	return TickData{
		Symbol:    u.Symbol,
		Price:     u.Price.Round(2).InexactFloat64(),
		Timestamp: u.ObservedAt.UnixMilli(),
	}
}

type MoverEntry struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
	IsUp   bool    `json:"isUp"`
}

func MoversMessage(movers []MoverEntry) Envelope {
	if movers == nil {
		movers = []MoverEntry{}
	}
	return Envelope{Event: EventMarketMovers, Data: movers}
}
