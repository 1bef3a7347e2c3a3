package models

// FinnhubQuote is the body of Finnhub's /quote endpoint.
type FinnhubQuote struct {
	Current       float64 `json:"c"`  // Current price
	Change        float64 `json:"d"`  // Change
	PercentChange float64 `json:"dp"` // Percent change
	High          float64 `json:"h"`  // High price of the day
	Low           float64 `json:"l"`  // Low price of the day
	Open          float64 `json:"o"`  // Open price of the day
	PreviousClose float64 `json:"pc"` // Previous close price
	Timestamp     int64   `json:"t"`  // Unix seconds
}

// TickData is one observed price as published on the tick topic.
type TickData struct {
	Price     float64 `json:"p"` // Last price
	Symbol    string  `json:"s"` // Symbol (e.g., "AAPL")
	Timestamp int64   `json:"t"` // Unix timestamp in milliseconds
}

type TickMessage struct {
	Type string     `json:"type"`
	Data []TickData `json:"data"`
}

const TickMessageType = "tick"
