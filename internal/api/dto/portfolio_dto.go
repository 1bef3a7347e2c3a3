package dto

import "time"

// HoldingReq is the body of trades and portfolio updates.
type HoldingReq struct {
	Symbol   string `json:"symbol" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
}

type TradeQuery struct {
	Action string `form:"action" binding:"required"`
}

// GetPortfolio

type HoldingRes struct {
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
	Logo     string `json:"logo,omitempty"`
}

type GetPortfolioRes struct {
	Portfolio []HoldingRes `json:"portfolio"`
}

// GetPortfolioValue

type HoldingValueRes struct {
	Symbol     string  `json:"symbol"`
	Quantity   int64   `json:"quantity"`
	Price      float64 `json:"price"`
	TotalValue float64 `json:"total_value"`
	Logo       string  `json:"logo,omitempty"`
}

type GetPortfolioValueRes struct {
	TotalPortfolioValue float64           `json:"total_portfolio_value"`
	Stocks              []HoldingValueRes `json:"stocks"`
}

// GetTradeHistory

type TradeRecordRes struct {
	Action    string    `json:"action"`
	Symbol    string    `json:"symbol"`
	Quantity  int64     `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

type GetTradeHistoryRes struct {
	TradeHistory []TradeRecordRes `json:"trade_history"`
}
