package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SymbolDocument is the per-symbol summary the processor maintains from
// the tick stream.
type SymbolDocument struct {
	Id         primitive.ObjectID   `bson:"_id,omitempty"`
	Symbol     string               `bson:"symbol"`
	TickCount  int64                `bson:"tick_count"`
	LastPrice  primitive.Decimal128 `bson:"last_price"`
	LastTickAt time.Time            `bson:"last_tick_at"`
}

type UserDocument struct {
	Id           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	Portfolio    []Holding          `bson:"portfolio,omitempty"`
	TradeHistory []TradeRecord      `bson:"trade_history,omitempty"`
}

type Holding struct {
	Symbol   string `bson:"symbol"`
	Quantity int64  `bson:"quantity"`
	Logo     string `bson:"logo,omitempty"`
}

const (
	ActionBuy  = "buy"
	ActionSell = "sell"
)

// TradeRecord is one entry of a user's simulated trade ledger.
type TradeRecord struct {
	Action    string    `bson:"action"`
	Symbol    string    `bson:"symbol"`
	Quantity  int64     `bson:"quantity"`
	Timestamp time.Time `bson:"timestamp"`
}
