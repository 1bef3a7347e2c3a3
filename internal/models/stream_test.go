package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceUpdateMessage(t *testing.T) {
	//given
	at := time.Date(2024, 3, 15, 13, 30, 0, 123000000, time.UTC)
	update := PriceUpdate{Symbol: "AAPL", Price: decimal.RequireFromString("172.456"), ObservedAt: at}

	//when
	b, err := json.Marshal(update.Message())

	//then
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"event":"stock_update","data":{"symbol":"AAPL","price":172.46,"time":"2024-03-15T13:30:00.123Z"}}`,
		string(b))
}

func TestMoversMessage(t *testing.T) {
	testCases := []struct {
		name     string
		movers   []MoverEntry
		expected string
	}{
		{
			name:     "nil movers encode as empty list",
			movers:   nil,
			expected: `{"event":"market_movers","data":[]}`,
		},
		{
			name:     "entries keep wire field names",
			movers:   []MoverEntry{{Symbol: "TSLA", Name: "Tesla Inc.", Price: 201.5, Change: -1.25, IsUp: false}},
			expected: `{"event":"market_movers","data":[{"symbol":"TSLA","name":"Tesla Inc.","price":201.5,"change":-1.25,"isUp":false}]}`,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(MoversMessage(tt.movers))
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(b))
		})
	}
}

func TestPriceUpdateTick(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	tick := PriceUpdate{Symbol: "MSFT", Price: decimal.NewFromFloat(301.005), ObservedAt: at}.Tick()

	assert.Equal(t, TickData{Symbol: "MSFT", Price: 301.01, Timestamp: 1700000000123}, tick)
}
