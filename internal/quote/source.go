package quote

import (
	"context"
	"errors"

	"stock-trading-backend/internal/market"

	"github.com/shopspring/decimal"
)

// ErrUnavailable is wrapped by every PriceSource failure: timeouts,
// upstream errors, empty quotes and an open circuit.
var ErrUnavailable = errors.New("quote unavailable")

// PriceSource returns the current price for a symbol. Implementations must
// honour ctx cancellation and never block past its deadline.
type PriceSource interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// FallbackBand is the synthetic price range substituted when a quote is
// unavailable.
type FallbackBand struct {
	Min float64
	Max float64
}

var DefaultFallbackBand = FallbackBand{Min: 150, Max: 160}

// Price draws a uniform price in [Min, Max] rounded to cents.
func (b FallbackBand) Price(rnd market.Rand) decimal.Decimal {
	return decimal.NewFromFloat(b.Min + rnd.Float64()*(b.Max-b.Min)).Round(2)
}
