package market

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"stock-trading-backend/internal/models"

	"github.com/shopspring/decimal"
)

const (
	maxMovers      = 5
	basePriceMin   = 100.0
	basePriceSpan  = 500.0
	maxFluctuation = 3.5
)

// Candidate is a symbol eligible for the movers board.
type Candidate struct {
	Symbol string
	Name   string
}

var DefaultCandidates = []Candidate{
	{Symbol: "AAPL", Name: "Apple Inc."},
	{Symbol: "GOOGL", Name: "Alphabet Inc."},
	{Symbol: "MSFT", Name: "Microsoft Corporation"},
	{Symbol: "AMZN", Name: "Amazon.com Inc."},
	{Symbol: "TSLA", Name: "Tesla Inc."},
	{Symbol: "NVDA", Name: "NVIDIA Corporation"},
	{Symbol: "META", Name: "Meta Platforms Inc."},
	{Symbol: "PYPL", Name: "PayPal Holdings Inc."},
}

// Rand is the random source the generators draw from. Float64 returns a
// value in [0, 1).
type Rand interface {
	Float64() float64
}

// LockedRand makes a *rand.Rand safe to share between goroutines.
type LockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{rnd: rand.New(rand.NewSource(seed))}
}

func NewTimeSeededRand() *LockedRand {
	return NewLockedRand(time.Now().UnixNano())
}

func (r *LockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}

// GenerateMovers prices every candidate with a synthetic fluctuation and
// returns the (at most five) largest absolute percentage moves, largest
// first. Ties keep candidate order.
func GenerateMovers(candidates []Candidate, rnd Rand) []models.MoverEntry {
	movers := make([]models.MoverEntry, 0, len(candidates))
	for _, c := range candidates {
		base := basePriceMin + rnd.Float64()*basePriceSpan
		fluctuation := -maxFluctuation + rnd.Float64()*2*maxFluctuation

		price := decimal.NewFromFloat(base + fluctuation).Round(2)
		change := decimal.NewFromFloat(fluctuation / base * 100).Round(2)

		movers = append(movers, models.MoverEntry{
			Symbol: c.Symbol,
			Name:   c.Name,
			Price:  price.InexactFloat64(),
			Change: change.InexactFloat64(),
			IsUp:   !change.IsNegative(),
		})
	}

	sort.SliceStable(movers, func(i, j int) bool {
		return math.Abs(movers[i].Change) > math.Abs(movers[j].Change)
	})

	if len(movers) > maxMovers {
		movers = movers[:maxMovers]
	}
	return movers
}
