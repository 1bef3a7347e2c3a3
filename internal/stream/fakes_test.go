package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"stock-trading-backend/internal/models"
	"stock-trading-backend/internal/quote"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var errBrokenPipe = errors.New("broken pipe")

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// fakeConn records outbound frames and replays inbound text from a channel.
type fakeConn struct {
	id       string
	inbound  chan string
	receives atomic.Int32

	mu     sync.Mutex
	frames []frame
	failOn map[string]bool // event -> fail

	closeOnce sync.Once
	closed    chan struct{}
}

var connSeq atomic.Int64

func newFakeConn() *fakeConn {
	return &fakeConn{
		id:      fmt.Sprintf("fake-%d", connSeq.Add(1)),
		inbound: make(chan string, 16),
		failOn:  make(map[string]bool),
		closed:  make(chan struct{}),
	}
}

func (c *fakeConn) failing(events ...string) *fakeConn {
	for _, e := range events {
		c.failOn[e] = true
	}
	return c
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(v any) error {
	select {
	case <-c.closed:
		return ErrConnClosed
	default:
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var f frame
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failOn[f.Event] {
		return errBrokenPipe
	}
	c.frames = append(c.frames, f)
	return nil
}

// Receive counts its calls: once the count reaches n+1, the first n
// inbound messages have been fully handled.
func (c *fakeConn) Receive() (string, error) {
	c.receives.Add(1)
	select {
	case msg, ok := <-c.inbound:
		if !ok {
			return "", io.EOF
		}
		return msg, nil
	case <-c.closed:
		return "", ErrConnClosed
	}
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *fakeConn) received(event string) []frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []frame
	for _, f := range c.frames {
		if f.Event == event {
			out = append(out, f)
		}
	}
	return out
}

func (c *fakeConn) stockUpdates(t *testing.T) []models.StockUpdateData {
	t.Helper()
	var out []models.StockUpdateData
	for _, f := range c.received(models.EventStockUpdate) {
		var d models.StockUpdateData
		require.NoError(t, json.Unmarshal(f.Data, &d))
		out = append(out, d)
	}
	return out
}

func (c *fakeConn) movers(t *testing.T) [][]models.MoverEntry {
	t.Helper()
	var out [][]models.MoverEntry
	for _, f := range c.received(models.EventMarketMovers) {
		var d []models.MoverEntry
		require.NoError(t, json.Unmarshal(f.Data, &d))
		out = append(out, d)
	}
	return out
}

// fakeSource serves fixed prices; symbols without a price are unavailable.
type fakeSource struct {
	mu     sync.Mutex
	prices map[string]string
	block  bool
	calls  map[string]int
}

func newFakeSource(prices map[string]string) *fakeSource {
	return &fakeSource{prices: prices, calls: make(map[string]int)}
}

func (s *fakeSource) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	s.mu.Lock()
	s.calls[symbol]++
	p, ok := s.prices[symbol]
	block := s.block
	s.mu.Unlock()

	if block {
		<-ctx.Done()
		return decimal.Zero, fmt.Errorf("%w: %v", quote.ErrUnavailable, ctx.Err())
	}
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", quote.ErrUnavailable, symbol)
	}
	return decimal.RequireFromString(p), nil
}

func (s *fakeSource) callCount(symbol string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[symbol]
}

type recordingSink struct {
	mu      sync.Mutex
	batches [][]models.PriceUpdate
}

func (s *recordingSink) PublishTicks(_ context.Context, updates []models.PriceUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, updates)
	return nil
}
