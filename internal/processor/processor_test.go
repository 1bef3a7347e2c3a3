package processor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTransformMessage(t *testing.T) {
	testCases := []struct {
		name          string
		inputMessage  kafkaGo.Message
		expectError   bool
		expectNilData bool                                    // For cases that should be skipped (nil, nil)
		assertions    func(t *testing.T, data *ProcessedData) // Custom checks for success cases
	}{
		{
			name:          "JSON unmarshal failure",
			inputMessage:  kafkaGo.Message{Value: []byte(`{"type":"tick","data":[{"s":"AAPL","p":"not_a_number","t":1678886400123}]}`)},
			expectError:   true,
			expectNilData: true,
		},
		{
			name:          "should skip non-tick messages",
			inputMessage:  kafkaGo.Message{Value: []byte(`{"type":"ping"}`)},
			expectNilData: true,
		},
		{
			name:          "should skip messages with an empty data array",
			inputMessage:  kafkaGo.Message{Value: []byte(`{"type":"tick", "data":[]}`)},
			expectNilData: true,
		},
		{
			name:          "all ticks invalid",
			inputMessage:  kafkaGo.Message{Value: []byte(`{"type":"tick","data":[{"s":"","p":1,"t":1}]}`)},
			expectError:   true,
			expectNilData: true,
		},
		{
			name: "should successfully transform a valid tick message",
			inputMessage: kafkaGo.Message{
				Topic:     "test-topic",
				Partition: 1,
				Offset:    42,
				Value:     []byte(`{"type":"tick","data":[{"s":"AAPL","p":150.75,"t":1678886400123}]}`),
			},
			assertions: func(t *testing.T, data *ProcessedData) {
				assert.Equal(t, map[string]int64{"AAPL": 1}, data.SymbolTickCounts)
				assert.Equal(t, "150.75", data.LastPrices["AAPL"].String())
				assert.Equal(t, int64(1678886400123), data.LatestTimestamps["AAPL"].UnixMilli())
			},
		},
		{
			name: "last price follows the latest timestamp per symbol",
			inputMessage: kafkaGo.Message{
				Value: []byte(`{"type":"tick","data":[
					{"s":"MSFT","p":301,"t":1700000002000},
					{"s":"MSFT","p":300,"t":1700000000000},
					{"s":"TSLA","p":250.5,"t":1700000001000}
				]}`),
			},
			assertions: func(t *testing.T, data *ProcessedData) {
				assert.Equal(t, int64(2), data.SymbolTickCounts["MSFT"])
				assert.Equal(t, int64(1), data.SymbolTickCounts["TSLA"])
				assert.Equal(t, "301", data.LastPrices["MSFT"].String())
				assert.Equal(t, int64(1700000002000), data.LatestTimestamps["MSFT"].UnixMilli())
				assert.Equal(t, "250.5", data.LastPrices["TSLA"].String())
			},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			processedData, err := TransformMessage(tt.inputMessage)

			// Assert
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.expectNilData {
				assert.Nil(t, processedData)
			} else {
				require.NotNil(t, processedData)
			}

			if tt.assertions != nil {
				tt.assertions(t, processedData)
			}
		})
	}
}

type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafkaGo.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkaGo.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		r.cancel()
		return kafkaGo.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkaGo.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

// fakeStore fails its first failures calls with err, or every call when
// failures is negative.
type fakeStore struct {
	mu       sync.Mutex
	stored   []*ProcessedData
	calls    int
	failures int
	err      error
}

func (s *fakeStore) UpsertSymbols(_ context.Context, data *ProcessedData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failures < 0 || s.calls <= s.failures {
		return s.err
	}
	s.stored = append(s.stored, data)
	return nil
}

func (s *fakeStore) snapshot() (stored []*ProcessedData, calls int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*ProcessedData(nil), s.stored...), s.calls
}

func TestProcessorRun(t *testing.T) {
	//given
	msgs := []kafkaGo.Message{
		{Offset: 1, Value: []byte(`{"type":"tick","data":[{"s":"AAPL","p":190,"t":1700000000000}]}`)},
		{Offset: 2, Value: []byte(`not json`)},
		{Offset: 3, Value: []byte(`{"type":"ping"}`)},
		{Offset: 4, Value: []byte(`{"type":"tick","data":[{"s":"TSLA","p":250,"t":1700000000000}]}`)},
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	reader := &fakeReader{msgs: msgs, cancel: cancel}
	store := &fakeStore{}

	//when
	err := NewProcessor(reader, store, clockwork.NewFakeClock(), zap.NewNop()).Run(ctx)

	//then
	assert.NoError(t, err)
	stored, _ := store.snapshot()
	assert.Len(t, stored, 2)
	assert.Equal(t, []int64{1, 2, 3, 4}, reader.committed)
}

func TestProcessorRetriesFailedStore(t *testing.T) {
	msgs := []kafkaGo.Message{
		{Offset: 1, Value: []byte(`{"type":"tick","data":[{"s":"AAPL","p":190,"t":1700000000000}]}`)},
		{Offset: 2, Value: []byte(`{"type":"tick","data":[{"s":"TSLA","p":250,"t":1700000000000}]}`)},
	}

	testCases := []struct {
		name              string
		failures          int
		advances          int
		expectedCalls     int
		expectedStored    int
		expectedCommitted []int64
	}{
		{
			name:              "fails once then stores the same message",
			failures:          1,
			advances:          1,
			expectedCalls:     3,
			expectedStored:    2,
			expectedCommitted: []int64{1, 2},
		},
		{
			name:              "backs off across repeated failures",
			failures:          3,
			advances:          3,
			expectedCalls:     5,
			expectedStored:    2,
			expectedCommitted: []int64{1, 2},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			//given
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			reader := &fakeReader{msgs: append([]kafkaGo.Message(nil), msgs...), cancel: cancel}
			store := &fakeStore{failures: tt.failures, err: errors.New("mongo down")}
			clock := clockwork.NewFakeClock()

			done := make(chan error, 1)
			go func() { done <- NewProcessor(reader, store, clock, zap.NewNop()).Run(ctx) }()

			//when
			backoff := initialStoreBackoff
			for i := 0; i < tt.advances; i++ {
				require.NoError(t, clock.BlockUntilContext(ctx, 1))
				clock.Advance(backoff)
				backoff *= 2
			}

			//then
			require.NoError(t, <-done)
			stored, calls := store.snapshot()
			assert.Equal(t, tt.expectedCalls, calls)
			assert.Len(t, stored, tt.expectedStored)
			assert.Equal(t, tt.expectedCommitted, reader.committed)
		})
	}
}

func TestProcessorStopsRetryingOnCancel(t *testing.T) {
	//given
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := &fakeReader{msgs: []kafkaGo.Message{
		{Offset: 7, Value: []byte(`{"type":"tick","data":[{"s":"AAPL","p":190,"t":1700000000000}]}`)},
	}, cancel: cancel}
	store := &fakeStore{failures: -1, err: errors.New("mongo down")}
	clock := clockwork.NewFakeClock()

	done := make(chan error, 1)
	go func() { done <- NewProcessor(reader, store, clock, zap.NewNop()).Run(ctx) }()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	//when
	cancel()

	//then
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("processor kept retrying after cancel")
	}
	stored, calls := store.snapshot()
	assert.Empty(t, stored)
	assert.Equal(t, 1, calls)
	assert.Empty(t, reader.committed)
}

func TestProcessorRunReaderError(t *testing.T) {
	readErr := errors.New("broker gone")
	reader := &erroringReader{err: readErr}

	err := NewProcessor(reader, &fakeStore{}, clockwork.NewFakeClock(), zap.NewNop()).Run(context.Background())

	assert.ErrorIs(t, err, readErr)
}

type erroringReader struct{ err error }

func (r *erroringReader) FetchMessage(context.Context) (kafkaGo.Message, error) {
	return kafkaGo.Message{}, r.err
}

func (r *erroringReader) CommitMessages(context.Context, ...kafkaGo.Message) error { return nil }
