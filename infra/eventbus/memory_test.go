package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	Message string `json:"message"`
}

func (e *testEvent) Type() string { return "test.event" }

type otherEvent struct{}

func (otherEvent) Type() string { return "other.event" }

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestMemoryEventBus_DispatchesByType(t *testing.T) {
	bus := NewWithMemory(newTestLogger())

	var got []string
	bus.Register("test.event", func(ctx context.Context, e eventbus.Event) error {
		got = append(got, e.(*testEvent).Message)
		return nil
	})
	bus.Register("other.event", func(ctx context.Context, e eventbus.Event) error {
		t.Fatal("handler for other.event must not be called")
		return nil
	})

	require.NoError(t, bus.Emit(context.Background(), &testEvent{Message: "a"}))
	require.NoError(t, bus.Emit(context.Background(), &testEvent{Message: "b"}))

	assert.Equal(t, []string{"a", "b"}, got)
	assert.Len(t, bus.Published(), 2)
}

func TestMemoryEventBus_HandlerFailuresAreContained(t *testing.T) {
	bus := NewWithMemory(newTestLogger())

	calls := 0
	bus.Register("other.event", func(ctx context.Context, e eventbus.Event) error {
		calls++
		return errors.New("boom")
	})
	bus.Register("other.event", func(ctx context.Context, e eventbus.Event) error {
		calls++
		panic("handler exploded")
	})
	bus.Register("other.event", func(ctx context.Context, e eventbus.Event) error {
		calls++
		return nil
	})

	err := bus.Emit(context.Background(), otherEvent{})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestMemoryEventBus_ClearPublished(t *testing.T) {
	bus := NewWithMemory(newTestLogger())
	require.NoError(t, bus.Emit(context.Background(), otherEvent{}))

	published := bus.Published()
	require.Len(t, published, 1)

	bus.ClearPublished()
	assert.Empty(t, bus.Published())
	assert.Len(t, published, 1)
}
