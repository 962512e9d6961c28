package eventbus

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedisBus starts a Redis container and returns a bus connected to it.
func setupRedisBus(t *testing.T) *RedisEventBus {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0.5",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	url := "redis://" + host + ":" + port.Port()
	types := map[string]func() eventbus.Event{
		"test.event": func() eventbus.Event { return &testEvent{} },
	}
	bus, err := NewWithRedis(url, "ledger-test", "ledger-test-group", types, newTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func TestRedisBus_HandlerReceivesEvent(t *testing.T) {
	bus := setupRedisBus(t)

	received := make(chan string, 1)
	bus.Register("test.event", func(ctx context.Context, e eventbus.Event) error {
		received <- e.(*testEvent).Message
		return nil
	})

	require.NoError(t, bus.Emit(context.Background(), &testEvent{Message: "hello"}))

	select {
	case msg := <-received:
		require.Equal(t, "hello", msg)
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not receive event in time")
	}
}

func TestRedisBus_MultipleEventsInOrder(t *testing.T) {
	bus := setupRedisBus(t)

	received := make(chan string, 3)
	bus.Register("test.event", func(ctx context.Context, e eventbus.Event) error {
		received <- e.(*testEvent).Message
		return nil
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, bus.Emit(context.Background(), &testEvent{Message: fmt.Sprintf("msg %d", i)}))
	}

	for i := 0; i < 3; i++ {
		select {
		case msg := <-received:
			require.Equal(t, fmt.Sprintf("msg %d", i), msg)
		case <-time.After(5 * time.Second):
			t.Fatalf("event %d not delivered", i)
		}
	}
}

func TestRedisBus_FailedHandlerGoesToDLQ(t *testing.T) {
	bus := setupRedisBus(t)

	called := make(chan struct{}, 1)
	bus.Register("test.event", func(ctx context.Context, e eventbus.Event) error {
		called <- struct{}{}
		return fmt.Errorf("cannot process")
	})

	require.NoError(t, bus.Emit(context.Background(), &testEvent{Message: "bad"}))

	select {
	case <-called:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	require.Eventually(t, func() bool {
		n, err := bus.client.XLen(context.Background(), dlqStreamName(bus.stream)).Result()
		return err == nil && n == 1
	}, 5*time.Second, 100*time.Millisecond)
}

func TestNewWithRedis_RequiresSettings(t *testing.T) {
	_, err := NewWithRedis("", "s", "g", nil, newTestLogger())
	require.Error(t, err)

	_, err = NewWithRedis("not-a-url", "s", "g", nil, newTestLogger())
	require.Error(t, err)
}
