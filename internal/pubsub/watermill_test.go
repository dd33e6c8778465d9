package pubsub

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeting struct {
	Text string `json:"text"`
}

func TestBridgeDeliversTypedEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracer, cleanup, err := SetupOTel(ctx, TracingConfig{Enabled: false})
	require.NoError(t, err)
	defer cleanup()

	bridge := NewWatermillBridgeWithTracer(tracer)
	defer bridge.Close()

	event := NewEvent[greeting]("test.greeting")
	received := make(chan Message, 1)
	require.NoError(t, bridge.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		received <- msg
		return nil
	}))

	err = Publish(ctx, bridge, event, "01234567", map[string]string{"request_id": "req-1"}, greeting{Text: "hello"})
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, "test.greeting", msg.Topic)
		assert.Equal(t, "01234567", msg.CIN)
		assert.Equal(t, "req-1", msg.Metadata["request_id"])
		got, err := Decode(event, msg)
		require.NoError(t, err)
		assert.Equal(t, "hello", got.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("message was not delivered")
	}
}

func TestBridgeDropsMalformedMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := NewWatermillBridge()
	defer bridge.Close()

	event := NewEvent[greeting]("test.greeting")
	var attempts atomic.Int32
	received := make(chan greeting, 1)
	require.NoError(t, bridge.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		attempts.Add(1)
		g, err := Decode(event, msg)
		if err != nil {
			return err
		}
		received <- g
		return nil
	}))

	require.NoError(t, bridge.Publish(ctx, Message{Topic: event.Name(), Payload: []byte("{not json")}))
	require.NoError(t, Publish(ctx, bridge, event, "", nil, greeting{Text: "after"}))

	select {
	case g := <-received:
		assert.Equal(t, "after", g.Text)
		assert.Equal(t, int32(2), attempts.Load(), "the malformed message is handled once")
	case <-time.After(2 * time.Second):
		t.Fatal("the bus stalled on the malformed message")
	}
}

func TestDecodeMarksMalformed(t *testing.T) {
	_, err := Decode(NewEvent[greeting]("test.greeting"), Message{Payload: []byte("[")})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSetupOTel(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled tracing", func(t *testing.T) {
		tracer, cleanup, err := SetupOTel(ctx, TracingConfig{Enabled: false})
		require.NoError(t, err)
		require.NotNil(t, tracer)

		_, span := tracer.Start(ctx, "test")
		span.End()
		cleanup()
	})

	t.Run("enabled tracing with unreachable collector", func(t *testing.T) {
		tracer, cleanup, err := SetupOTel(ctx, TracingConfig{
			Enabled:     true,
			ServiceName: "test-service",
			ZipkinURL:   "http://invalid-url:9411/api/v2/spans",
		})
		require.NoError(t, err)
		require.NotNil(t, tracer)
		cleanup()
	})
}
