package bus_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quoteterm/internal/bus"
)

func TestPublishRunsHandlersInOrder(t *testing.T) {
	b := bus.New[string, int](nil)
	var calls []string
	b.Subscribe("total", func(v int) { calls = append(calls, "first") })
	b.Subscribe("total", func(v int) { calls = append(calls, "second") })
	b.Subscribe("other", func(v int) { calls = append(calls, "other") })

	b.Publish("total", 7)

	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPublishPassesPayloadUnchanged(t *testing.T) {
	type payload struct{ Row int }
	b := bus.New[int, *payload](nil)
	sent := &payload{Row: 3}
	var got *payload
	b.Subscribe(1, func(p *payload) { got = p })

	b.Publish(1, sent)

	assert.Same(t, sent, got)
}

func TestPanickingHandlerDoesNotBlockOthers(t *testing.T) {
	var buf bytes.Buffer
	b := bus.New[string, string](log.New(&buf, "", 0))
	ran := false
	b.Subscribe("load", func(string) { panic("boom") })
	b.Subscribe("load", func(string) { ran = true })

	require.NotPanics(t, func() { b.Publish("load", "x") })
	assert.True(t, ran)
	assert.Contains(t, buf.String(), "boom")
}

func TestPublishWithoutSubscribers(t *testing.T) {
	b := bus.New[string, string](nil)
	assert.NotPanics(t, func() { b.Publish("nobody", "x") })
	assert.Equal(t, 0, b.Subscribers("nobody"))
}

func TestNilBusIsInert(t *testing.T) {
	var b *bus.Bus[string, int]
	assert.NotPanics(t, func() {
		b.Subscribe("x", func(int) {})
		b.Publish("x", 1)
	})
}
