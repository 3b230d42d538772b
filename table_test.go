package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/routing"
)

func TestAssemble(t *testing.T) {
	w := newWorld()
	owner := &routing.Owner{Type: w.order, ID: w.orderID}
	created := &routing.RouteFunction{Name: "route", Category: routing.Event, Owner: owner, Message: w.orderCreated}
	event := &routing.RouteFunction{Name: "route", Category: routing.Event, Owner: owner, Message: w.orderEvent, Shape: routing.Multicast}

	t.Run("nil for no functions", func(t *testing.T) {
		assert.Nil(t, routing.Assemble(nil))
	})

	t.Run("keeps order and bucket", func(t *testing.T) {
		table := routing.Assemble([]*routing.RouteFunction{created, event})
		require.NotNil(t, table)
		assert.Same(t, owner, table.Owner)
		assert.Equal(t, routing.Event, table.Category)
		assert.Equal(t, []string{"io.acme.OrderCreated", "io.acme.OrderEvent"}, messages(table))
		assert.Equal(t, []*routing.RouteFunction{created, event}, table.Routes())
	})

	t.Run("idempotent", func(t *testing.T) {
		once := routing.Assemble([]*routing.RouteFunction{created, event})
		twice := routing.Assemble(once.Routes())
		assert.Equal(t, once, twice)
	})

	t.Run("matches the first accepting entry", func(t *testing.T) {
		table := routing.Assemble(routing.Order([]*routing.RouteFunction{event, created}))

		e, ok := table.Match(w.orderCreated)
		require.True(t, ok)
		assert.Same(t, created, e.Route)

		e, ok = table.Match(w.orderShipped)
		require.True(t, ok)
		assert.Same(t, event, e.Route)

		_, ok = table.Match(w.createOrder)
		assert.False(t, ok)
	})
}
