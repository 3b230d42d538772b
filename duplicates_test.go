package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/routing"
)

func TestDetectDuplicates(t *testing.T) {
	w := newWorld()
	owner := &routing.Owner{Type: w.order, ID: w.orderID}
	fn := func(line int, cat routing.Category, msg routing.Type) *routing.RouteFunction {
		return &routing.RouteFunction{
			Name:     "route",
			Category: cat,
			Owner:    owner,
			Message:  msg,
			Return:   w.orderID,
			Location: routing.Location{File: "Order.java", Line: line},
		}
	}

	t.Run("no conflicts", func(t *testing.T) {
		in := []*routing.RouteFunction{
			fn(1, routing.Event, w.orderCreated),
			fn(2, routing.Event, w.orderShipped),
			fn(3, routing.Command, w.createOrder),
		}
		ok, diags := routing.DetectDuplicates(in)
		assert.Empty(t, diags)
		assert.Equal(t, in, ok)
	})

	t.Run("reports both declarations of one message", func(t *testing.T) {
		first := fn(10, routing.Event, w.orderCreated)
		second := fn(20, routing.Event, w.orderCreated)
		other := fn(30, routing.Event, w.orderShipped)

		ok, diags := routing.DetectDuplicates([]*routing.RouteFunction{second, other, first})
		require.Len(t, diags, 1)
		assert.Equal(t, []*routing.RouteFunction{other}, ok)

		d := diags[0]
		assert.Equal(t, routing.DuplicateRoute, d.Kind)
		assert.Equal(t, routing.Event, d.Category)
		assert.Same(t, w.order, d.Enclosing)
		assert.Equal(t, []routing.Location{first.Location, second.Location}, d.Locations)
		assert.Equal(t, second.Location, d.Location)
		assert.Equal(t,
			"the class `io.acme.Order` declares more than one event route function for `io.acme.OrderCreated`:\n"+
				" * `route(OrderCreated)` at Order.java:10\n"+
				" * `route(OrderCreated)` at Order.java:20",
			d.Error())
	})

	t.Run("one diagnostic per conflicting group", func(t *testing.T) {
		in := []*routing.RouteFunction{
			fn(1, routing.Event, w.orderCreated),
			fn(2, routing.Event, w.orderCreated),
			fn(3, routing.Event, w.orderCreated),
			fn(4, routing.Event, w.orderShipped),
			fn(5, routing.Event, w.orderShipped),
		}
		ok, diags := routing.DetectDuplicates(in)
		assert.Empty(t, ok)
		require.Len(t, diags, 2)
		assert.Len(t, diags[0].Locations, 3)
		assert.Len(t, diags[1].Locations, 2)
		assert.Equal(t, 3, diags[0].Location.Line)
		assert.Equal(t, 5, diags[1].Location.Line)
	})

	t.Run("same message in different categories is not a duplicate", func(t *testing.T) {
		in := []*routing.RouteFunction{
			fn(1, routing.Event, w.orderCreated),
			fn(2, routing.StateUpdate, w.orderCreated),
		}
		ok, diags := routing.DetectDuplicates(in)
		assert.Empty(t, diags)
		assert.Len(t, ok, 2)
	})

	t.Run("aliases denote one type", func(t *testing.T) {
		require.NoError(t, w.u.Alias("io.acme.Created", w.orderCreated))
		alias, found := w.u.Lookup("io.acme.Created")
		require.True(t, found)

		_, diags := routing.DetectDuplicates([]*routing.RouteFunction{
			fn(1, routing.Event, w.orderCreated),
			fn(2, routing.Event, alias),
		})
		require.Len(t, diags, 1)
		assert.Equal(t, routing.DuplicateRoute, diags[0].Kind)
	})
}
