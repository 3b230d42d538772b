package routing_test

import (
	"testing"

	"github.com/bjaus/routing"
)

func TestValidate(t *testing.T) {
	w := newWorld()

	t.Run("accepts one or two parameters", func(t *testing.T) {
		one := w.route(1, w.order, w.orderID, w.orderCreated)
		two := w.route(2, w.order, w.orderID, w.orderCreated, w.eventContext)

		if diags := routing.Validate(one); diags != nil {
			t.Errorf("one parameter: unexpected diagnostics %v", diags)
		}
		if diags := routing.Validate(two); diags != nil {
			t.Errorf("two parameters: unexpected diagnostics %v", diags)
		}
	})

	t.Run("reports exactly WrongArity for other counts", func(t *testing.T) {
		params := []routing.Type{w.orderCreated, w.eventContext, w.orderID, w.orderID, w.orderID}
		for _, n := range []int{0, 3, 4, 5} {
			c := w.route(1, w.order, w.orderID, params[:n]...)
			diags := routing.Validate(c)
			if len(diags) != 1 {
				t.Fatalf("count %d: got %d diagnostics, want 1", n, len(diags))
			}
			if diags[0].Kind != routing.WrongArity {
				t.Errorf("count %d: kind = %v, want WrongArity", n, diags[0].Kind)
			}
			if diags[0].Count != n {
				t.Errorf("count %d: Count = %d", n, diags[0].Count)
			}
		}
	})

	t.Run("rejects top-level functions", func(t *testing.T) {
		c := w.route(1, nil, w.orderID, w.orderCreated)
		diags := routing.Validate(c)
		if len(diags) != 1 || diags[0].Kind != routing.NotMemberOfClass {
			t.Fatalf("diagnostics = %v, want one NotMemberOfClass", diags)
		}
		if diags[0].Membership != routing.TopLevel {
			t.Errorf("membership = %v, want TopLevel", diags[0].Membership)
		}
	})

	t.Run("rejects instance members", func(t *testing.T) {
		c := w.route(1, w.order, w.orderID, w.orderCreated)
		c.Static = false
		diags := routing.Validate(c)
		if len(diags) != 1 || diags[0].Kind != routing.NotMemberOfClass {
			t.Fatalf("diagnostics = %v, want one NotMemberOfClass", diags)
		}
		if diags[0].Membership != routing.NotStatic {
			t.Errorf("membership = %v, want NotStatic", diags[0].Membership)
		}
		if got := diags[0].Error(); got != "the route function `route(OrderCreated)` must be a static member of its class" {
			t.Errorf("message = %q", got)
		}
	})

	t.Run("reports every violated rule", func(t *testing.T) {
		c := w.route(1, nil, w.orderID)
		diags := routing.Validate(c)
		got := kinds(diags)
		want := []routing.Kind{routing.NotMemberOfClass, routing.WrongArity}
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("kinds = %v, want %v", got, want)
		}
	})

	t.Run("renders arity message", func(t *testing.T) {
		c := w.route(1, w.order, w.orderID)
		diags := routing.Validate(c)
		if len(diags) != 1 {
			t.Fatalf("got %d diagnostics", len(diags))
		}
		want := "the route function `route()` must accept one or two parameters; encountered: 0"
		if got := diags[0].Error(); got != want {
			t.Errorf("message = %q, want %q", got, want)
		}
	})
}
