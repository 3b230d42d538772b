package routing_test

import (
	"github.com/bjaus/routing"
	"github.com/bjaus/routing/typesys"
)

// world is a small entity model shared by the tests:
//
//	Entity <- Aggregate <- Order (getId: OrderId)
//	Entity <- Projection <- Report (getId: ReportId)
//	Entity <- ProcessManager
//	Ledger (not an entity)
//
//	CommandMessage <- CreateOrder, CancelOrder
//	EventMessage <- OrderEvent <- OrderCreated, OrderShipped
//	EntityState <- OrderState
type world struct {
	u *typesys.Universe

	entity, set                           *typesys.Type
	aggregate, projection, processManager *typesys.Type

	commandMessage, commandContext *typesys.Type
	eventMessage, eventContext     *typesys.Type
	entityState                    *typesys.Type

	orderID, reportID *typesys.Type
	order, report     *typesys.Type
	ledger            *typesys.Type

	createOrder, cancelOrder   *typesys.Type
	orderEvent                 *typesys.Type
	orderCreated, orderShipped *typesys.Type
	orderState                 *typesys.Type

	cfg routing.Config
}

func newWorld() *world {
	u := typesys.New()
	w := &world{u: u}

	w.entity = u.Interface("io.acme.Entity")
	w.set = u.Interface("java.util.Set")
	w.aggregate = u.Class("io.acme.Aggregate", w.entity)
	w.projection = u.Class("io.acme.Projection", w.entity)
	w.processManager = u.Class("io.acme.ProcessManager", w.entity)

	w.commandMessage = u.Interface("io.acme.CommandMessage")
	w.commandContext = u.Class("io.acme.CommandContext")
	w.eventMessage = u.Interface("io.acme.EventMessage")
	w.eventContext = u.Class("io.acme.EventContext")
	w.entityState = u.Interface("io.acme.EntityState")

	w.orderID = u.Class("io.acme.OrderId")
	w.reportID = u.Class("io.acme.ReportId")
	w.order = u.Class("io.acme.Order", w.aggregate).WithMethod("getId", w.orderID)
	w.report = u.Class("io.acme.Report", w.projection).WithMethod("getId", w.reportID)
	w.ledger = u.Class("io.acme.Ledger").WithMethod("getId", w.orderID)

	w.createOrder = u.Class("io.acme.CreateOrder", w.commandMessage)
	w.cancelOrder = u.Class("io.acme.CancelOrder", w.commandMessage)
	w.orderEvent = u.Interface("io.acme.OrderEvent", w.eventMessage)
	w.orderCreated = u.Class("io.acme.OrderCreated", w.orderEvent)
	w.orderShipped = u.Class("io.acme.OrderShipped", w.orderEvent)
	w.orderState = u.Class("io.acme.OrderState", w.entityState)

	w.cfg = routing.Config{
		Entity:     w.entity,
		IDAccessor: "getId",
		Set:        w.set,
		Descriptors: []routing.Descriptor{
			{
				Category: routing.Command,
				Message:  w.commandMessage,
				Context:  w.commandContext,
				Owners:   []routing.Type{w.aggregate, w.processManager},
			},
			{
				Category:  routing.Event,
				Message:   w.eventMessage,
				Context:   w.eventContext,
				Multicast: true,
			},
			{
				Category:  routing.StateUpdate,
				Message:   w.entityState,
				Context:   w.eventContext,
				Multicast: true,
				Owners:    []routing.Type{w.projection, w.processManager},
			},
		},
	}
	return w
}

// setOf returns the Set instance of the given element type.
func (w *world) setOf(elem *typesys.Type) *typesys.Type {
	return w.u.Instance(w.set, elem)
}

// route builds a static candidate named "route" declared in owner.
func (w *world) route(line int, owner routing.Type, ret routing.Type, params ...routing.Type) routing.Candidate {
	file := "Unknown.java"
	if owner != nil {
		file = routing.TypeName(owner) + ".java"
	}
	return routing.Candidate{
		Name:      "route",
		Location:  routing.Location{File: file, Line: line},
		Params:    params,
		Return:    ret,
		Static:    true,
		Enclosing: owner,
	}
}

// messages returns the qualified message type names of a table in order.
func messages(t *routing.Table) []string {
	var out []string
	for _, e := range t.Entries {
		out = append(out, e.Message.QualifiedName())
	}
	return out
}

func kinds(diags []routing.Diagnostic) []routing.Kind {
	var out []routing.Kind
	for _, d := range diags {
		out = append(out, d.Kind)
	}
	return out
}
