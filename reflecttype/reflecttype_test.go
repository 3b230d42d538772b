package reflecttype_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/routing"
	"github.com/bjaus/routing/reflecttype"
)

type OrderID string

type Order struct{ id OrderID }

func (o Order) ID() OrderID            { return o.id }
func (Order) Lookup() (OrderID, error) { return "", nil }

type Account struct{}

func (*Account) ID() OrderID { return "" }

type Ledger struct{}

type Event interface{ EventName() string }

type OrderEvent interface {
	Event
	OrderRef() OrderID
}

type OrderCreated struct{ Order OrderID }

func (OrderCreated) EventName() string   { return "order.created" }
func (e OrderCreated) OrderRef() OrderID { return e.Order }

type Shipped struct{}

func (*Shipped) EventName() string { return "order.shipped" }

type EventContext struct{}

type Heartbeat struct{}

func config() routing.Config {
	return routing.Config{
		Entity: reflecttype.NewCapability("entity", "ID"),
		Set:    reflecttype.Set{},
		Descriptors: []routing.Descriptor{{
			Category:  routing.Event,
			Message:   reflecttype.TypeOf[Event](),
			Context:   reflecttype.TypeOf[EventContext](),
			Multicast: true,
		}},
	}
}

func TestType(t *testing.T) {
	event := reflecttype.TypeOf[Event]()
	orderEvent := reflecttype.TypeOf[OrderEvent]()
	created := reflecttype.TypeOf[OrderCreated]()

	t.Run("names", func(t *testing.T) {
		assert.True(t, strings.HasSuffix(created.QualifiedName(), "/reflecttype_test.OrderCreated"))
		assert.Equal(t, "string", reflecttype.TypeOf[string]().QualifiedName())
		assert.Equal(t, "[]int", reflecttype.TypeOf[[]int]().QualifiedName())
		assert.Nil(t, reflecttype.Of(nil))
	})

	t.Run("interfaces", func(t *testing.T) {
		assert.True(t, event.IsInterface())
		assert.False(t, created.IsInterface())
	})

	t.Run("assignability", func(t *testing.T) {
		assert.True(t, event.IsAssignableFrom(created))
		assert.True(t, event.IsAssignableFrom(orderEvent))
		assert.True(t, orderEvent.IsAssignableFrom(created))
		assert.False(t, orderEvent.IsAssignableFrom(event))
		assert.True(t, created.IsAssignableFrom(created))
		assert.False(t, created.IsAssignableFrom(reflecttype.TypeOf[Heartbeat]()))
		assert.False(t, event.IsAssignableFrom(reflecttype.Set{}))
	})

	t.Run("pointer receivers count", func(t *testing.T) {
		assert.True(t, event.IsAssignableFrom(reflecttype.TypeOf[Shipped]()))
		assert.True(t, event.IsAssignableFrom(reflecttype.TypeOf[*Shipped]()))
	})

	t.Run("type arguments", func(t *testing.T) {
		id := reflecttype.TypeOf[OrderID]()
		assert.Equal(t, []routing.Type{id}, reflecttype.TypeOf[map[OrderID]struct{}]().TypeArguments())
		assert.Equal(t, []routing.Type{id}, reflecttype.TypeOf[[]OrderID]().TypeArguments())
		assert.Nil(t, created.TypeArguments())
	})

	t.Run("methods", func(t *testing.T) {
		id := reflecttype.TypeOf[OrderID]()

		r, ok := reflecttype.TypeOf[Order]().Method("ID")
		require.True(t, ok)
		assert.Equal(t, id, r)

		r, ok = reflecttype.TypeOf[Account]().Method("ID")
		require.True(t, ok)
		assert.Equal(t, id, r)

		_, ok = reflecttype.TypeOf[Order]().Method("Lookup")
		assert.False(t, ok, "two results")
		_, ok = reflecttype.TypeOf[Ledger]().Method("ID")
		assert.False(t, ok)
	})

	t.Run("reflect round trip", func(t *testing.T) {
		typ, ok := created.(reflecttype.Type)
		require.True(t, ok)
		assert.Equal(t, reflect.TypeFor[OrderCreated](), typ.Reflect())
	})
}

func TestCapability(t *testing.T) {
	entity := reflecttype.NewCapability("entity", "ID")

	assert.Equal(t, "entity", entity.QualifiedName())
	assert.True(t, entity.IsInterface())
	assert.True(t, entity.IsAssignableFrom(entity))
	assert.False(t, entity.IsAssignableFrom(reflecttype.NewCapability("other", "ID")))
	assert.True(t, entity.IsAssignableFrom(reflecttype.TypeOf[Order]()))
	assert.True(t, entity.IsAssignableFrom(reflecttype.TypeOf[Account]()))
	assert.False(t, entity.IsAssignableFrom(reflecttype.TypeOf[Ledger]()))
	assert.Nil(t, entity.TypeArguments())

	_, ok := entity.Method("ID")
	assert.False(t, ok)
}

func TestSet(t *testing.T) {
	set := reflecttype.Set{}
	assert.True(t, set.IsAssignableFrom(reflecttype.TypeOf[map[OrderID]struct{}]()))
	assert.True(t, set.IsAssignableFrom(reflecttype.TypeOf[[]OrderID]()))
	assert.False(t, set.IsAssignableFrom(reflecttype.TypeOf[map[OrderID]bool]()))
	assert.False(t, set.IsAssignableFrom(reflecttype.TypeOf[OrderID]()))
	assert.False(t, set.IsAssignableFrom(set))
}

func TestCandidate(t *testing.T) {
	order := reflect.TypeFor[Order]()

	t.Run("from a function", func(t *testing.T) {
		c := reflecttype.Candidate(order, "byCreated", func(e OrderCreated, _ EventContext) OrderID {
			return e.Order
		})
		assert.Equal(t, "byCreated", c.Name)
		assert.True(t, c.Static)
		assert.Equal(t, reflecttype.TypeOf[Order](), c.Enclosing)
		assert.Equal(t, []routing.Type{
			reflecttype.TypeOf[OrderCreated](),
			reflecttype.TypeOf[EventContext](),
		}, c.Params)
		assert.Equal(t, reflecttype.TypeOf[OrderID](), c.Return)
		assert.True(t, strings.HasSuffix(c.Location.File, "reflecttype_test.go"), c.Location.File)
		assert.Positive(t, c.Location.Line)
	})

	t.Run("without a single result", func(t *testing.T) {
		c := reflecttype.Candidate(order, "none", func(OrderCreated) {})
		assert.Nil(t, c.Return)
		c = reflecttype.Candidate(order, "two", func(OrderCreated) (OrderID, error) { return "", nil })
		assert.Nil(t, c.Return)
	})

	t.Run("top level", func(t *testing.T) {
		c := reflecttype.Candidate(nil, "loose", func(OrderCreated) OrderID { return "" })
		assert.Nil(t, c.Enclosing)
	})

	t.Run("not a function", func(t *testing.T) {
		c := reflecttype.Candidate(order, "broken", 42)
		assert.Empty(t, c.Params)
		assert.Nil(t, c.Return)
	})
}

func TestResolveGoTypes(t *testing.T) {
	r, err := routing.New(config())
	require.NoError(t, err)

	order := reflect.TypeFor[Order]()
	res := r.Resolve([]routing.Candidate{
		reflecttype.Candidate(order, "byEvent", func(e OrderEvent) map[OrderID]struct{} {
			return map[OrderID]struct{}{e.OrderRef(): {}}
		}),
		reflecttype.Candidate(order, "byCreated", func(e OrderCreated, _ EventContext) OrderID {
			return e.Order
		}),
		reflecttype.Candidate(order, "byShipped", func(*Shipped) []OrderID { return nil }),
		reflecttype.Candidate(reflect.TypeFor[Ledger](), "ledger", func(OrderCreated) OrderID { return "" }),
		reflecttype.Candidate(nil, "loose", func(OrderCreated) OrderID { return "" }),
		reflecttype.Candidate(order, "beat", func(Heartbeat) OrderID { return "" }),
	})

	assert.ElementsMatch(t, []routing.Kind{
		routing.OwnerNotEntity,
		routing.NotMemberOfClass,
		routing.UnrecognizedSignature,
	}, kinds(res.Diagnostics))

	// Errors on Order poison its only table.
	assert.Empty(t, res.Tables)
}

func TestResolveGoTypesTable(t *testing.T) {
	r, err := routing.New(config())
	require.NoError(t, err)

	order := reflect.TypeFor[Order]()
	res := r.Resolve([]routing.Candidate{
		reflecttype.Candidate(order, "byEvent", func(OrderEvent) map[OrderID]struct{} { return nil }),
		reflecttype.Candidate(order, "byCreated", func(e OrderCreated, _ EventContext) OrderID { return e.Order }),
		reflecttype.Candidate(order, "byShipped", func(*Shipped) []OrderID { return nil }),
	})
	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Tables, 1)

	table := res.Tables[0]
	assert.Equal(t, reflecttype.TypeOf[OrderID](), table.Owner.ID)

	var names []string
	var shapes []routing.Shape
	for _, e := range table.Entries {
		names = append(names, e.Route.Name)
		shapes = append(shapes, e.Route.Shape)
	}
	assert.Equal(t, []string{"byShipped", "byCreated", "byEvent"}, names)
	assert.Equal(t, []routing.Shape{routing.Multicast, routing.Unicast, routing.Multicast}, shapes)

	e, ok := table.Match(reflecttype.TypeOf[OrderCreated]())
	require.True(t, ok)
	assert.Equal(t, "byCreated", e.Route.Name)
}

func kinds(diags []routing.Diagnostic) []routing.Kind {
	var out []routing.Kind
	for _, d := range diags {
		out = append(out, d.Kind)
	}
	return out
}
