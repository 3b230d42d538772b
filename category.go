package routing

import (
	"errors"
	"fmt"
	"slices"
)

// Category is the kind of message a route function routes.
type Category int

const (
	Command Category = iota
	Event
	StateUpdate
)

// Categories lists every category in classification order.
var Categories = []Category{Command, Event, StateUpdate}

func (c Category) String() string {
	switch c {
	case Command:
		return "command"
	case Event:
		return "event"
	case StateUpdate:
		return "state-update"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Descriptor tells the resolver how to recognize route functions of one
// category.
type Descriptor struct {
	Category Category

	// Message is the message capability. The first parameter of a route
	// function must be assignable to it.
	Message Type

	// Context is the exact type the optional second parameter must have.
	Context Type

	// Multicast allows functions of this category to return a set of
	// identifiers instead of a single one.
	Multicast bool

	// Owners restricts the entity base types allowed to declare routes of
	// this category. Empty means any entity.
	Owners []Type
}

// DefaultIDAccessor is the name of the identifier accessor used when
// Config.IDAccessor is empty.
const DefaultIDAccessor = "ID"

var (
	// ErrNoEntity is returned when Config.Entity is nil.
	ErrNoEntity = errors.New("routing: entity capability type is required")
	// ErrNoDescriptors is returned when Config.Descriptors is empty.
	ErrNoDescriptors = errors.New("routing: at least one category descriptor is required")
	// ErrDuplicateCategory is returned when two descriptors share a category.
	ErrDuplicateCategory = errors.New("routing: duplicate category descriptor")
	// ErrIncompleteDescriptor is returned when a descriptor lacks a message
	// or context type.
	ErrIncompleteDescriptor = errors.New("routing: descriptor needs message and context types")
	// ErrNoSetType is returned when a descriptor allows multicast but
	// Config.Set is nil.
	ErrNoSetType = errors.New("routing: multicast descriptor requires a set type")
)

// Config describes the host conventions the resolver checks against.
type Config struct {
	// Descriptors holds one entry per routed category. The order given here
	// does not matter: categories are always tried Command, Event, StateUpdate.
	Descriptors []Descriptor

	// Entity is the routable-entity capability every owner must implement.
	Entity Type

	// IDAccessor is the name of the member whose result type is the entity
	// identifier type. Defaults to DefaultIDAccessor.
	IDAccessor string

	// Set is the container type multicast functions return. Its single type
	// argument must be assignable to the identifier type.
	Set Type
}

// validate checks the config and returns a normalized copy.
func (c Config) validate() (Config, error) {
	if c.Entity == nil {
		return Config{}, ErrNoEntity
	}
	if len(c.Descriptors) == 0 {
		return Config{}, ErrNoDescriptors
	}
	seen := make(map[Category]bool, len(c.Descriptors))
	for _, d := range c.Descriptors {
		if seen[d.Category] {
			return Config{}, fmt.Errorf("%w: %s", ErrDuplicateCategory, d.Category)
		}
		seen[d.Category] = true
		if d.Message == nil || d.Context == nil {
			return Config{}, fmt.Errorf("%w: %s", ErrIncompleteDescriptor, d.Category)
		}
		if d.Multicast && c.Set == nil {
			return Config{}, fmt.Errorf("%w: %s", ErrNoSetType, d.Category)
		}
	}
	out := c
	out.Descriptors = slices.Clone(c.Descriptors)
	slices.SortFunc(out.Descriptors, func(a, b Descriptor) int {
		return int(a.Category) - int(b.Category)
	})
	if out.IDAccessor == "" {
		out.IDAccessor = DefaultIDAccessor
	}
	return out, nil
}
