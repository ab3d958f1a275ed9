// Package events decouples entity mutations from the entities that depend
// on them.
package events

import "github.com/facadeworks/facade-workbench/internal/workbench/domain"

type Type string

const (
	// FieldChanged fires after an attribute edit.
	FieldChanged Type = "field_changed"
	// VariantChanged fires after an entity switched discriminant.
	VariantChanged Type = "variant_changed"
	// ProfilesChanged fires when the set or names of defined profiles may
	// have changed.
	ProfilesChanged Type = "profiles_changed"
	// EntityRemoved fires after an entity left the project.
	EntityRemoved Type = "entity_removed"
)

type Event struct {
	Type      Type
	Item      domain.Item
	Attribute string
}

type Handler func(Event)

// Bus dispatches synchronously, in subscription order, on the publisher's
// goroutine. It is not safe for concurrent use; each document owns one.
type Bus struct {
	handlers map[Type][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]Handler)}
}

func (b *Bus) Subscribe(t Type, h Handler) {
	b.handlers[t] = append(b.handlers[t], h)
}

func (b *Bus) Publish(e Event) {
	for _, h := range b.handlers[e.Type] {
		h(e)
	}
}
