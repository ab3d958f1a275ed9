package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_DispatchesInOrderByType(t *testing.T) {
	b := NewBus()
	var got []string

	b.Subscribe(FieldChanged, func(e Event) { got = append(got, "first:"+e.Attribute) })
	b.Subscribe(FieldChanged, func(e Event) { got = append(got, "second:"+e.Attribute) })
	b.Subscribe(ProfilesChanged, func(Event) { got = append(got, "profiles") })

	b.Publish(Event{Type: FieldChanged, Attribute: "length"})
	assert.Equal(t, []string{"first:length", "second:length"}, got)

	b.Publish(Event{Type: EntityRemoved})
	assert.Len(t, got, 2)
}
