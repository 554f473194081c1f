// Package event carries simulation notifications out to the host.
package event

import (
	"void-miner/internal/ecs"
	"void-miner/internal/inventory"
	"void-miner/internal/mining"
)

// Sink receives every notification the simulation emits. Implementations
// must not block and must not call back into the simulation.
type Sink interface {
	inventory.Observer
	mining.Observer
}

// Kind identifies an Event.
type Kind uint8

const (
	ItemsAdded Kind = iota
	ItemsRemoved
	ResourceMined
	InventoryFull
)

func (k Kind) String() string {
	switch k {
	case ItemsAdded:
		return "items_added"
	case ItemsRemoved:
		return "items_removed"
	case ResourceMined:
		return "resource_mined"
	case InventoryFull:
		return "inventory_full"
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Event is one buffered notification.
type Event struct {
	Kind     Kind                   `json:"kind"`
	Store    *inventory.Store       `json:"-"`
	Node     ecs.EntityID           `json:"node,omitempty"`
	Resource inventory.ResourceType `json:"resource,omitempty"`
	Amount   int                    `json:"amount,omitempty"`
	Tier     mining.Tier            `json:"tier"`
}

// Nop discards everything.
type Nop struct{}

func (Nop) OnItemsAdded(*inventory.Store, inventory.ResourceType, int)              {}
func (Nop) OnItemsRemoved(*inventory.Store, inventory.ResourceType, int)            {}
func (Nop) OnResourceMined(ecs.EntityID, inventory.ResourceType, int, mining.Tier) {}
func (Nop) OnInventoryFull()                                                        {}

// Queue buffers events until the host drains them once per frame.
type Queue struct {
	events []Event
}

func (q *Queue) OnItemsAdded(s *inventory.Store, t inventory.ResourceType, qty int) {
	q.events = append(q.events, Event{Kind: ItemsAdded, Store: s, Resource: t, Amount: qty})
}

func (q *Queue) OnItemsRemoved(s *inventory.Store, t inventory.ResourceType, qty int) {
	q.events = append(q.events, Event{Kind: ItemsRemoved, Store: s, Resource: t, Amount: qty})
}

func (q *Queue) OnResourceMined(node ecs.EntityID, t inventory.ResourceType, amount int, tier mining.Tier) {
	q.events = append(q.events, Event{Kind: ResourceMined, Node: node, Resource: t, Amount: amount, Tier: tier})
}

func (q *Queue) OnInventoryFull() {
	q.events = append(q.events, Event{Kind: InventoryFull})
}

// Drain returns the buffered events and empties the queue.
func (q *Queue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of buffered events.
func (q *Queue) Len() int { return len(q.events) }

// Multi fans every notification out to each sink in order.
type Multi []Sink

func (m Multi) OnItemsAdded(s *inventory.Store, t inventory.ResourceType, qty int) {
	for _, sink := range m {
		sink.OnItemsAdded(s, t, qty)
	}
}

func (m Multi) OnItemsRemoved(s *inventory.Store, t inventory.ResourceType, qty int) {
	for _, sink := range m {
		sink.OnItemsRemoved(s, t, qty)
	}
}

func (m Multi) OnResourceMined(node ecs.EntityID, t inventory.ResourceType, amount int, tier mining.Tier) {
	for _, sink := range m {
		sink.OnResourceMined(node, t, amount, tier)
	}
}

func (m Multi) OnInventoryFull() {
	for _, sink := range m {
		sink.OnInventoryFull()
	}
}
