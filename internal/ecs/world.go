package ecs

// World is the entity arena and component store.
//
// Entities live in insertion order so every scan over them is deterministic.
// Destroy only deactivates an entity; it stays queryable as inactive until
// Cull removes it at the end of the tick.
type World struct {
	nextID     EntityID
	order      []EntityID
	active     map[EntityID]bool
	components map[ComponentType]map[EntityID]Component
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		nextID:     1,
		active:     make(map[EntityID]bool),
		components: make(map[ComponentType]map[EntityID]Component),
	}
}

// CreateEntity mints a new entity ID and marks it active.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.active[id] = true
	w.order = append(w.order, id)
	return id
}

// Destroy deactivates the entity. Its components remain readable until Cull.
// Destroying an unknown or already inactive entity is a no-op.
func (w *World) Destroy(id EntityID) {
	if w.active[id] {
		w.active[id] = false
	}
}

// Active reports whether the entity exists and has not been destroyed.
func (w *World) Active(id EntityID) bool {
	return w.active[id]
}

// Exists reports whether the entity is still in the arena, active or not.
func (w *World) Exists(id EntityID) bool {
	_, ok := w.active[id]
	return ok
}

// Cull removes every inactive entity and its components, and returns the
// removed IDs in insertion order.
func (w *World) Cull() []EntityID {
	var removed []EntityID
	kept := w.order[:0]
	for _, id := range w.order {
		if w.active[id] {
			kept = append(kept, id)
			continue
		}
		removed = append(removed, id)
		delete(w.active, id)
		for _, store := range w.components {
			delete(store, id)
		}
	}
	w.order = kept
	return removed
}

// Len returns the number of entities in the arena, including inactive ones
// not yet culled.
func (w *World) Len() int { return len(w.order) }

// Add attaches a component to an entity, replacing any of the same type.
func (w *World) Add(id EntityID, c Component) {
	t := c.Type()
	if w.components[t] == nil {
		w.components[t] = make(map[EntityID]Component)
	}
	w.components[t][id] = c
}

// Get returns the component of the given type for entity id, or nil.
func (w *World) Get(id EntityID, t ComponentType) Component {
	store := w.components[t]
	if store == nil {
		return nil
	}
	return store[id]
}

// Remove detaches a component from an entity.
func (w *World) Remove(id EntityID, t ComponentType) {
	if store := w.components[t]; store != nil {
		delete(store, id)
	}
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id EntityID, t ComponentType) bool {
	return w.Get(id, t) != nil
}

// Entities returns every active entity in insertion order.
func (w *World) Entities() []EntityID {
	result := make([]EntityID, 0, len(w.order))
	for _, id := range w.order {
		if w.active[id] {
			result = append(result, id)
		}
	}
	return result
}

// Query returns all active entities that have every listed component type,
// in insertion order.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	var result []EntityID
	for _, id := range w.order {
		if !w.active[id] {
			continue
		}
		match := true
		for _, t := range types {
			if !w.Has(id, t) {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	return result
}
