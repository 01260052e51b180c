package ecs

import (
	"errors"

	"github.com/milk9111/dustbunnies/ecs/component"
)

var ErrEntityNotAlive = errors.New("ecs: entity not alive")

// World owns entities, their components, the per-frame event queue and the
// frame clock seen by systems.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue

	dt   float64
	tick uint64
	time float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// BeginTick advances the frame clock. Hosts call it once per frame before
// running the update phase.
func (w *World) BeginTick(dt float64) {
	if w == nil {
		return
	}
	w.dt = dt
	w.tick++
	w.time += dt
}

// EndTick drops any events nobody consumed this frame.
func (w *World) EndTick() {
	if w == nil {
		return
	}
	w.events.flush()
}

// DeltaTime is the duration of the current frame in seconds.
func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Tick is the number of frames begun so far.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Time is the accumulated frame time in seconds.
func (w *World) Time() float64 {
	if w == nil {
		return 0
	}
	return w.time
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. It returns false when
// e was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.live()
}
