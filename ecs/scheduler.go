package ecs

// System runs during the update phase of a frame.
type System interface {
	Update(w *World)
}

// LateSystem runs during the late phase, after every update system of the
// same frame has finished.
type LateSystem interface {
	LateUpdate(w *World)
}

// Scheduler holds the two ordered phases of a frame.
type Scheduler struct {
	systems []System
	late    []LateSystem
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) AddLate(system LateSystem) {
	if system == nil {
		return
	}
	s.late = append(s.late, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) LateUpdate(w *World) {
	for _, system := range s.late {
		system.LateUpdate(w)
	}
}

// Step runs one full frame: clock, update phase, late phase, event flush.
func (s *Scheduler) Step(w *World, dt float64) {
	w.BeginTick(dt)
	s.Update(w)
	s.LateUpdate(w)
	w.EndTick()
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
