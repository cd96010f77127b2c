package ecs

// Scheduler runs systems in a fixed dependency order once per tick.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := make([]System, 0, len(systems))
	for _, s := range systems {
		if s != nil {
			copied = append(copied, s)
		}
	}
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update advances the world clock by dt, runs every system and ends the
// tick.
func (s *Scheduler) Update(w *World, dt float64) {
	if w == nil {
		return
	}
	w.Tick(dt)
	for _, system := range s.systems {
		system.Update(w)
	}
	w.EndTick()
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
