package ecs

// System updates a world each frame.
type System interface {
	Update(w *World)
}

type Scheduler struct {
	systems []System
	renders []RenderSystem
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

// Add appends a system to the update order. Systems that also implement
// RenderSystem are drawn in the same order.
func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
	if rs, ok := system.(RenderSystem); ok {
		s.renders = append(s.renders, rs)
	}
}

// AddRender appends a draw-only system.
func (s *Scheduler) AddRender(rs RenderSystem) {
	if rs == nil {
		return
	}
	s.renders = append(s.renders, rs)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
