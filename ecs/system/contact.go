package system

import (
	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

const (
	categoryHazard uint = 1 << iota
	categoryGoal
	categoryInteract
	categoryExit

	allCategories = ^uint(0)
)

// contactShape maps a static shape back to the entity it was built from.
type contactShape struct {
	entity   ecs.Entity
	category uint
	owner    int
	trigger  component.TriggerKind
}

// ContactSystem answers overlap and ray questions against a static
// chipmunk space built from the level's hazards and triggers. It raises
// HazardContact and TriggerEnter events.
type ContactSystem struct {
	space            *cp.Space
	shapes           map[*cp.Shape]contactShape
	interactDistance float64
	log              zerolog.Logger
}

func NewContactSystem(interactDistance float64, log zerolog.Logger) *ContactSystem {
	return &ContactSystem{
		interactDistance: interactDistance,
		log:              log.With().Str("system", "contact").Logger(),
	}
}

// Space exposes the collision space, mainly for debug drawing.
func (s *ContactSystem) Space() *cp.Space {
	return s.space
}

func (s *ContactSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if s.space == nil {
		s.build(w)
	}

	events := w.Events()
	forEachPod(w, func(_ ecs.Entity, pod *component.Pod) {
		if !pod.Playable() {
			return
		}
		hazard, goal := false, false
		s.query(podPlayerBB(pod), categoryHazard|categoryGoal, func(info contactShape) {
			if info.owner != pod.Index {
				return
			}
			switch info.category {
			case categoryHazard:
				hazard = true
			case categoryGoal:
				goal = goal || triggerEnabled(w, info.entity)
			}
		})
		switch {
		case hazard:
			events.Push(ecs.Event{Kind: ecs.EventHazardContact, Index: pod.Index})
		case goal:
			events.Push(ecs.Event{Kind: ecs.EventTriggerEnter, Index: pod.Index, Trigger: component.TriggerWinDoor})
		}
	})

	terminal := false
	if _, state, ok := levelState(w); ok {
		terminal = state.Phase.Terminal()
	}

	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Character, tr *component.Transform) {
		if terminal || !c.Active || c.AtExit {
			return
		}

		exit := false
		s.query(characterBB(c, tr), categoryExit, func(info contactShape) {
			exit = exit || triggerEnabled(w, info.entity)
		})
		if exit {
			events.Push(ecs.Event{Kind: ecs.EventTriggerEnter, Index: c.Index, Trigger: component.TriggerExitDoor})
		}

		in, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok || !in.Interact || !c.CanMove() {
			return
		}
		for _, dir := range []float64{-1, 1} {
			kind, ok := s.probe(c, tr, dir)
			if ok {
				events.Push(ecs.Event{Kind: ecs.EventTriggerEnter, Index: c.Index, Trigger: kind})
			}
		}
	})
}

// probe casts an interaction ray from the character's middle. Computers are
// only found to the left and beds only to the right; doors either way.
func (s *ContactSystem) probe(c *component.Character, tr *component.Transform, dir float64) (component.TriggerKind, bool) {
	y := tr.Y + c.Height/2
	start := cp.Vector{X: tr.X, Y: y}
	end := cp.Vector{X: tr.X + dir*s.interactDistance, Y: y}
	hit := s.space.SegmentQueryFirst(start, end, 0, cp.ShapeFilter{Categories: allCategories, Mask: categoryInteract})
	if hit.Shape == nil {
		return component.TriggerNone, false
	}
	info, ok := s.shapes[hit.Shape]
	if !ok || info.owner != c.Index {
		return component.TriggerNone, false
	}

	switch info.trigger {
	case component.TriggerDoor:
		return info.trigger, true
	case component.TriggerComputer:
		return info.trigger, dir < 0
	case component.TriggerBed:
		return info.trigger, dir > 0
	default:
		return component.TriggerNone, false
	}
}

func (s *ContactSystem) query(bb cp.BB, mask uint, fn func(contactShape)) {
	filter := cp.ShapeFilter{Categories: allCategories, Mask: mask}
	s.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		if info, ok := s.shapes[shape]; ok {
			fn(info)
		}
	}, nil)
}

// build adds one static box per hazard and trigger. Level geometry never
// moves; a restart builds a new system.
func (s *ContactSystem) build(w *ecs.World) {
	s.space = cp.NewSpace()
	s.shapes = make(map[*cp.Shape]contactShape)

	origins := map[int]cp.Vector{}
	forEachPod(w, func(_ ecs.Entity, pod *component.Pod) {
		origins[pod.Index] = cp.Vector{X: pod.OriginX, Y: pod.OriginY}
	})

	ecs.ForEach(w, component.HazardComponent.Kind(), func(e ecs.Entity, h *component.Hazard) {
		o := origins[h.Pod]
		bb := cp.BB{L: o.X + h.OffsetX, B: o.Y + h.OffsetY, R: o.X + h.OffsetX + h.Width, T: o.Y + h.OffsetY + h.Height}
		s.add(bb, contactShape{entity: e, category: categoryHazard, owner: h.Pod})
	})

	ecs.ForEach(w, component.TriggerComponent.Kind(), func(e ecs.Entity, t *component.Trigger) {
		info := contactShape{entity: e, owner: t.Owner, trigger: t.Kind}
		var bb cp.BB
		switch {
		case t.Kind == component.TriggerWinDoor:
			o := origins[t.Owner]
			info.category = categoryGoal
			bb = cp.BB{L: o.X + t.OffsetX, B: o.Y + t.OffsetY, R: o.X + t.OffsetX + t.Width, T: o.Y + t.OffsetY + t.Height}
		case t.Kind == component.TriggerExitDoor:
			info.category = categoryExit
			bb = centeredBB(w, e, t)
		case t.Kind.Interactable():
			info.category = categoryInteract
			bb = centeredBB(w, e, t)
		default:
			return
		}
		s.add(bb, info)
	})

	s.log.Debug().Int("shapes", len(s.shapes)).Msg("contact space built")
}

func (s *ContactSystem) add(bb cp.BB, info contactShape) {
	shape := cp.NewBox2(s.space.StaticBody, bb, 0)
	shape.SetFilter(cp.ShapeFilter{Categories: info.category, Mask: allCategories})
	s.space.AddShape(shape)
	s.shapes[shape] = info
}

func centeredBB(w *ecs.World, e ecs.Entity, t *component.Trigger) cp.BB {
	x, y := t.OffsetX, t.OffsetY
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		x += tr.X
		y += tr.Y
	}
	return cp.BB{L: x - t.Width/2, B: y - t.Height/2, R: x + t.Width/2, T: y + t.Height/2}
}

func podPlayerBB(p *component.Pod) cp.BB {
	half := p.Size / 2
	x, y := p.OriginX+p.X, p.OriginY+p.Y
	return cp.BB{L: x - half, B: y - half, R: x + half, T: y + half}
}

func characterBB(c *component.Character, tr *component.Transform) cp.BB {
	return cp.BB{L: tr.X - c.Width/2, B: tr.Y, R: tr.X + c.Width/2, T: tr.Y + c.Height}
}

func triggerEnabled(w *ecs.World, e ecs.Entity) bool {
	t, ok := ecs.Get(w, e, component.TriggerComponent.Kind())
	return ok && t.Enabled
}
