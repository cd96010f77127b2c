package system

import (
	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

// RequestRestart asks the game loop to throw the world away and rebuild the
// level. Repeated requests in one tick collapse into one.
func RequestRestart(w *ecs.World, reason string) {
	if w == nil || RestartRequested(w) != "" {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{Reason: reason})
}

// RestartRequested returns the reason of a pending restart, or "" when none
// is pending.
func RestartRequested(w *ecs.World) string {
	ent, ok := ecs.First(w, component.ReloadRequestComponent.Kind())
	if !ok {
		return ""
	}
	req := ecs.MustGet(w, ent, component.ReloadRequestComponent.Kind())
	if req.Reason == "" {
		return "restart"
	}
	return req.Reason
}
