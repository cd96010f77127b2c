package system

import (
	"github.com/milk9111/podescape/common"
	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

// CameraDirector is the camera surface gameplay talks to. A zero target
// means the camera holds its position.
type CameraDirector interface {
	SetTarget(target ecs.Entity)
	Target() ecs.Entity
	RequestZoomOut(size, speed float64)
	SetZoom(size float64)
	SetFollowSpeed(v float64)
	FollowSpeed() float64
	TeleportTo(x, y float64)
}

// WorldCamera directs the world's camera entity.
type WorldCamera struct {
	w *ecs.World
}

func NewCameraDirector(w *ecs.World) *WorldCamera {
	return &WorldCamera{w: w}
}

func (c *WorldCamera) camera() *component.Camera {
	if c == nil {
		return nil
	}
	ent, ok := ecs.First(c.w, component.CameraComponent.Kind())
	if !ok {
		return nil
	}
	return ecs.MustGet(c.w, ent, component.CameraComponent.Kind())
}

// SetTarget also ends any intro pan still running.
func (c *WorldCamera) SetTarget(target ecs.Entity) {
	if cam := c.camera(); cam != nil {
		cam.Target = uint64(target)
		cam.Initialized = true
	}
}

func (c *WorldCamera) Target() ecs.Entity {
	if cam := c.camera(); cam != nil {
		return ecs.Entity(cam.Target)
	}
	return 0
}

func (c *WorldCamera) RequestZoomOut(size, speed float64) {
	if cam := c.camera(); cam != nil {
		cam.ZoomTarget = size
		cam.ZoomSpeed = speed
		cam.ZoomingOut = true
	}
}

func (c *WorldCamera) SetZoom(size float64) {
	if cam := c.camera(); cam != nil && size > 0 {
		cam.OrthoSize = size
		cam.ZoomingOut = false
	}
}

func (c *WorldCamera) SetFollowSpeed(v float64) {
	if cam := c.camera(); cam != nil {
		cam.FollowSpeed = v
	}
}

func (c *WorldCamera) FollowSpeed() float64 {
	if cam := c.camera(); cam != nil {
		return cam.FollowSpeed
	}
	return 0
}

func (c *WorldCamera) TeleportTo(x, y float64) {
	if cam := c.camera(); cam != nil {
		cam.X, cam.Y = x, y
		cam.VelX, cam.VelY = 0, 0
	}
}

// CameraSystem moves the camera towards its target and runs the zoom-out.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ent, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam := ecs.MustGet(w, ent, component.CameraComponent.Kind())
	dt := w.DeltaTime()

	if !cam.Initialized {
		if cam.IntroTarget != 0 && cam.Y > cam.IntroThreshold {
			cam.Target = cam.IntroTarget
		} else {
			cam.Target = cam.FirstTarget
			cam.Initialized = true
		}
	}

	if x, y, ok := CameraGoal(w, cam); ok {
		cam.X = common.SmoothDamp(cam.X, x, &cam.VelX, cam.FollowSpeed, dt)
		cam.Y = common.SmoothDamp(cam.Y, y, &cam.VelY, cam.FollowSpeed, dt)
	}

	if cam.ZoomingOut {
		cam.OrthoSize = common.MoveTowards(cam.OrthoSize, cam.ZoomTarget, cam.ZoomSpeed*dt)
		if cam.OrthoSize == cam.ZoomTarget {
			cam.ZoomingOut = false
		}
	}
}

// CameraGoal returns where the camera wants to be. Characters are clamped to
// their room's range and offset; any other target is followed as is.
func CameraGoal(w *ecs.World, cam *component.Camera) (float64, float64, bool) {
	target := ecs.Entity(cam.Target)
	if target == 0 {
		return 0, 0, false
	}
	tr, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	char, ok := ecs.Get(w, target, component.CharacterComponent.Kind())
	if !ok {
		return tr.X, tr.Y, true
	}
	x := common.Clamp(tr.X, char.ClampMinX, char.ClampMaxX)
	return x + cam.OffsetX, tr.Y + cam.OffsetY, true
}
