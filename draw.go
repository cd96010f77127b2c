package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/podescape/common"
	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

const (
	roomHeight  = 5.0
	roomPadding = 0.6
	podPanelW   = 560.0
	podPanelH   = 420.0
)

var (
	roomDark   = color.NRGBA{R: 0x1c, G: 0x1c, B: 0x26, A: 0xff}
	roomLit    = color.NRGBA{R: 0x4a, G: 0x48, B: 0x3a, A: 0xff}
	roleColors = [component.PodCount]color.Color{colornames.Orange, colornames.Skyblue, colornames.Lightgreen}
	propColors = map[component.TriggerKind]color.Color{
		component.TriggerComputer: colornames.Steelblue,
		component.TriggerBed:      colornames.Mediumpurple,
		component.TriggerDoor:     colornames.Sienna,
	}
	confettiColors = []color.Color{colornames.Gold, colornames.Hotpink, colornames.Deepskyblue, colornames.Limegreen}
)

// Renderer draws the world through the camera and the open pod as a
// screen-space panel. It only reads components.
type Renderer struct {
	frame int
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// view maps world units to screen pixels, y up.
type view struct {
	camX, camY float64
	scale      float64
}

func (v view) point(x, y float64) (float32, float32) {
	sx := (x-v.camX)*v.scale + common.BaseWidth/2
	sy := common.BaseHeight/2 - (y-v.camY)*v.scale
	return float32(sx), float32(sy)
}

// rect converts a box given by its bottom-left corner.
func (v view) rect(x, y, w, h float64) (float32, float32, float32, float32) {
	sx, sy := v.point(x, y+h)
	return sx, sy, float32(w * v.scale), float32(h * v.scale)
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	r.frame++
	screen.Fill(colornames.Black)
	if w == nil {
		return
	}

	var hud *component.HUD
	if ent, ok := ecs.First(w, component.HUDComponent.Kind()); ok {
		hud = ecs.MustGet(w, ent, component.HUDComponent.Kind())
	}

	if hud == nil || !hud.WorldHidden {
		if v, ok := cameraView(w); ok {
			r.drawRooms(w, screen, v, hud)
			r.drawCharacters(w, screen, v)
		}
	}
	if hud != nil {
		for i, visible := range hud.PodVisible {
			if visible {
				r.drawPod(w, screen, i)
			}
		}
		if hud.Confetti > 0 {
			r.drawConfetti(screen, hud.Confetti)
		}
	}
}

func cameraView(w *ecs.World) (view, bool) {
	ent, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return view{}, false
	}
	cam := ecs.MustGet(w, ent, component.CameraComponent.Kind())
	size := cam.OrthoSize
	if size <= 0 {
		size = 5
	}
	return view{camX: cam.X, camY: cam.Y, scale: common.BaseHeight / (2 * size)}, true
}

func (r *Renderer) drawRooms(w *ecs.World, screen *ebiten.Image, v view, hud *component.HUD) {
	lit := [component.PodCount]bool{}
	ecs.ForEach(w, component.RoomLightComponent.Kind(), func(_ ecs.Entity, l *component.RoomLight) {
		if l.Room >= 0 && l.Room < component.PodCount {
			lit[l.Room] = l.On
		}
	})

	ecs.ForEach(w, component.CharacterComponent.Kind(), func(_ ecs.Entity, c *component.Character) {
		clr := roomDark
		if lit[c.Index] {
			clr = roomLit
		}
		minX := c.MinX - c.Width/2 - roomPadding
		x, y, rw, rh := v.rect(minX, 0, c.MaxX+c.Width/2+roomPadding-minX, roomHeight)
		vector.DrawFilledRect(screen, x, y, rw, rh, clr, false)
		vector.StrokeRect(screen, x, y, rw, rh, 2, colornames.Dimgray, false)
	})

	ecs.ForEach2(w, component.TriggerComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, t *component.Trigger, tr *component.Transform) {
		cx, cy := tr.X+t.OffsetX, tr.Y+t.OffsetY
		x, y, tw, th := v.rect(cx-t.Width/2, cy-t.Height/2, t.Width, t.Height)
		switch t.Kind {
		case component.TriggerExitDoor:
			if t.Enabled {
				vector.StrokeRect(screen, x, y, tw, th, 3, colornames.Lime, false)
			}
		case component.TriggerComputer:
			vector.DrawFilledRect(screen, x, y, tw, th, propColors[t.Kind], false)
			if hud != nil && t.Owner >= 0 && t.Owner < component.PodCount && hud.ComputerScreens[t.Owner] {
				vector.DrawFilledRect(screen, x+3, y+3, tw-6, th/2, colornames.Lightcyan, false)
			}
		default:
			if clr, ok := propColors[t.Kind]; ok {
				vector.DrawFilledRect(screen, x, y, tw, th, clr, false)
			}
		}
	})
}

func (r *Renderer) drawCharacters(w *ecs.World, screen *ebiten.Image, v view) {
	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, c *component.Character, tr *component.Transform) {
		if c.Faded {
			return
		}
		x, y, cw, ch := v.rect(tr.X-c.Width/2, tr.Y, c.Width, c.Height)
		clr := roleColors[c.Index%component.PodCount]
		vector.DrawFilledRect(screen, x, y, cw, ch, clr, false)
		if c.Active {
			vector.StrokeRect(screen, x, y, cw, ch, 2, colornames.White, false)
		}

		// Eye on the facing side.
		ex := x + cw*0.25
		if c.FacingRight {
			ex = x + cw*0.65
		}
		bob := float32(0)
		if c.Walking {
			bob = float32(math.Sin(float64(r.frame)/4) * 2)
		}
		vector.DrawFilledRect(screen, ex, y+ch*0.15+bob, cw*0.12, cw*0.12, colornames.Black, false)
	})
}

func (r *Renderer) drawPod(w *ecs.World, screen *ebiten.Image, index int) {
	var pod *component.Pod
	ecs.ForEach(w, component.PodComponent.Kind(), func(_ ecs.Entity, p *component.Pod) {
		if p.Index == index {
			pod = p
		}
	})
	if pod == nil || pod.Width <= 0 || pod.Height <= 0 {
		return
	}

	scale := math.Min(podPanelW/pod.Width, podPanelH/pod.Height)
	ox := (common.BaseWidth - pod.Width*scale) / 2
	oy := (common.BaseHeight - pod.Height*scale) / 2
	box := func(x, y, bw, bh float64) (float32, float32, float32, float32) {
		return float32(ox + x*scale), float32(oy + (pod.Height-y-bh)*scale), float32(bw * scale), float32(bh * scale)
	}

	x, y, pw, ph := box(0, 0, pod.Width, pod.Height)
	vector.DrawFilledRect(screen, x-8, y-8, pw+16, ph+16, colornames.Darkslategray, false)
	vector.DrawFilledRect(screen, x, y, pw, ph, colornames.Black, false)

	ecs.ForEach(w, component.HazardComponent.Kind(), func(_ ecs.Entity, h *component.Hazard) {
		if h.Pod != index {
			return
		}
		hx, hy, hw, hh := box(h.OffsetX, h.OffsetY, h.Width, h.Height)
		vector.DrawFilledRect(screen, hx, hy, hw, hh, colornames.Crimson, false)
	})
	ecs.ForEach(w, component.TriggerComponent.Kind(), func(_ ecs.Entity, t *component.Trigger) {
		if t.Kind != component.TriggerWinDoor || t.Owner != index {
			return
		}
		gx, gy, gw, gh := box(t.OffsetX, t.OffsetY, t.Width, t.Height)
		vector.DrawFilledRect(screen, gx, gy, gw, gh, colornames.Limegreen, false)
	})

	player := colornames.White
	if pod.Frozen && (r.frame/6)%2 == 0 {
		player = colornames.Gray
	}
	px, py, ps, _ := box(pod.X-pod.Size/2, pod.Y-pod.Size/2, pod.Size, pod.Size)
	vector.DrawFilledRect(screen, px, py, ps, ps, player, false)
}

func (r *Renderer) drawConfetti(screen *ebiten.Image, remaining float64) {
	const pieces = 80
	fall := float32((4 - remaining) * 180)
	for i := 0; i < pieces; i++ {
		// Cheap deterministic scatter per piece.
		seed := uint32(i)*2654435761 + 12345
		x := float32(seed % common.BaseWidth)
		y := float32(seed/common.BaseWidth%200) - 200 + fall*(0.6+float32(seed%7)/10)
		if y > common.BaseHeight {
			continue
		}
		clr := confettiColors[i%len(confettiColors)]
		vector.DrawFilledRect(screen, x, y, 6, 10, clr, false)
	}
}
