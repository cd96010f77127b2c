package main

import (
	"math"
	"strings"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/podescape/prefabs"
)

// maxSearchCells bounds the flood fill for pods with a hole in their walls.
const maxSearchCells = 1 << 16

type cell struct{ x, y int }

// podReport is the result of walking a pod on its step grid.
type podReport struct {
	Solvable bool
	Steps    int
	Path     []cell
}

// solvePod searches the pod's step grid from the start, moving one step at a
// time, never touching a hazard. Touching is overlap with the edges
// included, the same test the contact system uses.
func solvePod(pod prefabs.PodSpec, tuning prefabs.TuningSpec) podReport {
	step := tuning.StepSize
	half := tuning.PodPlayerSize / 2

	hazards := make([]cp.BB, 0, len(pod.Hazards))
	for _, h := range pod.Hazards {
		hazards = append(hazards, rectBB(h))
	}
	goal := rectBB(pod.Goal)

	at := func(c cell) cp.BB {
		x := pod.Start.X + float64(c.x)*step
		y := pod.Start.Y + float64(c.y)*step
		return cp.BB{L: x - half, B: y - half, R: x + half, T: y + half}
	}
	blocked := func(c cell) bool {
		bb := at(c)
		for _, h := range hazards {
			if bb.Intersects(h) {
				return true
			}
		}
		return false
	}

	start := cell{}
	if blocked(start) {
		return podReport{}
	}
	prev := map[cell]cell{start: start}
	queue := []cell{start}
	for len(queue) > 0 && len(prev) < maxSearchCells {
		c := queue[0]
		queue = queue[1:]
		if at(c).Intersects(goal) {
			path := []cell{c}
			for c != start {
				c = prev[c]
				path = append(path, c)
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return podReport{Solvable: true, Steps: len(path) - 1, Path: path}
		}
		for _, d := range []cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := cell{c.x + d.x, c.y + d.y}
			if _, seen := prev[n]; seen || blocked(n) {
				continue
			}
			prev[n] = c
			queue = append(queue, n)
		}
	}
	return podReport{}
}

func rectBB(r prefabs.RectSpec) cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.W, T: r.Y + r.H}
}

// drawPod renders the pod top row first, one character per step.
func drawPod(pod prefabs.PodSpec, tuning prefabs.TuningSpec, path []cell) string {
	step := tuning.StepSize
	cols := int(math.Ceil(pod.Width / step))
	rows := int(math.Ceil(pod.Height / step))

	onPath := make(map[cell]bool, len(path))
	for _, c := range path {
		x := pod.Start.X + float64(c.x)*step
		y := pod.Start.Y + float64(c.y)*step
		onPath[cell{int(math.Floor(x / step)), int(math.Floor(y / step))}] = true
	}
	startCol := int(math.Floor(pod.Start.X / step))
	startRow := int(math.Floor(pod.Start.Y / step))

	var b strings.Builder
	for row := rows - 1; row >= 0; row-- {
		for col := 0; col < cols; col++ {
			tile := cp.BB{
				L: float64(col)*step + step/4, B: float64(row)*step + step/4,
				R: float64(col+1)*step - step/4, T: float64(row+1)*step - step/4,
			}
			switch {
			case col == startCol && row == startRow:
				b.WriteByte('S')
			case tile.Intersects(rectBB(pod.Goal)):
				b.WriteByte('G')
			case hitsAny(tile, pod.Hazards):
				b.WriteByte('#')
			case onPath[cell{col, row}]:
				b.WriteByte('o')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func hitsAny(bb cp.BB, rects []prefabs.RectSpec) bool {
	for _, r := range rects {
		if bb.Intersects(rectBB(r)) {
			return true
		}
	}
	return false
}
