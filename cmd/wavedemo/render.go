package main

import (
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"wavegrid/internal/mesh"
	"wavegrid/internal/wave"
)

var (
	backgroundColor = color.RGBA{12, 14, 24, 255}
	whiteImage      = ebiten.NewImage(3, 3)
	whiteSubImage   = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// depthTriangle is one surface triangle with its view depth for sorting.
type depthTriangle struct {
	idx     [3]uint16
	depth   float32
	visible bool
}

// Draw projects the surface, sorts triangles back to front and fills them
// with per-vertex shaded colors.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	vp := g.cam.viewProjection(float32(screenWidth) / float32(screenHeight))
	g.packed = mesh.Interleave(g.packed, g.sim)
	for i := range g.vertices {
		o := i * mesh.FloatsPerVertex
		p := wave.Vec3{X: g.packed[o], Y: g.packed[o+1], Z: g.packed[o+2]}
		n := wave.Vec3{X: g.packed[o+3], Y: g.packed[o+4], Z: g.packed[o+5]}
		sv := project(vp, p, screenWidth, screenHeight)
		g.screenVerts[i] = sv
		c := g.palette.Shade(p.Y, n, g.light)
		g.vertices[i] = ebiten.Vertex{
			DstX:   sv.x,
			DstY:   sv.y,
			SrcX:   1.5,
			SrcY:   1.5,
			ColorR: float32(c.R),
			ColorG: float32(c.G),
			ColorB: float32(c.B),
			ColorA: 1,
		}
	}

	g.sortTriangles()
	if len(g.drawIndices) > 0 {
		screen.DrawTriangles(g.vertices, g.drawIndices, whiteSubImage, &ebiten.DrawTrianglesOptions{})
	}

	if *debugFlag {
		g.drawDebug(screen)
	} else if g.timer.Stopped() {
		ebitenutil.DebugPrint(screen, "paused")
	}
}

// sortTriangles fills drawIndices with every triangle in front of the
// camera, farthest first.
func (g *Game) sortTriangles() {
	for i := range g.tris {
		t := &g.tris[i]
		a, b, c := g.screenVerts[t.idx[0]], g.screenVerts[t.idx[1]], g.screenVerts[t.idx[2]]
		t.visible = a.ok && b.ok && c.ok
		t.depth = a.depth + b.depth + c.depth
	}
	slices.SortFunc(g.tris, func(a, b depthTriangle) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})
	g.drawIndices = g.drawIndices[:0]
	for _, t := range g.tris {
		if t.visible {
			g.drawIndices = append(g.drawIndices, t.idx[0], t.idx[1], t.idx[2])
		}
	}
}

// debugStats is a snapshot of what the overlay reports.
type debugStats struct {
	fps, tps     float64
	rows, cols   int
	device       string
	steps        uint64
	simTime      float64
	wallTime     float64
	paused       bool
	updateMillis float64
	courant      float64
	stable       bool
	viewers      int
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	st := debugStats{
		fps:          ebiten.ActualFPS(),
		tps:          ebiten.ActualTPS(),
		rows:         g.sim.RowCount(),
		cols:         g.sim.ColumnCount(),
		device:       "cpu",
		steps:        g.sim.Steps(),
		simTime:      g.sim.SimulationTime(),
		wallTime:     g.timer.TotalTime(),
		paused:       g.timer.Stopped(),
		updateMillis: g.lastSimDuration.Seconds() * 1000,
		courant:      g.sim.CourantRatio(),
		stable:       g.sim.Stable(),
	}
	switch {
	case g.solver != nil:
		st.device = g.solver.DeviceName()
	case g.pool != nil:
		st.device = fmt.Sprintf("cpu x%d", g.pool.Workers())
	}
	if g.hub != nil {
		st.viewers = g.hub.Clients()
	}
	ebitenutil.DebugPrint(screen, formatDebug(st))
}

// formatDebug renders the overlay text. Sim time trails run time when
// frames drop catch-up steps.
func formatDebug(st debugStats) string {
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f\nGrid: %dx%d on %s\n"+
		"Steps: %d  Sim time: %.2fs  Run time: %.2fs  Paused: %v\n"+
		"Update: %.2f ms  Courant: %.3f  Stable: %v\nViewers: %d\n"+
		"Arrows/WASD orbit, Q/E zoom, P pause, click to splash",
		st.fps, st.tps,
		st.rows, st.cols, st.device,
		st.steps, st.simTime, st.wallTime, st.paused,
		st.updateMillis, st.courant, st.stable, st.viewers)
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return screenWidth, screenHeight }
