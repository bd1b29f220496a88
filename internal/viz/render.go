package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mechsim/internal/physics"
)

// Viewport maps world coordinates onto canvas dots with a uniform scale.
// The world's bottom-left corner sits at (0, GroundLevel).
type Viewport struct {
	scale   float64
	originY float64
	offX    float64
	offY    float64
	dotsH   int
}

func NewViewport(c *Canvas, worldW, worldH, ground float64) Viewport {
	dotsW, dotsH := float64(c.Width*2), float64(c.Height*4)
	if worldW <= 0 {
		worldW = 1
	}
	if worldH <= 0 {
		worldH = 1
	}
	scale := math.Min(dotsW/worldW, dotsH/worldH)
	return Viewport{
		scale:   scale,
		originY: ground,
		offX:    (dotsW - worldW*scale) / 2,
		offY:    (dotsH - worldH*scale) / 2,
		dotsH:   c.Height * 4,
	}
}

// Project returns the canvas dot for world point (x, y). Canvas rows grow
// downwards.
func (v Viewport) Project(x, y float64) (int, int) {
	px := v.offX + x*v.scale
	py := float64(v.dotsH-1) - (v.offY + (y-v.originY)*v.scale)
	return int(math.Round(px)), int(math.Round(py))
}

func (v Viewport) Length(d float64) int {
	return int(math.Round(d * v.scale))
}

// velocityScale converts m/s into world units for the drawn vector.
const velocityScale = 0.5

// DrawWorld draws the snapshot: ground line, trajectories, bodies and
// velocity vectors for bodies that show them.
func DrawWorld(c *Canvas, snap *physics.WorldSnapshot) {
	c.Clear()
	vp := NewViewport(c, snap.Width, snap.Height, snap.GroundLevel)

	x0, gy := vp.Project(0, snap.GroundLevel)
	x1, _ := vp.Project(snap.Width, snap.GroundLevel)
	c.DrawLine(x0, gy, x1, gy)

	for _, b := range snap.Objects {
		if b.ShowTrajectory {
			for _, p := range b.Trajectory {
				c.Set(vp.Project(p.X, p.Y))
			}
		}

		cx, cy := vp.Project(b.Position.X, b.Position.Y)
		switch b.Shape {
		case physics.ShapeSquare, physics.ShapeRectangle:
			hw, hh := vp.Length(b.Width/2), vp.Length(b.Height/2)
			c.DrawRect(cx-hw, cy-hh, cx+hw, cy+hh)
		default:
			c.DrawCircle(cx, cy, vp.Length(b.Radius))
		}

		if b.ShowVelocityVector && !b.Velocity.IsZero() {
			tip := b.Position.Add(b.Velocity.Scale(velocityScale))
			tx, ty := vp.Project(tip.X, tip.Y)
			c.DrawLine(cx, cy, tx, ty)
		}
	}
}

// EnergyGraph plots a mechanical energy series. It returns "" for fewer
// than two samples.
func EnergyGraph(values []float64, width, height int, caption string) string {
	if len(values) < 2 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

// MechanicalSeries extracts the mechanical energy column of a history.
func MechanicalSeries(history []physics.EnergySample) []float64 {
	out := make([]float64, len(history))
	for i, e := range history {
		out[i] = e.Mechanical
	}
	return out
}
