package analysis

import (
	"strings"

	"github.com/san-kum/mechsim/internal/physics"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Series returns one coordinate of a trajectory.
func Series(traj []physics.TrajectoryPoint, axis Axis) []float64 {
	out := make([]float64, len(traj))
	for i, p := range traj {
		if axis == AxisX {
			out[i] = p.X
		} else {
			out[i] = p.Y
		}
	}
	return out
}

// Point is one (position, velocity) sample.
type Point struct{ X, Y float64 }

// PhasePortrait holds position against velocity for one axis.
type PhasePortrait struct {
	Axis   Axis
	Points []Point
}

// NewPhasePortrait differentiates the trajectory with central differences.
// Returns nil for fewer than three samples.
func NewPhasePortrait(traj []physics.TrajectoryPoint, axis Axis) *PhasePortrait {
	if len(traj) < 3 {
		return nil
	}
	xs := Series(traj, axis)
	portrait := &PhasePortrait{Axis: axis, Points: make([]Point, 0, len(xs)-2)}
	for i := 1; i < len(xs)-1; i++ {
		span := traj[i+1].Time - traj[i-1].Time
		if span <= 0 {
			continue
		}
		portrait.Points = append(portrait.Points, Point{X: xs[i], Y: (xs[i+1] - xs[i-1]) / span})
	}
	return portrait
}

// ASCII plots the portrait on a width×height character grid, drawing the
// axes when they cross the visible area.
func (p *PhasePortrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX, rangeY = maxX-minX, maxY-minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int(-minX / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int(-minY/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
