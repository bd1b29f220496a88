package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/mechsim/internal/physics"
)

var svgPalette = []string{"#e74c3c", "#3498db", "#2ecc71", "#f39c12", "#9b59b6", "#1abc9c"}

// TrajectoriesSVG draws every body's path as a polyline on one shared,
// padded coordinate frame. Bodies with fewer than two points are skipped.
// It returns "" when nothing can be drawn.
func TrajectoriesSVG(traj map[string][]physics.TrajectoryPoint, width, height int) string {
	ids := make([]string, 0, len(traj))
	for id, pts := range traj {
		if len(pts) >= 2 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return ""
	}
	sort.Strings(ids)

	first := traj[ids[0]][0]
	minX, maxX, minY, maxY := first.X, first.X, first.Y, first.Y
	for _, id := range ids {
		for _, p := range traj[id] {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i, id := range ids {
		fmt.Fprintf(&sb, `<path id="%s" fill="none" stroke="%s" stroke-width="1.5" d="`, id, svgPalette[i%len(svgPalette)])
		for j, p := range traj[id] {
			x := (p.X - minX) / rangeX * float64(width)
			y := float64(height) - (p.Y-minY)/rangeY*float64(height)
			if j == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
