package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/gravsim/internal/sim"
)

var palette = []string{"#00ff00", "#ffaa00", "#00aaff", "#ff4466", "#cc66ff", "#ffff55"}

type point struct{ X, Y float64 }

// TrajectoryToSVG draws the x/y path of every body in traj, one colour per
// body, on shared axes so relative distances are kept.
func TrajectoryToSVG(traj []sim.Snapshot, width, height int) string {
	if len(traj) == 0 || len(traj[0].Bodies) == 0 {
		return ""
	}

	n := len(traj[0].Bodies)
	paths := make([][]point, n)
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, snap := range traj {
		for i, b := range snap.Bodies {
			if i >= n {
				break
			}
			p := point{b.Position.X, b.Position.Y}
			paths[i] = append(paths[i], p)
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}

	// one scale for both axes
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	span *= 1.2
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	size := math.Min(float64(width), float64(height))
	project := func(p point) (float64, float64) {
		x := float64(width)/2 + (p.X-cx)/span*size
		y := float64(height)/2 - (p.Y-cy)/span*size
		return x, y
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, pts := range paths {
		color := palette[i%len(palette)]
		if len(pts) > 1 {
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
			for j, p := range pts {
				x, y := project(p)
				if j == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				}
			}
			sb.WriteString("\"/>\n")
		}

		x, y := project(pts[len(pts)-1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, x, y, color))
		sb.WriteString(fmt.Sprintf(`<text x="10" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 20+16*i, color, html.EscapeString(traj[0].Bodies[i].Name)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
