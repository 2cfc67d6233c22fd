package export

import (
	"fmt"
	"strings"

	"github.com/physgen/gravgen/internal/sim"
)

// TrajectorySVG renders the height-vs-time curve as a standalone SVG,
// for a quick visual check of a stored task without decoding its video.
func TrajectorySVG(traj sim.Trajectory, dt float64, width, height int) string {
	if len(traj) == 0 {
		return ""
	}

	peak := 0.0
	for _, s := range traj {
		if s.Height > peak {
			peak = s.Height
		}
	}
	if peak == 0 {
		peak = 1
	}

	margin := 20.0
	plotW := float64(width) - 2*margin
	plotH := float64(height) - 2*margin
	duration := float64(len(traj)-1) * dt
	if duration == 0 {
		duration = dt
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	groundY := margin + plotH
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#806040" stroke-width="2"/>
`, margin, groundY, margin+plotW, groundY))

	points := make([]string, 0, len(traj))
	for i, s := range traj {
		x := margin + float64(i)*dt/duration*plotW
		y := groundY - s.Height/peak*plotH
		points = append(points, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	sb.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none" stroke="#dc3c3c" stroke-width="2"/>
`, strings.Join(points, " ")))

	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="14" font-family="monospace" font-size="11">peak %.2f m over %.2f s</text>
`, margin, peak, duration))
	sb.WriteString("</svg>\n")

	return sb.String()
}
