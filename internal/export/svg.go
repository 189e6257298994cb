package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

// StateToSVG renders a snapshot of the gas: the domain as a dark box,
// every disk at its true radius, plus a velocity whisker per moving disk.
// The SVG y axis points down, so rows are flipped to keep physics
// coordinates y-up.
func StateToSVG(st *gas.State, width int) string {
	if st == nil || st.N() == 0 || st.Bounds.Width <= 0 {
		return ""
	}

	scale := float64(width) / st.Bounds.Width
	height := int(math.Round(st.Bounds.Height * scale))

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<rect x="0.5" y="0.5" width="%d" height="%d" fill="none" stroke="#333333"/>
<g fill="#00ff00" fill-opacity="0.85">
`, width, height, width, height, width-1, height-1))

	for i := 0; i < st.N(); i++ {
		cx := st.Pos[i].X * scale
		cy := float64(height) - st.Pos[i].Y*scale
		r := st.Radius[i] * scale
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f"/>
`, cx, cy, r))
	}

	sb.WriteString("</g>\n")

	// Whiskers share one scale so their lengths stay comparable; the
	// mean-speed whisker spans two mean radii. A gas at rest gets none.
	meanSpeed := 0.0
	meanRadius := 0.0
	for i := 0; i < st.N(); i++ {
		meanSpeed += st.Vel[i].Length()
		meanRadius += st.Radius[i]
	}
	meanSpeed /= float64(st.N())
	meanRadius /= float64(st.N())

	if meanSpeed > 0 {
		whisker := 2 * meanRadius / meanSpeed
		sb.WriteString(`<g stroke="#ffffff" stroke-width="1" stroke-opacity="0.6">
`)
		for i := 0; i < st.N(); i++ {
			if st.Vel[i].LengthSquared() == 0 {
				continue
			}
			tip := st.Pos[i].Add(st.Vel[i].Scale(whisker))
			sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
`, st.Pos[i].X*scale, float64(height)-st.Pos[i].Y*scale,
				tip.X*scale, float64(height)-tip.Y*scale))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG draws one particle's path as a polyline, auto-scaled
// to the data with 10% padding on each side.
func TrajectoryToSVG(points []gas.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
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
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// SeriesToSVG plots one value per sample index, e.g. a metric trace over
// the recorded states, reusing the trajectory autoscaling.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	points := make([]gas.Vec2, len(values))
	for i, v := range values {
		points[i] = gas.Vec2{X: float64(i), Y: v}
	}
	return TrajectoryToSVG(points, width, height, strokeColor)
}
