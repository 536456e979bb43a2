package gauge

import (
	"math"
	"strings"

	drawille "github.com/exrook/drawille-go"

	"github.com/garrettladley/arcgauge/internal/arc"
)

// screen coords: 0°=right(3 o'clock), 90°=down(6 o'clock), increasing
// clockwise. This matches the stroke angles returned by arc.Sweep.
const arcThickness = 5

// drawDescriptor draws the visible part of an arc descriptor.
func drawDescriptor(canvas *drawille.Canvas, centerX, centerY, radius float64, d arc.Descriptor) {
	start, sweep := arc.Sweep(d)
	if sweep <= 0 {
		return
	}
	drawArc(canvas, centerX, centerY, radius, start, sweep)
}

// drawArc draws a thick arc on the canvas from startAngle sweeping through sweepAngle degrees.
// uses the midpoint circle algorithm for clean, gap-free rendering.
// see: https://en.wikipedia.org/wiki/Midpoint_circle_algorithm
func drawArc(canvas *drawille.Canvas, centerX, centerY, radius, startAngle, sweepAngle float64) {
	for t := range arcThickness {
		r := int(radius) - t
		if r <= 0 {
			continue
		}
		midpointCircleArc(canvas, int(centerX), int(centerY), r, startAngle, sweepAngle)
	}
}

func midpointCircleArc(canvas *drawille.Canvas, cx, cy, radius int, startAngle, sweepAngle float64) {
	x := radius
	y := 0
	d := 1 - radius

	for x >= y {
		for _, p := range [8][2]int{
			{cx + x, cy - y}, {cx + y, cy - x},
			{cx - y, cy - x}, {cx - x, cy - y},
			{cx - x, cy + y}, {cx - y, cy + x},
			{cx + y, cy + x}, {cx + x, cy + y},
		} {
			if inSweep(pointAngle(cx, cy, p[0], p[1]), startAngle, sweepAngle) {
				canvas.Set(p[0], p[1])
			}
		}

		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// pointAngle is the screen angle of (px, py) around (cx, cy), in [0, 360).
func pointAngle(cx, cy, px, py int) float64 {
	angle := math.Atan2(float64(py-cy), float64(px-cx)) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return angle
}

// inSweep reports whether angle lies on the clockwise sweep that starts at
// start. start may be any real number; sweeps of 360° or more cover the circle.
func inSweep(angle, start, sweep float64) bool {
	if sweep >= 360 {
		return true
	}
	delta := math.Mod(angle-start, 360)
	if delta < 0 {
		delta += 360
	}
	return delta <= sweep
}

// drawLine plots a Bresenham line between two dot positions.
func drawLine(canvas *drawille.Canvas, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		canvas.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// canvasString extracts the canvas as exactly height/4 rows of width/2 cells.
func canvasString(canvas *drawille.Canvas, width, height int) string {
	charWidth := width / 2
	charHeight := height / 4

	rows := canvas.Rows(0, 0, width, height)

	lines := make([]string, charHeight)
	for i := range charHeight {
		var line []rune
		if i < len(rows) {
			line = []rune(rows[i])
		}
		if len(line) > charWidth {
			line = line[:charWidth]
		}
		lines[i] = string(line) + strings.Repeat(" ", charWidth-len(line))
	}
	return strings.Join(lines, "\n")
}
