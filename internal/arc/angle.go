package arc

import "math"

func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// PolarToCartesian maps a polar angle to a point. The angle is measured
// clockwise from the top of the circle (0°=12 o'clock, 90°=3 o'clock),
// which is also the CSS rotation convention used for needles.
func PolarToCartesian(centerX, centerY, radius, angleDeg float64) (x, y float64) {
	rad := DegreesToRadians(angleDeg - 90)
	return centerX + radius*math.Cos(rad), centerY + radius*math.Sin(rad)
}
