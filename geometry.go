package dtrack

import "math"

// Point is a 2D coordinate in a frame's pixel space.
type Point struct {
	X float64
	Y float64
}

// RotatePoint rotates p about center by angleDeg degrees, counter-clockwise
// in a standard math coordinate frame.
func RotatePoint(p, center Point, angleDeg float64) Point {
	if angleDeg == 0 {
		return p
	}
	rad := angleDeg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	dx, dy := p.X-center.X, p.Y-center.Y
	return Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}
