package dtrack

import (
	"encoding/json"
	"fmt"
)

// Box is an oriented rectangle: center (Cx, Cy), extents (Width, Height),
// rotation Angle in degrees, tagged with the ScaleFactor of the coordinate
// frame it was measured in. Values are immutable; every operation returns a
// new Box.
type Box struct {
	Cx          float64
	Cy          float64
	Width       float64
	Height      float64
	Angle       float64
	ScaleFactor ScaleFactor
}

// NewBox validates and constructs a Box. Width and Height must be >= 0.
func NewBox(cx, cy, width, height, angle float64, sf ScaleFactor) (Box, error) {
	if width < 0 || height < 0 {
		return Box{}, &ConfigError{Msg: fmt.Sprintf("box width/height must be >= 0, got (%v, %v)", width, height)}
	}
	return Box{Cx: cx, Cy: cy, Width: width, Height: height, Angle: angle, ScaleFactor: sf}, nil
}

// Corners returns the four corners of the box: the axis-aligned base
// rectangle's corners, rotated about (Cx, Cy) by Angle degrees.
func (b Box) Corners() [4]Point {
	hw, hh := b.Width/2, b.Height/2
	center := Point{X: b.Cx, Y: b.Cy}
	base := [4]Point{
		{X: b.Cx - hw, Y: b.Cy - hh},
		{X: b.Cx + hw, Y: b.Cy - hh},
		{X: b.Cx + hw, Y: b.Cy + hh},
		{X: b.Cx - hw, Y: b.Cy + hh},
	}
	if b.Angle == 0 {
		return base
	}
	for i, p := range base {
		base[i] = RotatePoint(p, center, b.Angle)
	}
	return base
}

// ScaleTo rescales the box into a new coordinate frame: (Cx, Cy, Width,
// Height) are each multiplied by the per-axis ratio of the new scale factor
// to this box's current one. Angle is preserved.
func (b Box) ScaleTo(target ScaleFactor) Box {
	rx := target.X / b.ScaleFactor.X
	ry := target.Y / b.ScaleFactor.Y
	return Box{
		Cx:          b.Cx * rx,
		Cy:          b.Cy * ry,
		Width:       b.Width * rx,
		Height:      b.Height * ry,
		Angle:       b.Angle,
		ScaleFactor: target,
	}
}

// Equal reports structural equality.
func (b Box) Equal(o Box) bool {
	return b.Cx == o.Cx && b.Cy == o.Cy && b.Width == o.Width &&
		b.Height == o.Height && b.Angle == o.Angle && b.ScaleFactor.Equal(o.ScaleFactor)
}

type boxJSON struct {
	Cx          float64         `json:"cx"`
	Cy          float64         `json:"cy"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Angle       float64         `json:"angle"`
	ScaleFactor scaleFactorJSON `json:"scale_factor"`
}

// MarshalJSON produces the compatibility-contract shape named in the
// external interfaces: {cx, cy, width, height, angle, scale_factor: {x, y}}.
func (b Box) MarshalJSON() ([]byte, error) {
	return json.Marshal(boxJSON{
		Cx: b.Cx, Cy: b.Cy, Width: b.Width, Height: b.Height, Angle: b.Angle,
		ScaleFactor: scaleFactorJSON{X: b.ScaleFactor.X, Y: b.ScaleFactor.Y},
	})
}

func (b *Box) UnmarshalJSON(data []byte) error {
	var raw boxJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Cx, b.Cy, b.Width, b.Height, b.Angle = raw.Cx, raw.Cy, raw.Width, raw.Height, raw.Angle
	b.ScaleFactor = ScaleFactor{X: raw.ScaleFactor.X, Y: raw.ScaleFactor.Y}
	return nil
}
