package dtrack

import (
	"encoding/json"
	"testing"
)

func TestBoxRoundTripJSON(t *testing.T) {
	b, err := NewBox(10, 20, 30, 40, 15, ScaleFactor{X: 640, Y: 480})
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Box
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !got.Equal(b) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, b)
	}
}

func TestBoxScaleToAndBack(t *testing.T) {
	a := ScaleFactor{X: 100, Y: 200}
	c := ScaleFactor{X: 400, Y: 100}
	b, err := NewBox(10, 10, 20, 40, 30, a)
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}

	scaled := b.ScaleTo(c)
	if scaled.Angle != b.Angle {
		t.Fatalf("angle should be preserved, got %v want %v", scaled.Angle, b.Angle)
	}
	rx, ry := c.X/a.X, c.Y/a.Y
	if !almostEqual(scaled.Cx, b.Cx*rx, 1e-9) || !almostEqual(scaled.Cy, b.Cy*ry, 1e-9) {
		t.Fatalf("scaled center mismatch: got (%v,%v)", scaled.Cx, scaled.Cy)
	}

	back := scaled.ScaleTo(a)
	if !almostEqual(back.Cx, b.Cx, 1e-9) || !almostEqual(back.Cy, b.Cy, 1e-9) {
		t.Fatalf("scaling back did not recover original center: got (%v,%v) want (%v,%v)", back.Cx, back.Cy, b.Cx, b.Cy)
	}
	if !almostEqual(back.Width, b.Width, 1e-9) || !almostEqual(back.Height, b.Height, 1e-9) {
		t.Fatalf("scaling back did not recover original dimensions")
	}
}

func TestNewBoxRejectsNegativeDimensions(t *testing.T) {
	if _, err := NewBox(0, 0, -1, 5, 0, ScaleFactor{X: 1, Y: 1}); err == nil {
		t.Fatal("expected a ConfigError for negative width")
	}
}

func TestBoxCornersAxisAlignedWhenAngleZero(t *testing.T) {
	b, _ := NewBox(0, 0, 2, 4, 0, ScaleFactor{X: 1, Y: 1})
	corners := b.Corners()
	want := [4]Point{{-1, -2}, {1, -2}, {1, 2}, {-1, 2}}
	for i, c := range corners {
		if !almostEqual(c.X, want[i].X, 1e-9) || !almostEqual(c.Y, want[i].Y, 1e-9) {
			t.Fatalf("corner %d mismatch: got %+v want %+v", i, c, want[i])
		}
	}
}
