package dtrack

import (
	"encoding/json"
	"testing"
)

func TestDetectionRoundTripJSON(t *testing.T) {
	d := Detection{
		Label:      "car",
		Confidence: 0.87,
		BoundingBox: Box{Cx: 1, Cy: 2, Width: 3, Height: 4, Angle: 5, ScaleFactor: ScaleFactor{X: 640, Y: 480}},
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Detection
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !got.Equal(d) {
		t.Fatalf("round trip mismatch (modulo mask): got %+v want %+v", got, d)
	}
}

func TestDetectionScaledTo(t *testing.T) {
	d := Detection{
		Label:      "car",
		Confidence: 1,
		BoundingBox: Box{Cx: 10, Cy: 10, Width: 2, Height: 2, ScaleFactor: ScaleFactor{X: 100, Y: 100}},
	}
	scaled := d.ScaledTo(ScaleFactor{X: 200, Y: 200})
	if scaled.BoundingBox.Cx != 20 || scaled.BoundingBox.Cy != 20 {
		t.Fatalf("expected box to scale 2x, got %+v", scaled.BoundingBox)
	}
	if scaled.Label != d.Label || scaled.Confidence != d.Confidence {
		t.Fatalf("scaling should not touch label/confidence")
	}
}

func TestNilMaskDistinctFromEmpty(t *testing.T) {
	var nilMask Mask
	emptyMask := Mask{}
	if nilMask != nil {
		t.Fatal("expected zero-value Mask to be nil")
	}
	if emptyMask == nil {
		t.Fatal("expected an explicitly empty Mask to be non-nil")
	}
}
