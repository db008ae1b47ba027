package tracking

import (
	"testing"

	"github.com/declanatkins/dtrack"
)

func TestConstantVelocityPredictIdentityWithShortHistory(t *testing.T) {
	p := ConstantVelocityPredictor{}
	x, y := p.Predict(5, 5, nil)
	if x != 5 || y != 5 {
		t.Fatalf("expected identity with no history, got (%v, %v)", x, y)
	}
	x, y = p.Predict(5, 5, []dtrack.Point{{X: 1, Y: 1}})
	if x != 5 || y != 5 {
		t.Fatalf("expected identity with one history point, got (%v, %v)", x, y)
	}
}

func TestConstantVelocityPredictExtrapolates(t *testing.T) {
	p := ConstantVelocityPredictor{}
	history := []dtrack.Point{{X: 0, Y: 0}, {X: 2, Y: 0}}
	x, y := p.Predict(2, 0, history)
	if x != 4 || y != 0 {
		t.Fatalf("expected (4, 0), got (%v, %v)", x, y)
	}
}

func TestConstantVelocityPredictN(t *testing.T) {
	p := ConstantVelocityPredictor{}
	history := []dtrack.Point{{X: 0, Y: 0}, {X: 2, Y: 0}}
	got := p.PredictN(2, 0, history, 3)
	want := []dtrack.Point{{X: 4, Y: 0}, {X: 6, Y: 0}, {X: 8, Y: 0}}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d mismatch: got %v want %v", i, got[i], want[i])
		}
	}
}
