package tracking

import (
	"testing"

	"github.com/declanatkins/dtrack"
)

func TestKNNPredictFallsBackToIdentityWithSmallDataset(t *testing.T) {
	p := NewKNNPredictor(3, 100)
	history := []dtrack.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	x, y := p.Predict(3, 0, history)
	if x != 3 || y != 0 {
		t.Fatalf("expected identity fallback with dataset smaller than k, got (%v, %v)", x, y)
	}
}

func TestKNNPredictNRestoresDataset(t *testing.T) {
	p := NewKNNPredictor(1, 100)
	// Seed the dataset directly so Predict's "len(dataset) >= k" gate is
	// already open, matching a predictor that has seen prior frames.
	p.dataset = []trainingRow{{0, 0, 1, 0, 0, 0, 1, 0}}
	history := []dtrack.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}

	before := append([]trainingRow(nil), p.dataset...)

	p.PredictN(3, 0, history, 5)

	if len(p.dataset) != len(before) {
		t.Fatalf("PredictN must restore dataset length, got %d want %d", len(p.dataset), len(before))
	}
	for i := range before {
		if p.dataset[i] != before[i] {
			t.Fatalf("PredictN mutated training row %d", i)
		}
	}
}

func TestKNNFactorySharedReturnsSameInstance(t *testing.T) {
	f := &KNNFactory{K: 3, MaxHistory: 10, Shared: true}
	a := f.NewPredictor()
	b := f.NewPredictor()
	if a != b {
		t.Fatal("expected a shared factory to hand out the same predictor instance")
	}
}

func TestKNNFactoryNotSharedReturnsDistinctInstances(t *testing.T) {
	f := &KNNFactory{K: 3, MaxHistory: 10}
	a := f.NewPredictor()
	b := f.NewPredictor()
	if a == b {
		t.Fatal("expected a non-shared factory to hand out independent predictor instances")
	}
}

func TestKNNClonePrivateIsIndependent(t *testing.T) {
	p := NewKNNPredictor(1, 100)
	history := []dtrack.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	p.Predict(3, 0, history)

	clone := p.Clone().(*KNNPredictor)
	clone.dataset = append(clone.dataset, trainingRow{})
	if len(p.dataset) == len(clone.dataset) {
		t.Fatal("mutating the clone's dataset should not affect the original")
	}
}
