package tracking

import (
	"testing"

	"github.com/declanatkins/dtrack"
)

func TestFromDetectionInitializesTrack(t *testing.T) {
	f := DefaultObjectFactory{}
	obj := f.FromDetection(detAt("car", 10, 10), ConstantVelocityPredictor{}, 3, map[string]any{"zone": nil})

	if obj.ClassName() != "car" {
		t.Fatalf("expected class name car, got %v", obj.ClassName())
	}
	if obj.FirstSeen() != 3 || obj.LastSeen() != 3 {
		t.Fatalf("expected first_seen=last_seen=3, got %d/%d", obj.FirstSeen(), obj.LastSeen())
	}
	if obj.Key() == "" {
		t.Fatal("expected a non-empty generated key")
	}
	if _, ok, err := obj.GetAttribute("zone"); err != nil || ok {
		t.Fatalf("expected a registered-but-nil attribute, got ok=%v err=%v", ok, err)
	}
}

func TestUpdateAppendsHistoryAndAdvancesLastSeen(t *testing.T) {
	f := DefaultObjectFactory{}
	obj := f.FromDetection(detAt("car", 0, 0), ConstantVelocityPredictor{}, 0, nil)

	obj.Update(detAt("car", 1, 1), 1)
	hist := obj.LocationHistory()
	if len(hist) != 2 || hist[1] != (dtrack.Point{X: 1, Y: 1}) {
		t.Fatalf("unexpected history after update: %v", hist)
	}
	if obj.LastSeen() != 1 {
		t.Fatalf("expected last_seen=1, got %d", obj.LastSeen())
	}
	if obj.FirstSeen() != 0 {
		t.Fatalf("first_seen must not change on update, got %d", obj.FirstSeen())
	}
}

func TestSubclassPluralityTiesGoToEarliest(t *testing.T) {
	obj := (DefaultObjectFactory{}).FromDetection(detAt("car", 0, 0), ConstantVelocityPredictor{}, 0, nil).(*DefaultTrackableObject)
	// first observation is "car"; tie with "truck" after one more "truck" observation
	obj.Update(dtrack.Detection{Label: "truck", BoundingBox: dtrack.Box{Cx: 1, Cy: 1}}, 1)
	if obj.SubclassName() != "car" {
		t.Fatalf("expected tie broken toward earliest-seen subclass 'car', got %q", obj.SubclassName())
	}
	obj.Update(dtrack.Detection{Label: "truck", BoundingBox: dtrack.Box{Cx: 2, Cy: 2}}, 2)
	if obj.SubclassName() != "truck" {
		t.Fatalf("expected 'truck' to win plurality 2-1, got %q", obj.SubclassName())
	}
}

func TestSetGetAttributeUnregisteredFails(t *testing.T) {
	obj := (DefaultObjectFactory{}).FromDetection(detAt("car", 0, 0), ConstantVelocityPredictor{}, 0, nil)
	if err := obj.SetAttribute("unknown", 1); err == nil {
		t.Fatal("expected error setting an unregistered attribute")
	}
	if _, _, err := obj.GetAttribute("unknown"); err == nil {
		t.Fatal("expected error getting an unregistered attribute")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	obj := (DefaultObjectFactory{}).FromDetection(detAt("car", 0, 0), ConstantVelocityPredictor{}, 0, map[string]any{"zone": "a"})
	clone := obj.Clone()

	clone.Update(detAt("car", 5, 5), 1)
	if err := clone.SetAttribute("zone", "b"); err != nil {
		t.Fatalf("SetAttribute on clone: %v", err)
	}

	if obj.LastSeen() != 0 {
		t.Fatalf("mutating the clone should not affect the original, got last_seen=%d", obj.LastSeen())
	}
	v, _, _ := obj.GetAttribute("zone")
	if v != "a" {
		t.Fatalf("mutating the clone's attribute should not affect the original, got %v", v)
	}
}

func TestPredictLocationsUsesHistoryExcludingCurrent(t *testing.T) {
	obj := (DefaultObjectFactory{}).FromDetection(detAt("car", 0, 0), ConstantVelocityPredictor{}, 0, nil)
	obj.Update(detAt("car", 2, 0), 1)
	obj.Update(detAt("car", 4, 0), 2)

	// history is now [(0,0),(2,0),(4,0)]; PredictLocations passes the
	// current point (4,0) and the preceding history [(0,0),(2,0)], which has
	// enough points for the constant-velocity predictor to extrapolate.
	preds := obj.PredictLocations(1)
	if len(preds) != 1 || preds[0] != (dtrack.Point{X: 4, Y: 0}) {
		t.Fatalf("expected constant-velocity lookahead to (4, 0), got %v", preds)
	}
}
