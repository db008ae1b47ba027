package tracking

import (
	"fmt"
	"math"

	"github.com/declanatkins/dtrack"
	"gonum.org/v1/gonum/mat"
)

// EuclideanCentroid is the reference distance algorithm: the Euclidean
// distance between a track's last bounding-box center and the detection's.
// Monotone in positional disagreement, as required of the standard
// implementations.
type EuclideanCentroid struct{}

func (EuclideanCentroid) Distance(track dtrack.TrackableObject, detection dtrack.Detection) float64 {
	tb := track.BoundingBox()
	db := detection.BoundingBox
	v := mat.NewVecDense(2, []float64{tb.Cx - db.Cx, tb.Cy - db.Cy})
	return dtrack.SanitizeCost(mat.Norm(v, 2))
}

func (EuclideanCentroid) Features(dtrack.TrackableObject) dtrack.Features { return nil }

// ManhattanCentroid scores by the L1 distance between box centers.
type ManhattanCentroid struct{}

func (ManhattanCentroid) Distance(track dtrack.TrackableObject, detection dtrack.Detection) float64 {
	tb := track.BoundingBox()
	db := detection.BoundingBox
	return dtrack.SanitizeCost(math.Abs(tb.Cx-db.Cx) + math.Abs(tb.Cy-db.Cy))
}

func (ManhattanCentroid) Features(dtrack.TrackableObject) dtrack.Features { return nil }

// IoUDistance scores 1 - intersection-over-union of the two axis-aligned
// bounding boxes (rotation is ignored: this metric only reasons about the
// Width/Height extents about each center). A pair with zero union area
// scores +Inf (never match).
type IoUDistance struct{}

func (IoUDistance) Distance(track dtrack.TrackableObject, detection dtrack.Detection) float64 {
	tb := track.BoundingBox()
	db := detection.BoundingBox

	tx1, ty1, tx2, ty2 := tb.Cx-tb.Width/2, tb.Cy-tb.Height/2, tb.Cx+tb.Width/2, tb.Cy+tb.Height/2
	dx1, dy1, dx2, dy2 := db.Cx-db.Width/2, db.Cy-db.Height/2, db.Cx+db.Width/2, db.Cy+db.Height/2

	ix1, iy1 := math.Max(tx1, dx1), math.Max(ty1, dy1)
	ix2, iy2 := math.Min(tx2, dx2), math.Min(ty2, dy2)

	interW, interH := math.Max(0, ix2-ix1), math.Max(0, iy2-iy1)
	inter := interW * interH
	union := tb.Width*tb.Height + db.Width*db.Height - inter
	if union <= 0 {
		return dtrack.Inf
	}
	return dtrack.SanitizeCost(1 - inter/union)
}

func (IoUDistance) Features(dtrack.TrackableObject) dtrack.Features { return nil }

var byName = map[string]dtrack.DistanceAlgorithm{
	"euclidean": EuclideanCentroid{},
	"manhattan": ManhattanCentroid{},
	"iou":       IoUDistance{},
}

// GetDistanceByName selects a built-in distance algorithm by name from a
// plain lookup table.
func GetDistanceByName(name string) (dtrack.DistanceAlgorithm, error) {
	d, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("dtrack/tracking: unknown distance %q", name)
	}
	return d, nil
}
