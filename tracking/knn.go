package tracking

import (
	"sort"

	"github.com/declanatkins/dtrack"
	"gonum.org/v1/gonum/mat"
)

// trainingRow is [x, y, vx_in, vy_in, ax_in, ay_in, vx_out, vy_out].
type trainingRow [8]float64

// KNNPredictor is the stateful movement predictor: it maintains a rolling
// dataset of feature rows and predicts the next location by averaging the
// outgoing velocity of the k nearest rows (Euclidean distance over the 6
// input dimensions). It may be shared across many tracks of a class (see
// Clone), in which case predictions for one track are influenced by the
// training data accumulated from all of them — this is the "process-wide
// shared kNN model" the design notes call out.
type KNNPredictor struct {
	K           int
	MaxHistory  int
	dataset     []trainingRow
	shared      bool
}

// NewKNNPredictor constructs a predictor with its own private dataset.
func NewKNNPredictor(k, maxHistory int) *KNNPredictor {
	return &KNNPredictor{K: k, MaxHistory: maxHistory}
}

func convertToPredictionFeature(x, y float64, history []dtrack.Point) [6]float64 {
	n := len(history)
	var vx, vy float64
	if n >= 1 {
		last := history[n-1]
		vx, vy = x-last.X, y-last.Y
	}
	var ax, ay float64
	if n >= 2 {
		last, secondLast := history[n-1], history[n-2]
		prevVx, prevVy := last.X-secondLast.X, last.Y-secondLast.Y
		ax, ay = vx-prevVx, vy-prevVy
	}
	return [6]float64{x, y, vx, vy, ax, ay}
}

// convertToTrainingFeature builds a full 8-dim training row from the last
// four points of history (the point "current" at call time, i.e.
// history[len-1], plus three before it). Returns false if history is too
// short (< 4 points).
func convertToTrainingFeature(history []dtrack.Point) (trainingRow, bool) {
	n := len(history)
	if n < 4 {
		return trainingRow{}, false
	}
	cur, prev, prevPrev, prevPrevPrev := history[n-1], history[n-2], history[n-3], history[n-4]

	outVx, outVy := cur.X-prev.X, cur.Y-prev.Y
	inVx, inVy := prev.X-prevPrev.X, prev.Y-prevPrev.Y
	inAx := inVx - (prevPrev.X - prevPrevPrev.X)
	inAy := inVy - (prevPrev.Y - prevPrevPrev.Y)

	return trainingRow{prev.X, prev.Y, inVx, inVy, inAx, inAy, outVx, outVy}, true
}

// Predict finds the k nearest dataset rows to the current feature vector
// and averages their outgoing velocity. A new training row derived from
// history is appended first (bounded FIFO on MaxHistory), so the dataset
// keeps growing across calls from every track sharing this predictor.
func (p *KNNPredictor) Predict(x, y float64, history []dtrack.Point) (float64, float64) {
	if len(history) < 2 {
		return x, y
	}
	if row, ok := convertToTrainingFeature(history); ok {
		p.dataset = append(p.dataset, row)
		if len(p.dataset) > p.MaxHistory {
			p.dataset = p.dataset[1:]
		}
	}
	if len(p.dataset) < p.K {
		return x, y
	}

	feature := convertToPredictionFeature(x, y, history)
	type cand struct {
		dist   float64
		vx, vy float64
	}
	cands := make([]cand, len(p.dataset))
	for i, row := range p.dataset {
		v := mat.NewVecDense(6, []float64{
			row[0] - feature[0], row[1] - feature[1], row[2] - feature[2],
			row[3] - feature[3], row[4] - feature[4], row[5] - feature[5],
		})
		cands[i] = cand{dist: mat.Norm(v, 2), vx: row[6], vy: row[7]}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	cands = cands[:p.K]

	var vx, vy float64
	for _, c := range cands {
		vx += c.vx
		vy += c.vy
	}
	vx /= float64(p.K)
	vy /= float64(p.K)
	return x + vx, y + vy
}

// PredictN extends Predict by n steps, snapshotting the dataset first and
// restoring it afterward so the lookahead never pollutes training data.
func (p *KNNPredictor) PredictN(x, y float64, history []dtrack.Point, n int) []dtrack.Point {
	out := make([]dtrack.Point, 0, n)
	mutable := append([]dtrack.Point(nil), history...)
	backup := append([]trainingRow(nil), p.dataset...)
	for i := 0; i < n; i++ {
		nx, ny := p.Predict(x, y, mutable)
		x, y = nx, ny
		out = append(out, dtrack.Point{X: x, Y: y})
		mutable = append(mutable, dtrack.Point{X: x, Y: y})
	}
	p.dataset = backup
	return out
}

// Clone returns a deep copy of a private predictor, or the same pointer when
// this predictor was constructed as an explicitly shared instance — per the
// design notes, sharing must be a visible, opted-in decision, not hidden
// global state.
func (p *KNNPredictor) Clone() dtrack.MovementPredictor {
	if p.shared {
		return p
	}
	return &KNNPredictor{
		K:          p.K,
		MaxHistory: p.MaxHistory,
		dataset:    append([]trainingRow(nil), p.dataset...),
	}
}

// KNNFactory hands out predictors for new tracks. When Shared is true, every
// track of the class receives the same *KNNPredictor instance, and its
// Clone becomes a no-op identity copy so atomic-rollback semantics still
// hold for the track map without duplicating the shared model.
type KNNFactory struct {
	K          int
	MaxHistory int
	Shared     bool

	shared *KNNPredictor
}

func (f *KNNFactory) NewPredictor() dtrack.MovementPredictor {
	if !f.Shared {
		return NewKNNPredictor(f.K, f.MaxHistory)
	}
	if f.shared == nil {
		f.shared = NewKNNPredictor(f.K, f.MaxHistory)
		f.shared.shared = true
	}
	return f.shared
}
