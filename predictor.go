package dtrack

// MovementPredictor forecasts a track's future location from its current
// point and its prior location history (oldest first, excluding the current
// point).
//
// A stateful implementation (e.g. a kNN training buffer) may accumulate
// state across Predict calls, but PredictN's multi-step lookahead must not
// leave any trace of its speculative intermediate steps: whatever state it
// mutates while extending the lookahead must be restored before it returns,
// so a later Predict call sees exactly the state it would have seen had
// PredictN never run.
type MovementPredictor interface {
	// Predict returns the next location given the current point and the
	// history preceding it. With fewer than two history points, it returns
	// (x, y) unchanged.
	Predict(x, y float64, history []Point) (float64, float64)

	// PredictN iteratively extends Predict by n steps.
	PredictN(x, y float64, history []Point, n int) []Point

	// Clone returns an independent copy for a new track, except where a
	// predictor is deliberately shared process-wide (see the kNN predictor),
	// in which case Clone returns the same instance.
	Clone() MovementPredictor
}

// MovementPredictorFactory constructs a MovementPredictor for a newly
// spawned track. Per-class tables store factories, not singleton instances,
// so that a class's predictor configuration is reusable across many tracks.
type MovementPredictorFactory interface {
	NewPredictor() MovementPredictor
}
