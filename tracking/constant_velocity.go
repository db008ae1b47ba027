package tracking

import "github.com/declanatkins/dtrack"

// ConstantVelocityPredictor is the default movement predictor: it
// extrapolates the last observed displacement one step forward. With fewer
// than two history points it returns the current point unchanged.
type ConstantVelocityPredictor struct{}

func (ConstantVelocityPredictor) Predict(x, y float64, history []dtrack.Point) (float64, float64) {
	if len(history) < 2 {
		return x, y
	}
	last := history[len(history)-1]
	secondLast := history[len(history)-2]
	vx, vy := last.X-secondLast.X, last.Y-secondLast.Y
	return last.X + vx, last.Y + vy
}

func (c ConstantVelocityPredictor) PredictN(x, y float64, history []dtrack.Point, n int) []dtrack.Point {
	out := make([]dtrack.Point, 0, n)
	mutable := append([]dtrack.Point(nil), history...)
	for i := 0; i < n; i++ {
		nx, ny := c.Predict(x, y, mutable)
		x, y = nx, ny
		out = append(out, dtrack.Point{X: x, Y: y})
		mutable = append(mutable, dtrack.Point{X: x, Y: y})
	}
	return out
}

func (c ConstantVelocityPredictor) Clone() dtrack.MovementPredictor { return c }

// ConstantVelocityFactory constructs a fresh ConstantVelocityPredictor for
// each new track. The predictor is stateless, so every instance is
// interchangeable, but a distinct value is still handed out per track to
// keep the factory contract uniform with stateful predictors.
type ConstantVelocityFactory struct{}

func (ConstantVelocityFactory) NewPredictor() dtrack.MovementPredictor {
	return ConstantVelocityPredictor{}
}
