// Package tracking implements the core per-frame tracking update, the
// movement predictors, the built-in distance algorithms, and the default
// trackable object.
package tracking

import (
	"fmt"

	"github.com/declanatkins/dtrack"
)

// Config configures one tracker's worth of classes. Each per-class field may
// be given as a single default (applied to every class), a slice parallel to
// TrackedClasses, or an explicit map; a map missing one of TrackedClasses is
// a configuration error. TrackedClasses must name at least one class; there
// is no separate "single class" field because a one-element slice already
// covers it.
type Config struct {
	TrackedClasses []string

	// TrackFactory, PredictorFactory and DeleteAfter each accept one of:
	// a bare value (applied to every class), a slice the same length and
	// order as TrackedClasses, or a map keyed by class name.
	TrackFactory     any
	PredictorFactory any
	DeleteAfter      any

	Distance  dtrack.DistanceAlgorithm
	Threshold float64
}

// ResolvedConfig is a Config after per-class table resolution and
// validation; it is what Update consumes.
type ResolvedConfig struct {
	ActiveClasses    []string
	TrackFactory     map[string]dtrack.TrackableObjectFactory
	PredictorFactory map[string]dtrack.MovementPredictorFactory
	DeleteAfter      map[string]int
	Distance         dtrack.DistanceAlgorithm
	Threshold        float64
}

// NewConfig validates and resolves a Config, mirroring the defaulting
// constructors used throughout this codebase: callers get back a fully
// resolved, immediately usable value or a *dtrack.ConfigError explaining
// exactly what was wrong.
func NewConfig(c Config) (*ResolvedConfig, error) {
	if len(c.TrackedClasses) == 0 {
		return nil, &dtrack.ConfigError{Msg: "at least one tracked class must be specified"}
	}
	if c.Distance == nil {
		return nil, &dtrack.ConfigError{Msg: "a distance algorithm is required"}
	}
	if c.Threshold < 0 {
		return nil, &dtrack.ConfigError{Msg: "threshold must be >= 0"}
	}

	trackFactory, err := resolveTable[dtrack.TrackableObjectFactory](c.TrackedClasses, "track factory", c.TrackFactory)
	if err != nil {
		return nil, err
	}
	predictorFactory, err := resolveTable[dtrack.MovementPredictorFactory](c.TrackedClasses, "predictor factory", c.PredictorFactory)
	if err != nil {
		return nil, err
	}
	deleteAfter, err := resolveTable[int](c.TrackedClasses, "delete_after", c.DeleteAfter)
	if err != nil {
		return nil, err
	}

	return &ResolvedConfig{
		ActiveClasses:    append([]string(nil), c.TrackedClasses...),
		TrackFactory:     trackFactory,
		PredictorFactory: predictorFactory,
		DeleteAfter:      deleteAfter,
		Distance:         c.Distance,
		Threshold:        c.Threshold,
	}, nil
}

// resolveTable normalizes a bare value / parallel slice / class map into a
// map[string]T covering every class in classes, or reports a ConfigError.
func resolveTable[T any](classes []string, field string, raw any) (map[string]T, error) {
	out := make(map[string]T, len(classes))

	switch v := raw.(type) {
	case nil:
		return nil, &dtrack.ConfigError{Msg: fmt.Sprintf("%s must be provided", field)}
	case map[string]T:
		for _, c := range classes {
			val, ok := v[c]
			if !ok {
				return nil, &dtrack.ConfigError{Msg: fmt.Sprintf("%s map is missing class %q", field, c)}
			}
			out[c] = val
		}
		return out, nil
	case []T:
		if len(v) != len(classes) {
			return nil, &dtrack.ConfigError{Msg: fmt.Sprintf("%s list length %d does not match %d tracked classes", field, len(v), len(classes))}
		}
		for i, c := range classes {
			out[c] = v[i]
		}
		return out, nil
	case T:
		for _, c := range classes {
			out[c] = v
		}
		return out, nil
	default:
		return nil, &dtrack.ConfigError{Msg: fmt.Sprintf("%s has unsupported type %T", field, raw)}
	}
}
