package pipeline

import (
	"fmt"

	"github.com/declanatkins/dtrack"
)

// Resolver is a pure function from the current context to a value. Resolvers
// form a closed, enumerable family (see the constructors below); there is no
// user-extensible resolver type and no reflection.
type Resolver interface {
	Resolve(ctx *dtrack.ApplicationContext) (any, error)
}

type resolverFunc func(ctx *dtrack.ApplicationContext) (any, error)

func (f resolverFunc) Resolve(ctx *dtrack.ApplicationContext) (any, error) { return f(ctx) }

// ImageResolver resolves to the current frame's Image.
func ImageResolver() Resolver {
	return resolverFunc(func(ctx *dtrack.ApplicationContext) (any, error) { return ctx.Image, nil })
}

// FrameNumberResolver resolves to the current frame number.
func FrameNumberResolver() Resolver {
	return resolverFunc(func(ctx *dtrack.ApplicationContext) (any, error) { return ctx.FrameNumber, nil })
}

// AllDetectionsResolver resolves to every detection for this frame.
// ContractError if the detection step has not yet run.
func AllDetectionsResolver() Resolver {
	return resolverFunc(func(ctx *dtrack.ApplicationContext) (any, error) {
		if ctx.Detections == nil {
			return nil, &dtrack.ContractError{Msg: "detections requested before the detection step ran"}
		}
		return ctx.Detections, nil
	})
}

// DetectionsOfClassResolver resolves to the detections whose label equals
// class, in their original order.
func DetectionsOfClassResolver(class string) Resolver {
	return resolverFunc(func(ctx *dtrack.ApplicationContext) (any, error) {
		if ctx.Detections == nil {
			return nil, &dtrack.ContractError{Msg: "detections requested before the detection step ran"}
		}
		out := make([]dtrack.Detection, 0)
		for _, d := range ctx.Detections {
			if d.Label == class {
				out = append(out, d)
			}
		}
		return out, nil
	})
}

// TrackSelection names which classification bucket a track resolver draws
// from.
type TrackSelection int

const (
	AllTracks TrackSelection = iota
	MatchedTracks
	UnmatchedTracks
	NewTracks
	DeletedTracks
)

// TracksResolver resolves to tracks from the named selection, optionally
// restricted to one class ("" means every class), and either as a bare
// slice or as a map keyed by track key when withKeys is true.
func TracksResolver(selection TrackSelection, class string, withKeys bool) Resolver {
	return resolverFunc(func(ctx *dtrack.ApplicationContext) (any, error) {
		keys, deletedObjs, err := selectionKeys(ctx, selection)
		if err != nil {
			return nil, err
		}

		if withKeys {
			out := map[string]dtrack.TrackableObject{}
			for _, k := range keys {
				t, ok := lookupTrack(ctx, deletedObjs, k)
				if !ok || (class != "" && t.ClassName() != class) {
					continue
				}
				out[k] = t
			}
			return out, nil
		}

		out := make([]dtrack.TrackableObject, 0, len(keys))
		for _, k := range keys {
			t, ok := lookupTrack(ctx, deletedObjs, k)
			if !ok || (class != "" && t.ClassName() != class) {
				continue
			}
			out = append(out, t)
		}
		return out, nil
	})
}

func selectionKeys(ctx *dtrack.ApplicationContext, selection TrackSelection) ([]string, map[string]dtrack.TrackableObject, error) {
	switch selection {
	case AllTracks:
		keys := make([]string, 0, len(ctx.Tracks))
		for k := range ctx.Tracks {
			keys = append(keys, k)
		}
		return keys, nil, nil
	case MatchedTracks:
		return ctx.Matched, nil, nil
	case UnmatchedTracks:
		return ctx.Unmatched, nil, nil
	case NewTracks:
		return ctx.New, nil, nil
	case DeletedTracks:
		return ctx.Deleted, ctx.DeletedObjects, nil
	default:
		return nil, nil, fmt.Errorf("dtrack/pipeline: unknown track selection %d", selection)
	}
}

func lookupTrack(ctx *dtrack.ApplicationContext, deletedObjs map[string]dtrack.TrackableObject, key string) (dtrack.TrackableObject, bool) {
	if deletedObjs != nil {
		t, ok := deletedObjs[key]
		return t, ok
	}
	t, ok := ctx.Tracks[key]
	return t, ok
}

// AttributeResolver resolves to the named tracking attribute's current
// value. ContractError if the name was never registered.
func AttributeResolver(name string) Resolver {
	return resolverFunc(func(ctx *dtrack.ApplicationContext) (any, error) {
		v, ok := ctx.Attributes[name]
		if !ok {
			return nil, &dtrack.ContractError{Msg: fmt.Sprintf("tracking attribute %q is not registered", name)}
		}
		return v, nil
	})
}

// PriorStepResultResolver resolves to a previously-run step's return value.
// ContractError if that step has not run (or does not exist).
func PriorStepResultResolver(stepName string) Resolver {
	return resolverFunc(func(ctx *dtrack.ApplicationContext) (any, error) {
		v, ok := ctx.StepResults[stepName]
		if !ok {
			return nil, &dtrack.ContractError{Msg: fmt.Sprintf("step result %q does not exist", stepName)}
		}
		return v, nil
	})
}

// TrackTypeTableResolver resolves to the class -> track-type factory table.
func TrackTypeTableResolver() Resolver {
	return resolverFunc(func(ctx *dtrack.ApplicationContext) (any, error) { return ctx.TrackTypeFactory, nil })
}

// PredictorFactoryTableResolver resolves to the class -> predictor factory
// table.
func PredictorFactoryTableResolver() Resolver {
	return resolverFunc(func(ctx *dtrack.ApplicationContext) (any, error) { return ctx.PredictorFactory, nil })
}

// ContextResolver resolves to the whole *dtrack.ApplicationContext. It exists
// so the built-in tracking step can gain the mutable, whole-context access
// the core tracking update needs (the live track map, the classification key
// sets, and the per-class configuration tables all at once) without
// inventing a bespoke non-resolver calling convention just for one step.
func ContextResolver() Resolver {
	return resolverFunc(func(ctx *dtrack.ApplicationContext) (any, error) { return ctx, nil })
}
