package tracking

import (
	"fmt"
	"sort"

	"github.com/declanatkins/dtrack"
	"gonum.org/v1/gonum/mat"
)

// Result is the outcome of one tracking update: the four disjoint key sets
// and the full (key, track) pairs for tracks retired this frame.
type Result struct {
	Matched        []string
	Unmatched      []string
	New            []string
	Deleted        []string
	DeletedObjects map[string]dtrack.TrackableObject
}

type costEntry struct {
	cost float64
	row  int
	col  int
}

// Update runs the per-frame tracking update for every active class in
// cfg.ActiveClasses, in order, mutating tracks in place. detections must be
// non-nil (a nil slice, distinct from an empty one, signals that the
// detection step never ran and is reported as a ContractError).
// registeredAttributes seeds the fixed attribute-key set every newly spawned
// track receives.
func Update(cfg *ResolvedConfig, tracks map[string]dtrack.TrackableObject, detections []dtrack.Detection, frameNumber int, registeredAttributes []string) (*Result, error) {
	if detections == nil {
		return nil, &dtrack.ContractError{Msg: "tracking step invoked before detections were populated"}
	}

	seedAttrs := make(map[string]any, len(registeredAttributes))
	for _, name := range registeredAttributes {
		seedAttrs[name] = nil
	}

	result := &Result{DeletedObjects: map[string]dtrack.TrackableObject{}}

	for _, class := range cfg.ActiveClasses {
		deleteAfter, ok := cfg.DeleteAfter[class]
		if !ok {
			panic(fmt.Sprintf("dtrack/tracking: no delete_after configured for active class %q", class))
		}
		trackFactory, ok := cfg.TrackFactory[class]
		if !ok {
			panic(fmt.Sprintf("dtrack/tracking: no track factory configured for active class %q", class))
		}
		predictorFactory, ok := cfg.PredictorFactory[class]
		if !ok {
			panic(fmt.Sprintf("dtrack/tracking: no predictor factory configured for active class %q", class))
		}

		var detIdx []int
		for i, d := range detections {
			if d.Label == class {
				detIdx = append(detIdx, i)
			}
		}

		// Fixed iteration order for this class's tracks: ascending by key,
		// so determinism does not depend on Go's randomized map iteration
		// order.
		var trackKeys []string
		for k, t := range tracks {
			if t.ClassName() == class {
				trackKeys = append(trackKeys, k)
			}
		}
		sort.Strings(trackKeys)

		spawn := func(detIndex int) {
			d := detections[detIndex]
			obj := trackFactory.FromDetection(d, predictorFactory.NewPredictor(), frameNumber, seedAttrs)
			obj.SetFeatures(cfg.Distance.Features(obj))
			tracks[obj.Key()] = obj
			result.New = append(result.New, obj.Key())
		}

		retireOrUnmatch := func(key string) {
			t := tracks[key]
			if frameNumber-t.LastSeen() > deleteAfter {
				delete(tracks, key)
				result.Deleted = append(result.Deleted, key)
				result.DeletedObjects[key] = t
			} else {
				result.Unmatched = append(result.Unmatched, key)
			}
		}

		if len(trackKeys) == 0 {
			for _, di := range detIdx {
				spawn(di)
			}
			continue
		}
		if len(detIdx) == 0 {
			for _, key := range trackKeys {
				retireOrUnmatch(key)
			}
			continue
		}

		// The cost matrix is rows=tracks by cols=detections, the same
		// orientation gonum's Dense uses for the greedy-matching distance
		// matrix: one row per candidate on the left, one column per
		// candidate on the right, populated with Set and read back with At.
		costMat := mat.NewDense(len(trackKeys), len(detIdx), nil)
		for i, key := range trackKeys {
			t := tracks[key]
			for j, di := range detIdx {
				costMat.Set(i, j, dtrack.SanitizeCost(cfg.Distance.Distance(t, detections[di])))
			}
		}

		entries := make([]costEntry, 0, len(trackKeys)*len(detIdx))
		for i := 0; i < len(trackKeys); i++ {
			for j := 0; j < len(detIdx); j++ {
				entries = append(entries, costEntry{cost: costMat.At(i, j), row: i, col: j})
			}
		}
		// Entries are already in row-major order; a stable sort on cost
		// alone preserves that order among ties, giving a deterministic
		// row-major tie-break without computing i*cols+j explicitly. A
		// repeated argmin-rescan over the matrix has no record of which
		// equal-cost cell it saw first once both are still valid
		// candidates, so it cannot guarantee this tie-break.
		sort.SliceStable(entries, func(a, b int) bool { return entries[a].cost < entries[b].cost })

		usedRows := make([]bool, len(trackKeys))
		usedCols := make([]bool, len(detIdx))
		for _, e := range entries {
			if usedRows[e.row] || usedCols[e.col] {
				continue
			}
			if e.cost > cfg.Threshold {
				break
			}
			key := trackKeys[e.row]
			t := tracks[key]
			t.Update(detections[detIdx[e.col]], frameNumber)
			t.SetFeatures(cfg.Distance.Features(t))
			result.Matched = append(result.Matched, key)
			usedRows[e.row] = true
			usedCols[e.col] = true
		}

		for i, key := range trackKeys {
			if !usedRows[i] {
				retireOrUnmatch(key)
			}
		}
		for j, di := range detIdx {
			if !usedCols[j] {
				spawn(di)
			}
		}
	}

	return result, nil
}
