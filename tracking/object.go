package tracking

import (
	"fmt"

	"github.com/declanatkins/dtrack"
	"github.com/google/uuid"
)

// DefaultTrackableObject is the reference TrackableObject implementation.
type DefaultTrackableObject struct {
	key       string
	className string

	subclassCounts map[string]int
	subclassOrder  []string // first-occurrence order, for plurality tie-break

	box       dtrack.Box
	mask      dtrack.Mask
	features  dtrack.Features
	history   []dtrack.Point
	firstSeen int
	lastSeen  int

	predictor  dtrack.MovementPredictor
	attributes map[string]any
}

// DefaultObjectFactory constructs DefaultTrackableObjects from detections.
type DefaultObjectFactory struct{}

func (DefaultObjectFactory) FromDetection(detection dtrack.Detection, predictor dtrack.MovementPredictor, firstSeenFrame int, attributes map[string]any) dtrack.TrackableObject {
	attrs := make(map[string]any, len(attributes))
	for k, v := range attributes {
		attrs[k] = v
	}
	return &DefaultTrackableObject{
		key:            uuid.NewString(),
		className:      detection.Label,
		subclassCounts: map[string]int{detection.Label: 1},
		subclassOrder:  []string{detection.Label},
		box:            detection.BoundingBox,
		mask:           detection.Mask,
		history:        []dtrack.Point{{X: detection.BoundingBox.Cx, Y: detection.BoundingBox.Cy}},
		firstSeen:      firstSeenFrame,
		lastSeen:       firstSeenFrame,
		predictor:      predictor,
		attributes:     attrs,
	}
}

func (o *DefaultTrackableObject) Key() string       { return o.key }
func (o *DefaultTrackableObject) ClassName() string { return o.className }

// SubclassName returns the plurality-winning subclass tag, ties broken by
// earliest observation.
func (o *DefaultTrackableObject) SubclassName() string {
	best := o.subclassOrder[0]
	bestCount := o.subclassCounts[best]
	for _, name := range o.subclassOrder[1:] {
		if c := o.subclassCounts[name]; c > bestCount {
			best, bestCount = name, c
		}
	}
	return best
}

func (o *DefaultTrackableObject) BoundingBox() dtrack.Box   { return o.box }
func (o *DefaultTrackableObject) Mask() dtrack.Mask         { return o.mask }
func (o *DefaultTrackableObject) Features() dtrack.Features { return o.features }
func (o *DefaultTrackableObject) SetFeatures(features dtrack.Features) { o.features = features }
func (o *DefaultTrackableObject) LocationHistory() []dtrack.Point {
	return append([]dtrack.Point(nil), o.history...)
}
func (o *DefaultTrackableObject) FirstSeen() int { return o.firstSeen }
func (o *DefaultTrackableObject) LastSeen() int  { return o.lastSeen }

// Update replaces the box/mask, appends to location history, and records
// the detection's subclass tag. It leaves the cached features untouched;
// the tracking update calls SetFeatures separately once the box above is
// current, so a DistanceAlgorithm computing features from the track sees
// this frame's position.
func (o *DefaultTrackableObject) Update(detection dtrack.Detection, frameNumber int) {
	o.box = detection.BoundingBox
	o.mask = detection.Mask
	o.history = append(o.history, dtrack.Point{X: detection.BoundingBox.Cx, Y: detection.BoundingBox.Cy})
	o.lastSeen = frameNumber

	if _, ok := o.subclassCounts[detection.Label]; !ok {
		o.subclassOrder = append(o.subclassOrder, detection.Label)
	}
	o.subclassCounts[detection.Label]++
}

// PredictLocations delegates to the movement predictor, passing the current
// point and the history preceding it.
func (o *DefaultTrackableObject) PredictLocations(n int) []dtrack.Point {
	current := o.history[len(o.history)-1]
	preceding := o.history[:len(o.history)-1]
	return o.predictor.PredictN(current.X, current.Y, preceding, n)
}

func (o *DefaultTrackableObject) GetAttribute(name string) (any, bool, error) {
	if _, registered := o.attributes[name]; !registered {
		return nil, false, &dtrack.ContractError{Msg: fmt.Sprintf("tracking attribute %q is not registered on track %s", name, o.key)}
	}
	v := o.attributes[name]
	return v, v != nil, nil
}

func (o *DefaultTrackableObject) SetAttribute(name string, value any) error {
	if _, registered := o.attributes[name]; !registered {
		return &dtrack.ContractError{Msg: fmt.Sprintf("tracking attribute %q is not registered on track %s", name, o.key)}
	}
	o.attributes[name] = value
	return nil
}

// Clone returns a deep copy for atomic per-frame rollback.
func (o *DefaultTrackableObject) Clone() dtrack.TrackableObject {
	clone := &DefaultTrackableObject{
		key:            o.key,
		className:      o.className,
		subclassCounts: make(map[string]int, len(o.subclassCounts)),
		subclassOrder:  append([]string(nil), o.subclassOrder...),
		box:            o.box,
		mask:           append(dtrack.Mask(nil), o.mask...),
		features:       o.features,
		history:        append([]dtrack.Point(nil), o.history...),
		firstSeen:      o.firstSeen,
		lastSeen:       o.lastSeen,
		predictor:      o.predictor.Clone(),
		attributes:     make(map[string]any, len(o.attributes)),
	}
	for k, v := range o.subclassCounts {
		clone.subclassCounts[k] = v
	}
	for k, v := range o.attributes {
		clone.attributes[k] = v
	}
	return clone
}
