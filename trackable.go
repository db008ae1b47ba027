package dtrack

// TrackableObject is a persistent tracked identity: class, history,
// last-seen frame, its own movement predictor instance, and attached
// distance features. Implementations are free to add fields, but must
// honor the lifecycle invariants: first_seen <= last_seen <= current_frame;
// location history non-empty; class_name never changes after construction.
type TrackableObject interface {
	// Key is the opaque, universally-unique, string-shaped identity minted
	// at creation.
	Key() string

	// ClassName is fixed at creation and never changes.
	ClassName() string

	// SubclassName is the plurality winner of the observed subclass tags,
	// ties broken by earliest observation.
	SubclassName() string

	BoundingBox() Box
	Mask() Mask

	// Features returns the feature bundle a DistanceAlgorithm last cached
	// on this track via SetFeatures, or nil if none has been cached yet.
	Features() Features

	// SetFeatures caches a feature bundle computed by a DistanceAlgorithm's
	// Features method. The tracking update calls this after every match and
	// spawn, passing the track itself as the algorithm's target, so later
	// distance computations against this track can reuse it instead of
	// recomputing from scratch.
	SetFeatures(features Features)

	// LocationHistory is the ordered (cx, cy) points observed, one per
	// accepted update including creation. Never truncated.
	LocationHistory() []Point

	FirstSeen() int
	LastSeen() int

	// Update replaces the box/mask with the detection's values, appends
	// (cx, cy) to the location history, records the detection's subclass
	// tag, and sets LastSeen to frameNumber. It does not touch the cached
	// features; the tracking update refreshes those separately via
	// SetFeatures once the box is current.
	Update(detection Detection, frameNumber int)

	// PredictLocations delegates to the movement predictor, passing the
	// current location and the history preceding it.
	PredictLocations(n int) []Point

	// GetAttribute/SetAttribute operate on a fixed key set established at
	// creation; both fail if name was never registered on this track.
	GetAttribute(name string) (any, bool, error)
	SetAttribute(name string, value any) error

	// Clone returns a deep copy suitable for atomic rollback: mutating the
	// clone must never affect the original.
	Clone() TrackableObject
}

// TrackableObjectFactory constructs a TrackableObject from a detection when
// the tracking update spawns a new track. Per-class tables store factories.
type TrackableObjectFactory interface {
	FromDetection(detection Detection, predictor MovementPredictor, firstSeenFrame int, attributes map[string]any) TrackableObject
}
