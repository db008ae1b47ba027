package dtrack

import "encoding/json"

// Mask is a pixel mask as a nested grid of booleans; nil means "no mask",
// distinct from an empty-but-present mask.
type Mask [][]bool

// Detection is a single-frame observation: a class label, confidence in
// [0, 1], an oriented bounding box, and an optional mask. Detections are
// immutable.
//
// The label doubles as the "subclass tag" a track accumulates in its
// subclass multiset (see TrackableObject): trackable objects have no
// separate fine-grained subclass field, since nothing populates one from
// anything but the detection's own label.
type Detection struct {
	Label       string
	Confidence  float64
	BoundingBox Box
	Mask        Mask
}

// ScaledTo returns a copy of the detection with its bounding box scaled into
// the target coordinate frame.
func (d Detection) ScaledTo(target ScaleFactor) Detection {
	d.BoundingBox = d.BoundingBox.ScaleTo(target)
	return d
}

// Equal compares label, confidence, and bounding box (mask is excluded, per
// the geometry round-trip property which is stated "modulo mask equality").
func (d Detection) Equal(o Detection) bool {
	return d.Label == o.Label && d.Confidence == o.Confidence && d.BoundingBox.Equal(o.BoundingBox)
}

type detectionJSON struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Box        Box     `json:"box"`
	Mask       Mask    `json:"mask"`
}

func (d Detection) MarshalJSON() ([]byte, error) {
	return json.Marshal(detectionJSON{Label: d.Label, Confidence: d.Confidence, Box: d.BoundingBox, Mask: d.Mask})
}

func (d *Detection) UnmarshalJSON(data []byte) error {
	var raw detectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Label, d.Confidence, d.BoundingBox, d.Mask = raw.Label, raw.Confidence, raw.Box, raw.Mask
	return nil
}
