/*
Package dtrack implements a multi-object tracking engine for annotated video
streams.

Each frame arrives with a set of detections (class label, confidence,
oriented bounding box, optional mask). dtrack partitions detections and live
tracks by class, matches them with a pluggable distance function and a
greedy assignment, and mutates a host-owned map of persistent tracks:
matched tracks are updated in place, unmatched ones age toward retirement,
and leftover detections spawn new tracks.

# Basic usage

	cfg, err := tracking.NewConfig(tracking.Config{
		TrackedClasses:   []string{"car"},
		PredictorFactory: tracking.ConstantVelocityFactory{},
		TrackFactory:     tracking.DefaultObjectFactory{},
		DeleteAfter:      5,
		Distance:         tracking.EuclideanCentroid{},
		Threshold:        50,
	})

	tracks := map[string]dtrack.TrackableObject{}
	result, err := tracking.Update(cfg, tracks, detections, frameNumber, nil)

# Subpackages

  - tracking: the core matching algorithm, movement predictors, distance
    functions and the default trackable object.
  - pipeline: a declarative, named, ordered sequence of steps whose arguments
    are resolved from the per-frame context.
  - app: the per-stream harness that owns the track map across frames and
    drives the pipeline once per frame.

This package itself holds only the shared value types and interfaces
(Box, Detection, ScaleFactor, ApplicationContext, TrackableObject,
MovementPredictor) so the subpackages above can depend on it without forming
an import cycle among themselves.
*/
package dtrack
