// Package app provides the per-stream application harness: it owns the live
// track map and the tracking-attribute map across frames, and drives the
// pipeline once per frame.
package app

import (
	"fmt"
	"time"

	"github.com/declanatkins/dtrack"
	"github.com/declanatkins/dtrack/pipeline"
	"github.com/declanatkins/dtrack/tracking"
	"go.uber.org/zap"
)

// Config configures an Application at construction. Exactly one of
// TrackedClass / TrackedClasses must be given.
type Config struct {
	TrackedClass   string
	TrackedClasses []string

	TrackFactory     any
	PredictorFactory any
	DeleteAfter      any

	Distance  dtrack.DistanceAlgorithm
	Threshold float64

	Formatter ResultFormatter
	Logger    *zap.Logger
}

// Application is the per-stream harness. It is not safe for concurrent use:
// frames are processed strictly sequentially, matching the core's
// single-threaded scheduling model.
type Application struct {
	tracking  *tracking.ResolvedConfig
	formatter ResultFormatter
	logger    *zap.Logger

	pipeline pipeline.Pipeline

	tracks      map[string]dtrack.TrackableObject
	attributes  map[string]any
	attrNames   []string
	frameNumber int
}

// New validates cfg and constructs an Application that will run p once per
// frame.
func New(cfg Config, p pipeline.Pipeline) (*Application, error) {
	classes, err := resolveClasses(cfg.TrackedClass, cfg.TrackedClasses)
	if err != nil {
		return nil, err
	}

	resolved, err := tracking.NewConfig(tracking.Config{
		TrackedClasses:   classes,
		TrackFactory:     cfg.TrackFactory,
		PredictorFactory: cfg.PredictorFactory,
		DeleteAfter:      cfg.DeleteAfter,
		Distance:         cfg.Distance,
		Threshold:        cfg.Threshold,
	})
	if err != nil {
		return nil, err
	}

	formatter := cfg.Formatter
	if formatter == nil {
		formatter = DefaultFormatter{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Application{
		tracking:   resolved,
		formatter:  formatter,
		logger:     logger,
		pipeline:   p,
		tracks:     map[string]dtrack.TrackableObject{},
		attributes: map[string]any{},
	}, nil
}

func resolveClasses(single string, many []string) ([]string, error) {
	switch {
	case single != "" && len(many) > 0:
		return nil, &dtrack.ConfigError{Msg: "both tracked_class and tracked_classes were given; exactly one is required"}
	case single == "" && len(many) == 0:
		return nil, &dtrack.ConfigError{Msg: "neither tracked_class nor tracked_classes was given; exactly one is required"}
	case single != "":
		return []string{single}, nil
	default:
		return append([]string(nil), many...), nil
	}
}

// RegisterAttribute adds name to the tracking-attribute registry with an
// initial value. Fails if name is already registered.
func (a *Application) RegisterAttribute(name string, initial any) error {
	if _, ok := a.attributes[name]; ok {
		return &dtrack.ConfigError{Msg: fmt.Sprintf("tracking attribute %q is already registered", name)}
	}
	a.attributes[name] = initial
	a.attrNames = append(a.attrNames, name)
	return nil
}

// GetAttribute reads a registered attribute. Fails if name was never
// registered.
func (a *Application) GetAttribute(name string) (any, error) {
	v, ok := a.attributes[name]
	if !ok {
		return nil, &dtrack.ContractError{Msg: fmt.Sprintf("tracking attribute %q is not registered", name)}
	}
	return v, nil
}

// SetAttribute writes a registered attribute. Fails if name was never
// registered.
func (a *Application) SetAttribute(name string, value any) error {
	if _, ok := a.attributes[name]; !ok {
		return &dtrack.ContractError{Msg: fmt.Sprintf("tracking attribute %q is not registered", name)}
	}
	a.attributes[name] = value
	return nil
}

// ProcessFrame runs one frame: it constructs a fresh context over a clone of
// the persistent track map, runs the pipeline, and on success commits the
// clone back and advances the frame counter. On a contract error the clone
// is discarded, the track map and frame counter are left exactly as they
// were before the call, and no result is emitted — the atomicity-on-abort
// property.
func (a *Application) ProcessFrame(image dtrack.Image) (FrameResult, error) {
	working := make(map[string]dtrack.TrackableObject, len(a.tracks))
	for k, t := range a.tracks {
		working[k] = t.Clone()
	}

	ctx := &dtrack.ApplicationContext{
		Image:                    image,
		FrameNumber:              a.frameNumber,
		Tracks:                   working,
		StepResults:              map[string]any{},
		DeletedObjects:           map[string]dtrack.TrackableObject{},
		TrackTypeFactory:         a.tracking.TrackFactory,
		PredictorFactory:         a.tracking.PredictorFactory,
		DeleteAfter:              a.tracking.DeleteAfter,
		ActiveClasses:            a.tracking.ActiveClasses,
		Distance:                 a.tracking.Distance,
		Threshold:                a.tracking.Threshold,
		Attributes:               a.attributes,
		RegisteredAttributeNames: a.attrNames,
	}

	if err := a.pipeline.Run(ctx); err != nil {
		a.logger.Warn("frame aborted", zap.Int("frame_number", a.frameNumber), zap.Error(err))
		return FrameResult{}, err
	}

	a.tracks = ctx.Tracks
	a.frameNumber++

	for _, k := range ctx.New {
		a.logger.Debug("track spawned", zap.String("key", k))
	}
	for k := range ctx.DeletedObjects {
		a.logger.Debug("track retired", zap.String("key", k))
	}

	return a.formatter.Format(ctx, time.Now().UnixNano()), nil
}

// NewTrackingStep builds the built-in tracking step for embedding in a
// caller-assembled pipeline.Pipeline. name is the step's name under which
// its tracking.Result is stored in the context's step-results map.
func NewTrackingStep(name string) pipeline.Step {
	return pipeline.Step{
		Name:      name,
		Resolvers: []pipeline.Resolver{pipeline.ContextResolver()},
		Func: func(ctx *dtrack.ApplicationContext, args []any) (any, error) {
			attrNames := ctx.RegisteredAttributeNames
			cfg := &tracking.ResolvedConfig{
				ActiveClasses:    ctx.ActiveClasses,
				TrackFactory:     ctx.TrackTypeFactory,
				PredictorFactory: ctx.PredictorFactory,
				DeleteAfter:      ctx.DeleteAfter,
				Distance:         ctx.Distance,
				Threshold:        ctx.Threshold,
			}
			result, err := tracking.Update(cfg, ctx.Tracks, ctx.Detections, ctx.FrameNumber, attrNames)
			if err != nil {
				return nil, err
			}
			ctx.Matched = result.Matched
			ctx.Unmatched = result.Unmatched
			ctx.New = result.New
			ctx.Deleted = result.Deleted
			ctx.DeletedObjects = result.DeletedObjects
			return result, nil
		},
	}
}
