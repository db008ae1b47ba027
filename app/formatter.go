package app

import "github.com/declanatkins/dtrack"

// FrameResult is the per-frame output record: frame number, emit-time
// timestamp, every step's result keyed by step name, and a snapshot of the
// long-lived tracking-attribute map.
type FrameResult struct {
	FrameNumber         int
	FrameTimestamp      int64
	PipelineStepResults map[string]any
	TrackingAttributes  map[string]any
}

// ResultFormatter turns a completed frame's context into the record handed
// back to the caller.
type ResultFormatter interface {
	Format(ctx *dtrack.ApplicationContext, timestamp int64) FrameResult
}

// DefaultFormatter produces exactly {frame_number, frame_timestamp,
// pipeline_step_results, tracking_attributes}.
type DefaultFormatter struct{}

func (DefaultFormatter) Format(ctx *dtrack.ApplicationContext, timestamp int64) FrameResult {
	stepResults := make(map[string]any, len(ctx.StepResults))
	for k, v := range ctx.StepResults {
		stepResults[k] = v
	}
	attrs := make(map[string]any, len(ctx.Attributes))
	for k, v := range ctx.Attributes {
		attrs[k] = v
	}
	return FrameResult{
		FrameNumber:         ctx.FrameNumber,
		FrameTimestamp:      timestamp,
		PipelineStepResults: stepResults,
		TrackingAttributes:  attrs,
	}
}
