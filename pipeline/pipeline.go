// Package pipeline implements the declarative pipeline harness: a named
// ordered sequence of steps, each invoked with arguments resolved from the
// current per-frame context.
package pipeline

import "github.com/declanatkins/dtrack"

// StepFunc is a step's unit of work. It receives the context (so the
// built-in tracking step can mutate it via ContextResolver) and the values
// resolved for its declared Resolvers, in order.
type StepFunc func(ctx *dtrack.ApplicationContext, args []any) (any, error)

// Step is a named unit of per-frame work.
type Step struct {
	Name      string
	Resolvers []Resolver
	Func      StepFunc
}

// Pipeline is a named ordered sequence of Steps. Steps run strictly
// sequentially; later steps observe earlier steps' mutations to the context
// and can read their results.
type Pipeline struct {
	Name  string
	Steps []Step
}

// Run executes every step in order against ctx, storing each step's return
// value in ctx.StepResults under its name. It stops and returns the first
// error encountered (a resolver's ContractError or the step function's own
// error), leaving ctx.StepResults containing only the steps that completed.
func (p Pipeline) Run(ctx *dtrack.ApplicationContext) error {
	if ctx.StepResults == nil {
		ctx.StepResults = map[string]any{}
	}
	for _, step := range p.Steps {
		args := make([]any, len(step.Resolvers))
		for i, r := range step.Resolvers {
			v, err := r.Resolve(ctx)
			if err != nil {
				return err
			}
			args[i] = v
		}
		result, err := step.Func(ctx, args)
		if err != nil {
			return err
		}
		ctx.StepResults[step.Name] = result
	}
	return nil
}
