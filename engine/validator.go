// Package engine provides the top-level object graph validation engine.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	mv "github.com/gomodel/validator"
	"github.com/gomodel/validator/pkg/logger"
	"github.com/gomodel/validator/resolver"
	"github.com/gomodel/validator/shape"
	"github.com/gomodel/validator/walker"
)

// Validator coordinates rule resolution, graph traversal, and metrics for
// any number of validation calls. It is safe for concurrent use; each call
// gets its own visitor and state.
type Validator struct {
	options *mv.Options
	rules   *resolver.Cache
	metrics *mv.Metrics
	log     *logger.Logger

	// Worker pool for batch validation
	workerPool     chan struct{}
	workerPoolOnce sync.Once
}

// New creates a Validator with the given options and a fresh rule cache.
func New(opts ...mv.Option) *Validator {
	options := mv.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	log := options.Logger
	if log == nil {
		log = logger.Default()
	}

	return &Validator{
		options: options,
		rules:   resolver.New(),
		metrics: mv.NewMetrics(),
		log:     log,
	}
}

// Rules returns the validator's rule cache, for sharing with a flat
// facade or a custom visitor.
func (v *Validator) Rules() *resolver.Cache {
	return v.rules
}

// Validate validates the graph rooted at model against d and returns the
// populated state dictionary. Validity is read off the dictionary; the
// error reports usage problems or cancellation only.
func (v *Validator) Validate(ctx context.Context, d *shape.Descriptor, model any) (*mv.StateDictionary, error) {
	state := mv.NewStateDictionary(v.options.MaxErrors)
	_, err := v.ValidateGraph(ctx, state, nil, "", d, model, nil)
	return state, err
}

// ValidateGraph validates the graph rooted at model against d, recording
// outcomes into state under prefix. overrides may be nil; container, when
// non-nil, is the object owning the root value. It is the binder-facing
// entry point: callers that seeded state with raw values pass the prefix
// those values were recorded under.
func (v *Validator) ValidateGraph(ctx context.Context, state *mv.StateDictionary, overrides *walker.StateOverrides, prefix string, d *shape.Descriptor, model any, container any) (bool, error) {
	start := time.Now()

	var metrics *mv.Metrics
	if v.options.CollectMetrics {
		metrics = v.metrics
	}

	visitor := walker.NewGraphVisitor(state, v.rules, overrides, walker.Config{
		MaxDepth:                      v.options.MaxDepth,
		ValidateParentsOnChildFailure: v.options.ValidateParentsOnChildFailure,
		Metrics:                       metrics,
	})

	valid, err := visitor.ValidateRoot(ctx, d, prefix, model, false, container)
	if err != nil {
		v.log.Debug("validation aborted at %q: %v", prefix, err)
		if v.options.CollectMetrics {
			v.metrics.RecordValidation(time.Since(start), false)
		}
		return false, err
	}

	if v.options.CollectMetrics {
		v.metrics.RecordValidation(time.Since(start), valid)
	}
	return valid, nil
}

// BatchItem is one independent root to validate.
type BatchItem struct {
	Shape *shape.Descriptor
	Model any
}

// BatchResult correlates one BatchItem's outcome with a job ID.
type BatchResult struct {
	JobID string
	State *mv.StateDictionary
	Valid bool
	Err   error
}

// ValidateBatch validates the items concurrently, one visitor and state
// dictionary per item, bounded by the configured worker count. Results are
// returned in input order.
func (v *Validator) ValidateBatch(ctx context.Context, items []BatchItem) []BatchResult {
	results := make([]BatchResult, len(items))

	// Initialize worker pool if needed
	v.workerPoolOnce.Do(func() {
		workers := v.options.WorkerCount
		if workers <= 0 {
			workers = 4
		}
		v.workerPool = make(chan struct{}, workers)
	})

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(idx int, it BatchItem) {
			defer wg.Done()

			// Acquire worker slot
			v.workerPool <- struct{}{}
			defer func() { <-v.workerPool }()

			jobID := uuid.NewString()
			state, err := v.Validate(ctx, it.Shape, it.Model)
			if err != nil {
				v.log.Warn("batch job %s failed: %v", jobID, err)
			}
			results[idx] = BatchResult{
				JobID: jobID,
				State: state,
				Valid: err == nil && state.IsValid(),
				Err:   err,
			}
		}(i, item)
	}

	wg.Wait()
	return results
}

// Metrics returns the validator's metrics.
func (v *Validator) Metrics() *mv.Metrics {
	return v.metrics
}

// Options returns the validator's options.
func (v *Validator) Options() *mv.Options {
	return v.options
}
