package modelvalidator

import (
	"sync/atomic"
	"time"
)

// Metrics tracks validation performance using lock-free atomic operations.
// All methods are safe for concurrent use.
type Metrics struct {
	// Validation counts
	validationsTotal atomic.Uint64
	validationsValid atomic.Uint64

	// Timing (stored as nanoseconds)
	validationTimeTotal atomic.Uint64
	validationTimeMin   atomic.Uint64
	validationTimeMax   atomic.Uint64

	// Traversal counts
	nodesVisited  atomic.Uint64
	rulesExecuted atomic.Uint64
	errorsTotal   atomic.Uint64
	cyclesSkipped atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Initialize min to max uint64 so the first value becomes the minimum.
	m.validationTimeMin.Store(^uint64(0))
	return m
}

// RecordValidation records a completed top-level validation.
func (m *Metrics) RecordValidation(duration time.Duration, valid bool) {
	m.validationsTotal.Add(1)
	if valid {
		m.validationsValid.Add(1)
	}

	ns := uint64(duration.Nanoseconds())
	m.validationTimeTotal.Add(ns)

	// Update min (CAS loop)
	for {
		old := m.validationTimeMin.Load()
		if ns >= old {
			break
		}
		if m.validationTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}

	// Update max (CAS loop)
	for {
		old := m.validationTimeMax.Load()
		if ns <= old {
			break
		}
		if m.validationTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordNodeVisited records one node visited by the graph visitor.
func (m *Metrics) RecordNodeVisited() {
	m.nodesVisited.Add(1)
}

// RecordRuleExecuted records one rule invocation.
func (m *Metrics) RecordRuleExecuted() {
	m.rulesExecuted.Add(1)
}

// RecordError records one validation error funneled into the sink.
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// RecordCycleSkipped records a subtree short-circuited by cycle detection.
func (m *Metrics) RecordCycleSkipped() {
	m.cyclesSkipped.Add(1)
}

// ValidationsTotal returns the total number of validations performed.
func (m *Metrics) ValidationsTotal() uint64 {
	return m.validationsTotal.Load()
}

// ValidationsValid returns the number of validations with a valid outcome.
func (m *Metrics) ValidationsValid() uint64 {
	return m.validationsValid.Load()
}

// ValidationRate returns the fraction of valid validations (0.0 to 1.0).
func (m *Metrics) ValidationRate() float64 {
	total := m.validationsTotal.Load()
	if total == 0 {
		return 0
	}
	return float64(m.validationsValid.Load()) / float64(total)
}

// NodesVisited returns the total number of graph nodes visited.
func (m *Metrics) NodesVisited() uint64 {
	return m.nodesVisited.Load()
}

// RulesExecuted returns the total number of rule invocations.
func (m *Metrics) RulesExecuted() uint64 {
	return m.rulesExecuted.Load()
}

// ErrorsTotal returns the total number of recorded validation errors.
func (m *Metrics) ErrorsTotal() uint64 {
	return m.errorsTotal.Load()
}

// CyclesSkipped returns the number of cycle-detected subtrees.
func (m *Metrics) CyclesSkipped() uint64 {
	return m.cyclesSkipped.Load()
}

// AverageValidationTime returns the average validation duration.
func (m *Metrics) AverageValidationTime() time.Duration {
	total := m.validationsTotal.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.validationTimeTotal.Load() / total)
}

// MinValidationTime returns the minimum validation duration.
func (m *Metrics) MinValidationTime() time.Duration {
	minVal := m.validationTimeMin.Load()
	if minVal == ^uint64(0) {
		return 0
	}
	return time.Duration(minVal)
}

// MaxValidationTime returns the maximum validation duration.
func (m *Metrics) MaxValidationTime() time.Duration {
	return time.Duration(m.validationTimeMax.Load())
}

// Snapshot represents a point-in-time snapshot of all metrics.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`

	ValidationsTotal uint64  `json:"validations_total"`
	ValidationsValid uint64  `json:"validations_valid"`
	ValidationRate   float64 `json:"validation_rate"`

	AvgValidationTimeNs uint64 `json:"avg_validation_time_ns"`
	MinValidationTimeNs uint64 `json:"min_validation_time_ns"`
	MaxValidationTimeNs uint64 `json:"max_validation_time_ns"`

	NodesVisited  uint64 `json:"nodes_visited"`
	RulesExecuted uint64 `json:"rules_executed"`
	ErrorsTotal   uint64 `json:"errors_total"`
	CyclesSkipped uint64 `json:"cycles_skipped"`
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	total := m.validationsTotal.Load()

	var avgTime, validationRate float64
	if total > 0 {
		avgTime = float64(m.validationTimeTotal.Load()) / float64(total)
		validationRate = float64(m.validationsValid.Load()) / float64(total)
	}

	minTime := m.validationTimeMin.Load()
	if minTime == ^uint64(0) {
		minTime = 0
	}

	return Snapshot{
		Timestamp:           time.Now(),
		ValidationsTotal:    total,
		ValidationsValid:    m.validationsValid.Load(),
		ValidationRate:      validationRate,
		AvgValidationTimeNs: uint64(avgTime),
		MinValidationTimeNs: minTime,
		MaxValidationTimeNs: m.validationTimeMax.Load(),
		NodesVisited:        m.nodesVisited.Load(),
		RulesExecuted:       m.rulesExecuted.Load(),
		ErrorsTotal:         m.errorsTotal.Load(),
		CyclesSkipped:       m.cyclesSkipped.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.validationsTotal.Store(0)
	m.validationsValid.Store(0)
	m.validationTimeTotal.Store(0)
	m.validationTimeMin.Store(^uint64(0))
	m.validationTimeMax.Store(0)
	m.nodesVisited.Store(0)
	m.rulesExecuted.Store(0)
	m.errorsTotal.Store(0)
	m.cyclesSkipped.Store(0)
}
