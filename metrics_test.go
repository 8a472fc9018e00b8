package modelvalidator

import (
	"sync"
	"testing"
	"time"
)

func TestMetrics_RecordValidation(t *testing.T) {
	m := NewMetrics()

	m.RecordValidation(10*time.Millisecond, true)
	m.RecordValidation(20*time.Millisecond, false)
	m.RecordValidation(30*time.Millisecond, true)

	if got := m.ValidationsTotal(); got != 3 {
		t.Errorf("ValidationsTotal() = %d; want 3", got)
	}
	if got := m.ValidationsValid(); got != 2 {
		t.Errorf("ValidationsValid() = %d; want 2", got)
	}
	if got := m.ValidationRate(); got < 0.66 || got > 0.67 {
		t.Errorf("ValidationRate() = %f; want ~0.667", got)
	}
	if got := m.MinValidationTime(); got != 10*time.Millisecond {
		t.Errorf("MinValidationTime() = %v; want 10ms", got)
	}
	if got := m.MaxValidationTime(); got != 30*time.Millisecond {
		t.Errorf("MaxValidationTime() = %v; want 30ms", got)
	}
	if got := m.AverageValidationTime(); got != 20*time.Millisecond {
		t.Errorf("AverageValidationTime() = %v; want 20ms", got)
	}
}

func TestMetrics_TraversalCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordNodeVisited()
	m.RecordNodeVisited()
	m.RecordRuleExecuted()
	m.RecordError()
	m.RecordCycleSkipped()

	if got := m.NodesVisited(); got != 2 {
		t.Errorf("NodesVisited() = %d; want 2", got)
	}
	if got := m.RulesExecuted(); got != 1 {
		t.Errorf("RulesExecuted() = %d; want 1", got)
	}
	if got := m.ErrorsTotal(); got != 1 {
		t.Errorf("ErrorsTotal() = %d; want 1", got)
	}
	if got := m.CyclesSkipped(); got != 1 {
		t.Errorf("CyclesSkipped() = %d; want 1", got)
	}
}

func TestMetrics_EmptyTimings(t *testing.T) {
	m := NewMetrics()

	if got := m.MinValidationTime(); got != 0 {
		t.Errorf("MinValidationTime() = %v with no samples; want 0", got)
	}
	if got := m.AverageValidationTime(); got != 0 {
		t.Errorf("AverageValidationTime() = %v with no samples; want 0", got)
	}
	if got := m.ValidationRate(); got != 0 {
		t.Errorf("ValidationRate() = %f with no samples; want 0", got)
	}
}

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordValidation(10*time.Millisecond, true)
	m.RecordNodeVisited()

	snap := m.Snapshot()

	if snap.ValidationsTotal != 1 {
		t.Errorf("Snapshot.ValidationsTotal = %d; want 1", snap.ValidationsTotal)
	}
	if snap.ValidationsValid != 1 {
		t.Errorf("Snapshot.ValidationsValid = %d; want 1", snap.ValidationsValid)
	}
	if snap.NodesVisited != 1 {
		t.Errorf("Snapshot.NodesVisited = %d; want 1", snap.NodesVisited)
	}
	if snap.MinValidationTimeNs != uint64(10*time.Millisecond) {
		t.Errorf("Snapshot.MinValidationTimeNs = %d; want %d", snap.MinValidationTimeNs, 10*time.Millisecond)
	}
	if snap.Timestamp.IsZero() {
		t.Error("Snapshot.Timestamp is zero")
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.RecordValidation(time.Millisecond, true)
	m.RecordNodeVisited()
	m.RecordError()

	m.Reset()

	if got := m.ValidationsTotal(); got != 0 {
		t.Errorf("ValidationsTotal() = %d after Reset; want 0", got)
	}
	if got := m.NodesVisited(); got != 0 {
		t.Errorf("NodesVisited() = %d after Reset; want 0", got)
	}
	if got := m.MinValidationTime(); got != 0 {
		t.Errorf("MinValidationTime() = %v after Reset; want 0", got)
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordValidation(time.Millisecond, true)
				m.RecordNodeVisited()
				m.RecordRuleExecuted()
			}
		}()
	}
	wg.Wait()

	if got := m.ValidationsTotal(); got != 1000 {
		t.Errorf("ValidationsTotal() = %d; want 1000", got)
	}
	if got := m.NodesVisited(); got != 1000 {
		t.Errorf("NodesVisited() = %d; want 1000", got)
	}
	if got := m.RulesExecuted(); got != 1000 {
		t.Errorf("RulesExecuted() = %d; want 1000", got)
	}
}
