// Package service implements the governance operations of SnapReg.
package service

import (
	"context"
	"sort"
	"time"

	"github.com/datalode/snapreg/internal/core/domain"
)

// FreshnessStatus is the freshness assessment of one dataset.
type FreshnessStatus struct {
	Key          domain.Key
	SnapshotDate domain.Date
	Age          time.Duration
	Tier         domain.FreshnessTier
}

// Monitor computes snapshot age per dataset against freshness policy.
// Strictly read-only: it never mutates the registry.
type Monitor struct {
	repo     SnapshotQuerier
	policies map[string]domain.FreshnessPolicy
	now      func() time.Time
}

// MonitorOption configures the Monitor.
type MonitorOption func(*Monitor)

// WithMonitorClock overrides the time source. For tests.
func WithMonitorClock(now func() time.Time) MonitorOption {
	return func(m *Monitor) {
		m.now = now
	}
}

// NewMonitor creates a Monitor with per-source freshness policies.
func NewMonitor(repo SnapshotQuerier, policies map[string]domain.FreshnessPolicy, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		repo:     repo,
		policies: policies,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Assess classifies every dataset holding a Current entry. With sources
// given, only datasets of those sources are assessed. Results are ordered
// by source then dataset.
func (m *Monitor) Assess(ctx context.Context, sources ...string) ([]FreshnessStatus, error) {
	entries, err := m.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	now := m.now()
	var out []FreshnessStatus
	for _, e := range entries {
		if e.Status != domain.StatusCurrent {
			continue
		}
		if len(sources) > 0 && !stringIn(e.Source, sources) {
			continue
		}

		policy, ok := m.policies[e.Source]
		if !ok {
			return nil, domain.ErrMissingPolicy.WithDetails("freshness policy for source " + e.Source)
		}

		age := e.SnapshotDate.Age(now)
		out = append(out, FreshnessStatus{
			Key:          e.DatasetKey(),
			SnapshotDate: e.SnapshotDate,
			Age:          age,
			Tier:         policy.Classify(age),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Source != out[j].Key.Source {
			return out[i].Key.Source < out[j].Key.Source
		}
		return out[i].Key.Dataset < out[j].Key.Dataset
	})
	return out, nil
}

func stringIn(s string, set []string) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}
