// Package domain defines the core domain models for SnapReg.
package domain

import "fmt"

// Strategy is the closed set of snapshot selection strategies.
//
// The set is deliberately a tagged enum rather than string-keyed dispatch:
// an unknown strategy name is rejected when configuration is loaded and can
// never reach query time.
type Strategy int

const (
	// StrategyLatestOnly selects the single non-Archived entry with the
	// maximum snapshot date.
	StrategyLatestOnly Strategy = iota

	// StrategyBaselinePlusLatest selects the configured baseline date plus
	// the latest entry, de-duplicated.
	StrategyBaselinePlusLatest

	// StrategyAll selects every non-Archived snapshot, for backfills.
	StrategyAll
)

// Strategy wire names.
const (
	strategyNameLatestOnly         = "latest"
	strategyNameBaselinePlusLatest = "baseline-plus-latest"
	strategyNameAll                = "all"
)

// ParseStrategy parses a strategy name. Unknown names are a configuration
// error; callers must invoke this at configuration-load time.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case strategyNameLatestOnly:
		return StrategyLatestOnly, nil
	case strategyNameBaselinePlusLatest:
		return StrategyBaselinePlusLatest, nil
	case strategyNameAll:
		return StrategyAll, nil
	default:
		return 0, ErrUnknownStrategy.WithDetails(fmt.Sprintf("%q (want %s, %s or %s)",
			name, strategyNameLatestOnly, strategyNameBaselinePlusLatest, strategyNameAll))
	}
}

// String returns the strategy wire name.
func (s Strategy) String() string {
	switch s {
	case StrategyLatestOnly:
		return strategyNameLatestOnly
	case StrategyBaselinePlusLatest:
		return strategyNameBaselinePlusLatest
	case StrategyAll:
		return strategyNameAll
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Selection is a fully resolved strategy plus its parameters.
type Selection struct {
	Strategy Strategy

	// Baseline is the retained baseline date. Required by
	// StrategyBaselinePlusLatest, ignored by the others.
	Baseline Date
}

// Validate checks that required parameters are present.
func (s Selection) Validate() error {
	if s.Strategy == StrategyBaselinePlusLatest && s.Baseline.IsZero() {
		return ErrMissingArgument.WithDetails("baseline-plus-latest requires a baseline date")
	}
	return nil
}
