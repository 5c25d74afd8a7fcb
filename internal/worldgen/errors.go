package worldgen

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pipeline's error taxonomy. ErrInvariant and
// ErrRulesetInconsistency abort generation; ErrInsufficientFit aborts after
// reporting what was requested versus delivered.
var (
	ErrInvariant            = errors.New("worldgen: invariant violation")
	ErrInsufficientFit      = errors.New("worldgen: insufficient fit")
	ErrRulesetInconsistency = errors.New("worldgen: ruleset inconsistency")
)

// InvariantError wraps ErrInvariant with the offending detail.
func InvariantError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}

// InsufficientFitError reports a quota the pipeline could not satisfy.
func InsufficientFitError(what string, requested, delivered int) error {
	return fmt.Errorf("%w: %s: requested %d, delivered %d", ErrInsufficientFit, what, requested, delivered)
}

// RulesetInconsistencyError reports an unresolved ruleset reference.
func RulesetInconsistencyError(what, name string) error {
	return fmt.Errorf("%w: %s %q", ErrRulesetInconsistency, what, name)
}

// DegradedPlacement is a non-fatal warning: a pass fell back to a documented
// degraded strategy. Callers log it through the progress reporter rather
// than treating it as an error.
type DegradedPlacement struct {
	Stage  string
	Detail string
}

func (d DegradedPlacement) String() string {
	return fmt.Sprintf("%s: %s", d.Stage, d.Detail)
}
