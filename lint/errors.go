package lint

import (
	"errors"
	"fmt"
)

var (
	ErrTargetRequired   = errors.New("lint: target is required")
	ErrRuleNameRequired = errors.New("lint: rule name is required")
	ErrDuplicateRule    = errors.New("lint: rule already registered")
	ErrLoaderRequired   = errors.New("lint: loader is required")
	ErrLintDisabled     = errors.New("lint: service disabled")
)

// FailedError signals that a report contains error-severity findings. The
// report travels with the error so CLI and command callers can render it.
type FailedError struct {
	Report *Report
}

func (e *FailedError) Error() string {
	if e == nil || e.Report == nil {
		return "lint: document failed"
	}
	errs, warnings := e.Report.Counts()
	return fmt.Sprintf("lint: %s failed with %d error(s), %d warning(s)", e.Report.Path, errs, warnings)
}
