package lint

import publiclint "github.com/goliatone/go-relnotes/lint"

type (
	Severity    = publiclint.Severity
	Finding     = publiclint.Finding
	Report      = publiclint.Report
	Target      = publiclint.Target
	Rule        = publiclint.Rule
	Service     = publiclint.Service
	FailedError = publiclint.FailedError
)

const (
	SeverityError   = publiclint.SeverityError
	SeverityWarning = publiclint.SeverityWarning
)

var (
	ErrTargetRequired   = publiclint.ErrTargetRequired
	ErrRuleNameRequired = publiclint.ErrRuleNameRequired
	ErrDuplicateRule    = publiclint.ErrDuplicateRule
	ErrLoaderRequired   = publiclint.ErrLoaderRequired
	ErrLintDisabled     = publiclint.ErrLintDisabled
)
