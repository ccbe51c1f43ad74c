package notescmd

// FeatureGates exposes runtime feature toggles required by note command
// handlers. Callers should supply closures that read from the runtime
// configuration so handlers stay decoupled from it while honouring flags.
type FeatureGates struct {
	LintEnabled     func() bool
	ScaffoldEnabled func() bool
}

func (g FeatureGates) lintEnabled() bool {
	if g.LintEnabled == nil {
		return true
	}
	return g.LintEnabled()
}

func (g FeatureGates) scaffoldEnabled() bool {
	if g.ScaffoldEnabled == nil {
		return true
	}
	return g.ScaffoldEnabled()
}
