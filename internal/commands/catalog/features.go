package catalogcmd

// FeatureGates exposes runtime feature toggles required by catalog command
// handlers.
type FeatureGates struct {
	CatalogEnabled func() bool
}

func (g FeatureGates) catalogEnabled() bool {
	if g.CatalogEnabled == nil {
		return true
	}
	return g.CatalogEnabled()
}
