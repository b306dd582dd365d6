package contentcmd

// FeatureGates exposes runtime feature toggles required by content command
// handlers. Callers should supply closures that read from the runtime
// configuration so handlers stay decoupled from it while honouring flags.
type FeatureGates struct {
	LintEnabled    func() bool
	SyncEnabled    func() bool
	CatalogEnabled func() bool
}

func (g FeatureGates) lintEnabled() bool {
	if g.LintEnabled == nil {
		return true
	}
	return g.LintEnabled()
}

func (g FeatureGates) syncEnabled() bool {
	if g.SyncEnabled == nil {
		return true
	}
	return g.SyncEnabled()
}

func (g FeatureGates) catalogEnabled() bool {
	if g.CatalogEnabled == nil {
		return true
	}
	return g.CatalogEnabled()
}
