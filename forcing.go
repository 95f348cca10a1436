package complety

// Force decides whether the provider can be made to call the completion tool
// deterministically. Forcing requires a provider family with tool-choice
// support and an empty auxiliary tool set: pinning the completion tool while
// other tools are attached would stop the model from ever using them.
//
// When forcible, the returned config is a copy with ToolChoice pinned to the
// completion tool; the caller's config is never written. Otherwise the config
// comes back unchanged and the description text plus the run ceiling are the
// only stopping mechanism.
func Force(cfg ModelConfig, aux []Tool) (ModelConfig, bool) {
	if !cfg.Provider.SupportsToolChoice() || len(aux) > 0 {
		return cfg, false
	}
	forced := cfg
	forced.ToolChoice = ToolName
	return forced, true
}
