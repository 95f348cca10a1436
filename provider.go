package complety

// Provider identifies a model provider family. The set is closed: behavior
// differences are expressed as capability flags looked up here, never by
// matching on implementation type names.
type Provider string

// Supported provider families.
const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
	ProviderMistral   Provider = "mistral"
	ProviderOllama    Provider = "ollama"
)

// capabilities are the per-family behavior flags complety cares about.
type capabilities struct {
	// relaxedSchema marks families that reject strict nested object schemas
	// in tool parameters; they get a permissive placeholder instead and all
	// shape checking moves to runtime casting.
	relaxedSchema bool
	// toolChoice marks families whose API can pin the next tool call to a
	// specific tool deterministically.
	toolChoice bool
}

var providerCaps = map[Provider]capabilities{
	ProviderOpenAI:    {toolChoice: true},
	ProviderAnthropic: {toolChoice: true},
	ProviderGoogle:    {relaxedSchema: true},
	ProviderMistral:   {toolChoice: true},
	ProviderOllama:    {},
}

// RequiresRelaxedSchema reports whether the family must receive an
// unconstrained object schema for the completion tool parameters.
// Unknown families get the strict treatment.
func (p Provider) RequiresRelaxedSchema() bool {
	return providerCaps[p].relaxedSchema
}

// SupportsToolChoice reports whether the family can be forced to call a
// specific tool on its next turn.
func (p Provider) SupportsToolChoice() bool {
	return providerCaps[p].toolChoice
}

// ModelConfig identifies the provider and model for one invocation.
// It is read-only to complety; forcing derives a copy (see Force).
type ModelConfig struct {
	Provider Provider
	Model    string
	// ToolChoice pins the tool the model must call on its next turn.
	// Empty means the model chooses freely.
	ToolChoice string
}
