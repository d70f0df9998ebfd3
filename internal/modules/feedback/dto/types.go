package dto

// EmitInput requests one feedback event. Pattern, when non-nil, overrides
// the configured pattern for the kind.
type EmitInput struct {
	Kind    string
	Pattern []int
}

// ConfigureInput re-applies feedback configuration, typically after a
// settings reload.
type ConfigureInput struct {
	Enabled  bool
	Patterns map[string][]int
}
