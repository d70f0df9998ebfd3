package dto

type SettingsOutput struct {
	FeedbackEnabled bool
	Patterns        map[string][]int
	ExportPrefix    string
	NoteSuffixRunes int
}

// UpdateInput is a partial update; nil fields keep their current value.
type UpdateInput struct {
	FeedbackEnabled *bool
	Patterns        map[string][]int
	ExportPrefix    *string
	NoteSuffixRunes *int
}
