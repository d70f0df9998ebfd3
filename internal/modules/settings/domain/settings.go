package domain

// Settings are the operator-tunable values persisted under the settings
// storage key. FeedbackEnabled is a pointer so a hand-edited file that
// omits the key keeps the default instead of silently muting feedback.
type Settings struct {
	FeedbackEnabled *bool            `json:"feedbackEnabled"`
	Patterns        map[string][]int `json:"patterns,omitempty"`
	ExportPrefix    string           `json:"exportPrefix"`
	NoteSuffixRunes int              `json:"noteSuffixRunes"`
}

func Defaults() Settings {
	enabled := true
	return Settings{
		FeedbackEnabled: &enabled,
		ExportPrefix:    "passby",
		NoteSuffixRunes: 20,
	}
}

// Enabled treats an absent flag as on.
func (s Settings) Enabled() bool {
	return s.FeedbackEnabled == nil || *s.FeedbackEnabled
}

// Normalize fills holes left by older or hand-edited settings files.
func (s Settings) Normalize() Settings {
	if s.FeedbackEnabled == nil {
		enabled := true
		s.FeedbackEnabled = &enabled
	}
	if s.ExportPrefix == "" {
		s.ExportPrefix = "passby"
	}
	if s.NoteSuffixRunes <= 0 {
		s.NoteSuffixRunes = 20
	}
	return s
}
