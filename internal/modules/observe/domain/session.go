package domain

import (
	"fmt"
	"time"
)

// Phase is the recording lifecycle state.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSetup     Phase = "setup"
	PhaseRecording Phase = "recording"
	PhaseFinishing Phase = "finishing"
)

func (p Phase) Validate() error {
	switch p {
	case PhaseIdle, PhaseSetup, PhaseRecording, PhaseFinishing:
		return nil
	default:
		return fmt.Errorf("unknown phase %q", string(p))
	}
}

// SessionInfo is the metadata of the active session. Location and note are
// deliberately kept across a cancelled-then-restarted setup; only archiving
// resets them.
type SessionInfo struct {
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Location  string     `json:"location"`
	Note      string     `json:"note"`
}

func (s SessionInfo) Empty() bool {
	return s.StartedAt == nil && s.EndedAt == nil && s.Location == "" && s.Note == ""
}
