package dto

// ExportOutput reports where an export landed.
type ExportOutput struct {
	Filename   string
	Path       string
	EntryCount int
}
