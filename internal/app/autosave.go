package app

import "time"

// SaveStatus tracks where the document stands relative to its store.
type SaveStatus int

const (
	// StatusSaved means the store holds the current document content.
	StatusSaved SaveStatus = iota
	// StatusSaving means a write to the store is in flight or settling.
	StatusSaving
	// StatusUnsaved means the document changed since the last successful save.
	StatusUnsaved
)

func (s SaveStatus) String() string {
	switch s {
	case StatusSaved:
		return "saved"
	case StatusSaving:
		return "saving"
	case StatusUnsaved:
		return "unsaved"
	default:
		return "unknown"
	}
}

const (
	// saveDebounce is how long after the last change an autosave fires.
	saveDebounce = 800 * time.Millisecond
	// savedHold keeps the saving status visible briefly after a write, so
	// quick saves still register with the user.
	savedHold = 600 * time.Millisecond
)
