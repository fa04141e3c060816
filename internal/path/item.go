package path

// Status is the lifecycle state of a learning item.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusDone
)

// String returns the server's identifier for the status.
func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "IN_PROGRESS"
	case StatusDone:
		return "DONE"
	default:
		return "NOT_STARTED"
	}
}

// ParseStatus maps a server status string to a Status. Unrecognized
// values read as NOT_STARTED, the least privileged state.
func ParseStatus(s string) Status {
	switch s {
	case "IN_PROGRESS":
		return StatusInProgress
	case "DONE":
		return StatusDone
	default:
		return StatusNotStarted
	}
}

// Item is one learning-path entry for the current view session.
type Item struct {
	ID               int
	Title            string
	Skill            string
	MediaRef         string
	EstimatedMinutes int
	Status           Status
}
