package api

// TokenPair is the response to a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Employee is the profile record for one employee, rendered as-is.
type Employee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"tsr_role"`
}

// ProgressStep is one labelled step of the server's progress bar.
type ProgressStep struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

// Progress is the server-reported workflow position for one employee.
// CurrentStep is the authoritative value; the client never infers it.
type Progress struct {
	CurrentStep     string         `json:"current_step"`
	Steps           []ProgressStep `json:"steps"`
	ProgressPercent int            `json:"progress_percent"`
}

// Question is one generated assessment question.
type Question struct {
	ID      string   `json:"id"`
	Skill   string   `json:"skill"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// LearningItem is the wire form of one learning-path entry.
type LearningItem struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Skill          string  `json:"skill"`
	URL            string  `json:"url"`
	Thumbnail      string  `json:"thumbnail"`
	EstimatedHours float64 `json:"estimated_hours"`
	Status         string  `json:"status"`
}
