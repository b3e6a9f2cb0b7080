package journal

import "time"

// Status is the outcome of one normalization run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Entry is one recorded run.
type Entry struct {
	ID          int64         `json:"id"`
	RunID       string        `json:"run_id"`
	Source      string        `json:"source"`
	Destination string        `json:"destination"`
	Format      string        `json:"format,omitempty"`
	Mode        string        `json:"mode,omitempty"`
	Width       int           `json:"width,omitempty"`
	Height      int           `json:"height,omitempty"`
	Bytes       int64         `json:"bytes,omitempty"`
	Checksum    string        `json:"checksum,omitempty"`
	Status      Status        `json:"status"`
	ErrorKind   string        `json:"error_kind,omitempty"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Succeeded reports whether the run wrote its destination.
func (e Entry) Succeeded() bool {
	return e.Status == StatusSucceeded
}
