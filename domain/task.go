package domain

import "time"

// Task statuses. The set is closed; anything else is rejected at the boundary.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task represents a user-owned activity item. UserID is the ownership key:
// every read and mutation is scoped by it.
type Task struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	Status         string     `json:"status"`
	ExpirationDate *time.Time `json:"expirationDate"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (t *Task) IsDone() bool {
	return t != nil && t.Status == StatusDone
}

// TaskPatch carries the fields explicitly present in an update request.
// A nil Title or Status means the field was absent (or empty, which is
// treated the same so a title can never be blanked). Description and
// ExpirationDate are clearable: the Set flag records presence, and a nil
// value with the flag raised means "clear".
type TaskPatch struct {
	Title             *string
	Description       *string
	DescriptionSet    bool
	Status            *string
	ExpirationDate    *time.Time
	ExpirationDateSet bool
}

// IsEmpty reports whether the patch carries no fields at all.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && !p.DescriptionSet && p.Status == nil && !p.ExpirationDateSet
}

// Apply merges the patch into t, leaving absent fields untouched. The server
// merges in SQL; this is used by clients to update a cached copy after a
// confirmed update.
func (p TaskPatch) Apply(t *Task) {
	if t == nil {
		return
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.DescriptionSet {
		t.Description = p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.ExpirationDateSet {
		t.ExpirationDate = p.ExpirationDate
	}
}
