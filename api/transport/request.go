package transport

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/taskhive/backend/domain"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TaskCreateRequest struct {
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	Status         string  `json:"status"`
	ExpirationDate string  `json:"expirationDate"`
}

// TaskUpdateRequest distinguishes absent fields from fields explicitly set to
// null: a missing key leaves the RawMessage nil, while an explicit null
// arrives as the literal "null". That distinction drives the partial-update
// merge.
type TaskUpdateRequest struct {
	Title          *string         `json:"title"`
	Description    json.RawMessage `json:"description"`
	Status         *string         `json:"status"`
	ExpirationDate json.RawMessage `json:"expirationDate"`
}

var nullLiteral = []byte("null")

// Patch converts the request into a domain patch, parsing the expiration
// date and resolving the absent/set/cleared states.
func (r TaskUpdateRequest) Patch() (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:  r.Title,
		Status: r.Status,
	}

	if len(r.Description) > 0 {
		patch.DescriptionSet = true
		if !bytes.Equal(r.Description, nullLiteral) {
			var s string
			if err := json.Unmarshal(r.Description, &s); err != nil {
				return domain.TaskPatch{}, domain.NewError(domain.ErrCodeInvalid, "Invalid payload")
			}
			patch.Description = &s
		}
	}

	if len(r.ExpirationDate) > 0 {
		patch.ExpirationDateSet = true
		if !bytes.Equal(r.ExpirationDate, nullLiteral) {
			var s string
			if err := json.Unmarshal(r.ExpirationDate, &s); err != nil {
				return domain.TaskPatch{}, domain.NewError(domain.ErrCodeInvalid, "Invalid payload")
			}
			parsed, err := ParseDate(s)
			if err != nil {
				return domain.TaskPatch{}, err
			}
			patch.ExpirationDate = parsed
		}
	}

	return patch, nil
}

// ParseDate parses an expiration date from the wire. Both full RFC 3339
// timestamps and bare dates are accepted; an empty string means "no date".
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	return nil, domain.NewError(domain.ErrCodeInvalid, "Invalid expiration date")
}
