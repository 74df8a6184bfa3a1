package valueobjects

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a service request. Deletion is not a
// status; a deleted request no longer exists.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// AllStatuses lists the statuses in their nominal order.
var AllStatuses = []Status{StatusPending, StatusInProgress, StatusResolved}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

func (s Status) IsPending() bool {
	return s == StatusPending
}

func ParseStatus(value string) (Status, error) {
	s := Status(strings.TrimSpace(value))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid status: %q", value)
	}
	return s, nil
}

// StatusChoices renders the valid values for error messages.
func StatusChoices() string {
	return joinChoices(AllStatuses)
}

func joinChoices[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, " ")
}
