package servicerequest

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrNotOwner means the caller is not the customer who created the request.
	ErrNotOwner = errors.New("service request does not belong to caller")
	// ErrNotAssignee means the caller is not the staff member assigned to the request.
	ErrNotAssignee = errors.New("service request is not assigned to caller")
	// ErrNotParticipant means the caller is neither the customer nor the assigned staff.
	ErrNotParticipant = errors.New("caller is neither customer nor assigned staff")
	// ErrNotPending means the request has left the pending status and can no longer be deleted.
	ErrNotPending = errors.New("service request is not pending")
	// ErrAlreadyAssigned is returned when assigning a request that already has staff.
	ErrAlreadyAssigned = errors.New("service request is already assigned")

	// ErrFileMissing means attachment metadata exists but its blob is gone.
	ErrFileMissing = errors.New("attachment file is missing from storage")
)

// FieldErrors collects per-field validation messages keyed by wire name.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for _, k := range slices.Sorted(maps.Keys(f)) {
		parts = append(parts, k+": "+f[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (f FieldErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f FieldErrors) orNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

var (
	ErrBlobNotFound = errors.New("blob not found")
	ErrBlobExists   = errors.New("blob already exists")
)
