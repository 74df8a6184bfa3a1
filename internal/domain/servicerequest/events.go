package servicerequest

import "time"

type ServiceRequestCreatedEvent struct {
	SID         string
	CustomerID  uint
	Title       string
	ServiceType string
	Timestamp   time.Time
}

// ServiceRequestAssignedEvent is raised once, when staff is picked at
// creation time.
type ServiceRequestAssignedEvent struct {
	SID            string
	SupportStaffID uint
	Title          string
	Timestamp      time.Time
}

type ServiceRequestStatusChangedEvent struct {
	SID       string
	OldStatus string
	NewStatus string
	ChangedBy uint
	Timestamp time.Time
}
