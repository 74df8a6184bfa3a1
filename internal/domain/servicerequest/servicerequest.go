package servicerequest

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "servicedesk/internal/domain/servicerequest/valueobjects"
	"servicedesk/internal/shared/biztime"
	"servicedesk/internal/shared/id"
)

const (
	MinTitleLength       = 5
	MaxTitleLength       = 200
	MinDescriptionLength = 10
	MaxDescriptionLength = 5000
)

// ServiceRequest is the aggregate root of a customer's request for work.
// The customer and creation time never change; the support staff is set
// at most once.
type ServiceRequest struct {
	id             uint
	sid            string
	customerID     uint
	supportStaffID *uint
	title          string
	description    string
	serviceType    vo.ServiceType
	status         vo.Status
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	attachments    []*Attachment
	events         []any
}

// Draft is the unvalidated input for a new request.
type Draft struct {
	Title       string
	Description string
	ServiceType string
}

// Validate checks every field and reports all failures at once. Lengths
// are counted in characters after trimming surrounding whitespace.
func (d Draft) Validate() error {
	errs := FieldErrors{}

	title := strings.TrimSpace(d.Title)
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		errs.add("title", "this field is required")
	case n < MinTitleLength:
		errs.add("title", fmt.Sprintf("must be at least %d characters long", MinTitleLength))
	case n > MaxTitleLength:
		errs.add("title", fmt.Sprintf("must be at most %d characters long", MaxTitleLength))
	}

	description := strings.TrimSpace(d.Description)
	switch n := utf8.RuneCountInString(description); {
	case n == 0:
		errs.add("description", "this field is required")
	case n < MinDescriptionLength:
		errs.add("description", fmt.Sprintf("must be at least %d characters long", MinDescriptionLength))
	case n > MaxDescriptionLength:
		errs.add("description", fmt.Sprintf("must be at most %d characters long", MaxDescriptionLength))
	}

	if strings.TrimSpace(d.ServiceType) == "" {
		errs.add("service_type", "this field is required")
	} else if _, err := vo.ParseServiceType(d.ServiceType); err != nil {
		errs.add("service_type", fmt.Sprintf("must be one of [%s]", vo.ServiceTypeChoices()))
	}

	return errs.orNil()
}

// NewServiceRequest validates draft and returns a pending, unassigned
// request owned by customerID.
func NewServiceRequest(customerID uint, draft Draft) (*ServiceRequest, error) {
	if customerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	serviceType, _ := vo.ParseServiceType(draft.ServiceType)

	sid, err := id.NewServiceRequestID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate service request ID: %w", err)
	}

	now := biztime.NowUTC()
	sr := &ServiceRequest{
		sid:         sid,
		customerID:  customerID,
		title:       strings.TrimSpace(draft.Title),
		description: strings.TrimSpace(draft.Description),
		serviceType: serviceType,
		status:      vo.StatusPending,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
		attachments: []*Attachment{},
	}
	sr.recordEvent(ServiceRequestCreatedEvent{
		SID:         sid,
		CustomerID:  customerID,
		Title:       sr.title,
		ServiceType: serviceType.String(),
		Timestamp:   now,
	})
	return sr, nil
}

// ReconstructServiceRequest rebuilds a request from persistence.
func ReconstructServiceRequest(
	id uint,
	sid string,
	customerID uint,
	supportStaffID *uint,
	title string,
	description string,
	serviceType vo.ServiceType,
	status vo.Status,
	version int,
	createdAt, updatedAt time.Time,
) (*ServiceRequest, error) {
	if id == 0 {
		return nil, fmt.Errorf("service request ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("service request SID is required")
	}
	if !serviceType.IsValid() {
		return nil, fmt.Errorf("invalid service type: %s", serviceType)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &ServiceRequest{
		id:             id,
		sid:            sid,
		customerID:     customerID,
		supportStaffID: supportStaffID,
		title:          title,
		description:    description,
		serviceType:    serviceType,
		status:         status,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		attachments:    []*Attachment{},
	}, nil
}

func (s *ServiceRequest) ID() uint                    { return s.id }
func (s *ServiceRequest) SID() string                 { return s.sid }
func (s *ServiceRequest) CustomerID() uint            { return s.customerID }
func (s *ServiceRequest) SupportStaffID() *uint       { return s.supportStaffID }
func (s *ServiceRequest) Title() string               { return s.title }
func (s *ServiceRequest) Description() string         { return s.description }
func (s *ServiceRequest) ServiceType() vo.ServiceType { return s.serviceType }
func (s *ServiceRequest) Status() vo.Status           { return s.status }
func (s *ServiceRequest) Version() int                { return s.version }
func (s *ServiceRequest) CreatedAt() time.Time        { return s.createdAt }
func (s *ServiceRequest) UpdatedAt() time.Time        { return s.updatedAt }

func (s *ServiceRequest) Attachments() []*Attachment {
	out := make([]*Attachment, len(s.attachments))
	copy(out, s.attachments)
	return out
}

func (s *ServiceRequest) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("service request ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("service request ID cannot be zero")
	}
	s.id = id
	return nil
}

// SetAttachments replaces the loaded attachment list (persistence only).
func (s *ServiceRequest) SetAttachments(attachments []*Attachment) {
	s.attachments = append([]*Attachment{}, attachments...)
}

// AddAttachment attaches a's metadata to this request.
func (s *ServiceRequest) AddAttachment(a *Attachment) error {
	if a == nil {
		return fmt.Errorf("attachment cannot be nil")
	}
	if s.id != 0 && a.ServiceRequestID() != s.id {
		return fmt.Errorf("attachment belongs to another service request")
	}
	s.attachments = append(s.attachments, a)
	return nil
}

// IsAssigned reports whether a support staff member owns the request.
func (s *ServiceRequest) IsAssigned() bool {
	return s.supportStaffID != nil
}

func (s *ServiceRequest) IsOwnedBy(customerID uint) bool {
	return customerID != 0 && s.customerID == customerID
}

func (s *ServiceRequest) IsAssignedTo(staffID uint) bool {
	return staffID != 0 && s.supportStaffID != nil && *s.supportStaffID == staffID
}

// AssignTo sets the support staff. A request is never reassigned.
func (s *ServiceRequest) AssignTo(staffID uint) error {
	if staffID == 0 {
		return fmt.Errorf("support staff ID cannot be zero")
	}
	if s.supportStaffID != nil {
		return ErrAlreadyAssigned
	}

	s.supportStaffID = &staffID
	s.touch()
	s.recordEvent(ServiceRequestAssignedEvent{
		SID:            s.sid,
		SupportStaffID: staffID,
		Title:          s.title,
		Timestamp:      s.updatedAt,
	})
	return nil
}

// ChangeStatus moves the request to newStatus on behalf of actorID, who
// must be the assigned staff. Any valid status may follow any other;
// setting the current status again changes nothing and reports false.
func (s *ServiceRequest) ChangeStatus(newStatus vo.Status, actorID uint) (bool, error) {
	if !s.IsAssignedTo(actorID) {
		return false, ErrNotAssignee
	}
	if !newStatus.IsValid() {
		return false, fmt.Errorf("invalid status: %s", newStatus)
	}
	if s.status == newStatus {
		return false, nil
	}

	old := s.status
	s.status = newStatus
	s.touch()
	s.recordEvent(ServiceRequestStatusChangedEvent{
		SID:       s.sid,
		OldStatus: old.String(),
		NewStatus: newStatus.String(),
		ChangedBy: actorID,
		Timestamp: s.updatedAt,
	})
	return true, nil
}

// EnsureDeletableBy checks that customerID owns the request and that it
// is still pending.
func (s *ServiceRequest) EnsureDeletableBy(customerID uint) error {
	if !s.IsOwnedBy(customerID) {
		return ErrNotOwner
	}
	if !s.status.IsPending() {
		return ErrNotPending
	}
	return nil
}

// EnsureVisibleTo checks that customerID owns the request. Assigned staff
// have no read access through this path.
func (s *ServiceRequest) EnsureVisibleTo(customerID uint) error {
	if !s.IsOwnedBy(customerID) {
		return ErrNotOwner
	}
	return nil
}

// EnsureDownloadableBy checks that userID is the customer or the assigned
// staff of the request.
func (s *ServiceRequest) EnsureDownloadableBy(userID uint) error {
	if s.IsOwnedBy(userID) || s.IsAssignedTo(userID) {
		return nil
	}
	return ErrNotParticipant
}

// PullEvents returns recorded domain events and clears them.
func (s *ServiceRequest) PullEvents() []any {
	events := s.events
	s.events = nil
	return events
}

func (s *ServiceRequest) touch() {
	now := biztime.NowUTC()
	if !now.After(s.updatedAt) {
		now = s.updatedAt.Add(time.Millisecond)
	}
	s.updatedAt = now
	s.version++
}

func (s *ServiceRequest) recordEvent(e any) {
	s.events = append(s.events, e)
}
