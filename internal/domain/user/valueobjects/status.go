package valueobjects

// Status is the account state. Only active users can log in or be assigned
// service requests.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

func (s Status) IsActive() bool {
	return s == StatusActive
}
