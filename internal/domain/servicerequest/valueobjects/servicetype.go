package valueobjects

import (
	"fmt"
	"strings"
)

// ServiceType is the kind of work a customer asks for. It has no default.
type ServiceType string

const (
	ServiceTypeInstallation ServiceType = "installation"
	ServiceTypeMaintenance  ServiceType = "maintenance"
	ServiceTypeRepair       ServiceType = "repair"
)

var AllServiceTypes = []ServiceType{
	ServiceTypeInstallation,
	ServiceTypeMaintenance,
	ServiceTypeRepair,
}

func (t ServiceType) String() string {
	return string(t)
}

func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceTypeInstallation, ServiceTypeMaintenance, ServiceTypeRepair:
		return true
	}
	return false
}

func ParseServiceType(value string) (ServiceType, error) {
	t := ServiceType(strings.TrimSpace(value))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid service type: %q", value)
	}
	return t, nil
}

func ServiceTypeChoices() string {
	return joinChoices(AllServiceTypes)
}
