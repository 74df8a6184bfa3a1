package permission

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"servicedesk/internal/shared/authorization"
	"servicedesk/internal/shared/logger"
)

// PolicyFile is the YAML document seeded into casbin:
//
//	roles:
//	  customer:
//	    service_request: [create, list, read, delete]
type PolicyFile struct {
	Roles map[string]map[string][]string `yaml:"roles"`
}

// LoadPolicyFile reads and validates a policy file.
func LoadPolicyFile(path string) (*PolicyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return ParsePolicyFile(data)
}

func ParsePolicyFile(data []byte) (*PolicyFile, error) {
	var file PolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}
	if len(file.Roles) == 0 {
		return nil, fmt.Errorf("policy file defines no roles")
	}
	for role := range file.Roles {
		if !authorization.UserRole(role).IsValid() {
			return nil, fmt.Errorf("policy file names unknown role %q", role)
		}
	}
	return &file, nil
}

// Rules flattens the file into sorted (role, resource, action) triples.
func (f *PolicyFile) Rules() [][]string {
	var rules [][]string
	for role, resources := range f.Roles {
		for resource, actions := range resources {
			for _, action := range actions {
				rules = append(rules, []string{role, resource, strings.TrimSpace(action)})
			}
		}
	}
	slices.SortFunc(rules, func(a, b []string) int {
		return strings.Compare(strings.Join(a, "/"), strings.Join(b, "/"))
	})
	return slices.CompactFunc(rules, slices.Equal)
}

// Seed replaces the enforcer's rules with the ones in file.
func Seed(e *Enforcer, file *PolicyFile, log logger.Interface) error {
	rules := file.Rules()
	if err := e.ReplacePolicies(rules); err != nil {
		return err
	}
	log.Infow("permission policies seeded", "count", len(rules))
	return nil
}
