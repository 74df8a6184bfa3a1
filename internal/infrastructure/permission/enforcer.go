package permission

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"servicedesk/internal/shared/logger"
)

// Resources and actions checked by the HTTP layer.
const (
	ResourceServiceRequest = "service_request"
	ResourceAttachment     = "attachment"
	ResourceProfile        = "profile"

	ActionCreate       = "create"
	ActionList         = "list"
	ActionRead         = "read"
	ActionUpdateStatus = "update_status"
	ActionDelete       = "delete"
	ActionDownload     = "download"
)

// roleModel grants actions to roles directly; users never get policies
// of their own.
const roleModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer backs the policy with the casbin_rule table, creating it if
// needed, and loads the stored rules.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(roleModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

// NewMemoryEnforcer keeps the policy in memory only.
func NewMemoryEnforcer(log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(roleModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (e *Enforcer) Enforce(role, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

// ReplacePolicies makes rules the whole rule set. Only the difference to
// the current set is written, rule by rule through the adapter, so a
// repeated call with the same rules writes nothing.
func (e *Enforcer) ReplacePolicies(rules [][]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := e.enforcer.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to read policies: %w", err)
	}

	stale := ruleDiff(current, rules)
	missing := ruleDiff(rules, current)

	if len(stale) > 0 {
		if _, err := e.enforcer.RemovePolicies(stale); err != nil {
			e.logger.Errorw("failed to remove policies", "error", err, "count", len(stale))
			return fmt.Errorf("failed to remove policies: %w", err)
		}
	}
	if len(missing) > 0 {
		if _, err := e.enforcer.AddPolicies(missing); err != nil {
			e.logger.Errorw("failed to add policies", "error", err, "count", len(missing))
			return fmt.Errorf("failed to add policies: %w", err)
		}
	}

	e.logger.Infow("policies replaced", "added", len(missing), "removed", len(stale))
	return nil
}

// ruleDiff returns the rules of a that are not in b.
func ruleDiff(a, b [][]string) [][]string {
	seen := make(map[string]struct{}, len(b))
	for _, rule := range b {
		seen[strings.Join(rule, "\x00")] = struct{}{}
	}
	var out [][]string
	for _, rule := range a {
		key := strings.Join(rule, "\x00")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, slices.Clone(rule))
	}
	return out
}

func (e *Enforcer) Policies() ([][]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.enforcer.GetPolicy()
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded successfully")
	return nil
}
