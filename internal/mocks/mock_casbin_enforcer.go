package mocks

import (
	"regexp"
	"strings"

	"github.com/you/assetsvc/domain"
)

// MockCasbinEnforcer implements the CasbinEnforcer interface for testing
type MockCasbinEnforcer struct {
	AddPolicyFunc  func(params ...interface{}) (bool, error)
	EnforceFunc    func(rvals ...interface{}) (bool, error)
	GetPolicyFunc  func() ([][]string, error)
	SavePolicyFunc func() error
	policies       [][]string
}

// Compile-time interface compliance verification
var _ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)

// NewMockCasbinEnforcer creates a new MockCasbinEnforcer seeded with the asset policies
func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{
		policies: [][]string{
			{"role_user", "/auth/me", "GET"},
			{"role_user", "/assets", "POST"},
			{"role_user", "/assets/*", "(GET|POST)"},
		},
	}
}

// AddPolicy adds a new policy rule
func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	if len(params) < 3 {
		return false, nil
	}

	policy := make([]string, len(params))
	for i, param := range params {
		if str, ok := param.(string); ok {
			policy[i] = str
		}
	}
	for _, existing := range m.policies {
		if strings.Join(existing, "\x00") == strings.Join(policy, "\x00") {
			return false, nil
		}
	}
	m.policies = append(m.policies, policy)
	return true, nil
}

// Enforce matches the stored policies with a trailing "/*" wildcard and regex actions
func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	if len(rvals) < 3 {
		return false, nil
	}
	role, _ := rvals[0].(string)
	resource, _ := rvals[1].(string)
	action, _ := rvals[2].(string)

	for _, p := range m.policies {
		if len(p) < 3 || p[0] != role {
			continue
		}
		if !matchResource(resource, p[1]) {
			continue
		}
		if ok, _ := regexp.MatchString("^"+p[2]+"$", action); ok {
			return true, nil
		}
	}
	return false, nil
}

func matchResource(resource, pattern string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return strings.HasPrefix(resource, prefix+"/")
	}
	return resource == pattern
}

// GetPolicy returns all policies
func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	result := make([][]string, len(m.policies))
	for i, policy := range m.policies {
		result[i] = append([]string(nil), policy...)
	}
	return result, nil
}

// SavePolicy saves all policies
func (m *MockCasbinEnforcer) SavePolicy() error {
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	return nil
}

// SetPolicies sets the internal policies (test helper)
func (m *MockCasbinEnforcer) SetPolicies(policies [][]string) {
	m.policies = make([][]string, len(policies))
	for i, policy := range policies {
		m.policies[i] = append([]string(nil), policy...)
	}
}
