package services

import (
	"errors"
	"testing"

	"github.com/you/assetsvc/domain"
	"github.com/you/assetsvc/internal/mocks"
)

// createPolicyServiceForTest creates a PolicyService with mock Casbin enforcer
func createPolicyServiceForTest(t *testing.T) (domain.PolicyService, *mocks.MockCasbinEnforcer) {
	t.Helper()

	enforcer := mocks.NewMockCasbinEnforcer()
	return NewPolicyServiceWithEnforcer(enforcer), enforcer
}

func TestPolicyServiceImpl_AddPolicy(t *testing.T) {
	tests := []struct {
		name               string
		setupMock          func(*mocks.MockCasbinEnforcer, *bool)
		expectedError      error
		expectedSaveCalled bool
	}{
		{
			name: "successful policy addition",
			setupMock: func(enforcer *mocks.MockCasbinEnforcer, saved *bool) {
				enforcer.SavePolicyFunc = func() error {
					*saved = true
					return nil
				}
			},
			expectedSaveCalled: true,
		},
		{
			name: "enforcer error skips save",
			setupMock: func(enforcer *mocks.MockCasbinEnforcer, saved *bool) {
				enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
					return false, errors.New("adapter down")
				}
				enforcer.SavePolicyFunc = func() error {
					*saved = true
					return nil
				}
			},
			expectedError: errors.New("adapter down"),
		},
		{
			name: "save failure is returned",
			setupMock: func(enforcer *mocks.MockCasbinEnforcer, saved *bool) {
				enforcer.SavePolicyFunc = func() error {
					*saved = true
					return errors.New("save failed")
				}
			},
			expectedError:      errors.New("save failed"),
			expectedSaveCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, enforcer := createPolicyServiceForTest(t)
			saved := false
			tt.setupMock(enforcer, &saved)

			err := svc.AddPolicy("role_editor", "/assets/*", "GET")

			if tt.expectedError != nil {
				if err == nil || err.Error() != tt.expectedError.Error() {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if saved != tt.expectedSaveCalled {
				t.Errorf("expected SavePolicy called=%v, got %v", tt.expectedSaveCalled, saved)
			}
		})
	}
}

func TestPolicyServiceImpl_CheckPermission(t *testing.T) {
	svc, _ := createPolicyServiceForTest(t)

	tests := []struct {
		role, resource, action string
		want                   bool
	}{
		{"role_user", "/assets", "POST", true},
		{"role_user", "/assets/my", "GET", true},
		{"role_user", "/assets/signature", "POST", true},
		{"role_user", "/auth/me", "GET", true},
		{"role_anonymous", "/assets/my", "GET", false},
		{"role_user", "/assets/my", "DELETE", false},
	}

	for _, tt := range tests {
		got, err := svc.CheckPermission(tt.role, tt.resource, tt.action)
		if err != nil {
			t.Fatalf("CheckPermission() error = %v", err)
		}
		if got != tt.want {
			t.Errorf("CheckPermission(%s, %s, %s) = %v, want %v", tt.role, tt.resource, tt.action, got, tt.want)
		}
	}
}

func TestSeedDefaultPolicies(t *testing.T) {
	t.Run("seeds an empty store", func(t *testing.T) {
		enforcer := mocks.NewMockCasbinEnforcer()
		enforcer.SetPolicies(nil)
		svc := NewPolicyServiceWithEnforcer(enforcer)

		seeded, err := SeedDefaultPolicies(svc)
		if err != nil {
			t.Fatalf("SeedDefaultPolicies() error = %v", err)
		}
		if !seeded {
			t.Error("expected policies to be seeded")
		}
		if got := len(svc.GetPolicies()); got != len(DefaultPolicies) {
			t.Errorf("expected %d policies, got %d", len(DefaultPolicies), got)
		}
	})

	t.Run("leaves existing policies alone", func(t *testing.T) {
		enforcer := mocks.NewMockCasbinEnforcer()
		enforcer.SetPolicies([][]string{{"role_admin", "/*", ".*"}})
		svc := NewPolicyServiceWithEnforcer(enforcer)

		seeded, err := SeedDefaultPolicies(svc)
		if err != nil {
			t.Fatalf("SeedDefaultPolicies() error = %v", err)
		}
		if seeded {
			t.Error("expected no seeding when policies exist")
		}
		if got := len(svc.GetPolicies()); got != 1 {
			t.Errorf("expected 1 policy, got %d", got)
		}
	})
}
