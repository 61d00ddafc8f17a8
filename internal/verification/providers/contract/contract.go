// Package contract holds reusable test suites every adapter runs against a
// fake provider, so all adapters honour the same outcome and error contract.
package contract

import (
	"context"
	"testing"

	"integrationhub/internal/verification/models"
	"integrationhub/internal/verification/providers"
)

// ContractTest defines a test case for adapter contract validation
type ContractTest struct {
	Name            string
	Adapter         providers.Adapter
	Input           providers.Input
	ExpectedOutcome models.Outcome
	ValidateFunc    func(t *testing.T, result models.AttemptResult)
}

// ContractSuite is a collection of contract tests for an adapter
type ContractSuite struct {
	ProviderID string
	Tests      []ContractTest
}

// Run executes all contract tests in the suite
func (s *ContractSuite) Run(t *testing.T) {
	for _, test := range s.Tests {
		t.Run(test.Name, func(t *testing.T) {
			result := test.Adapter.Attempt(context.Background(), test.Input)

			if result.ProviderID != s.ProviderID {
				t.Errorf("expected provider ID %s, got %s", s.ProviderID, result.ProviderID)
			}
			if result.Outcome != test.ExpectedOutcome {
				t.Errorf("expected outcome %s, got %s (err: %v)", test.ExpectedOutcome, result.Outcome, result.Err)
			}

			// Success carries no error; everything else explains itself
			switch result.Outcome {
			case models.OutcomeDefinitiveSuccess:
				if result.Err != nil {
					t.Errorf("success must not carry an error, got %v", result.Err)
				}
			default:
				if result.Err == nil {
					t.Errorf("%s result must carry an error", result.Outcome)
				}
			}

			if test.ValidateFunc != nil {
				test.ValidateFunc(t, result)
			}
		})
	}
}

// ErrorContractTest validates that adapter failures follow the taxonomy
type ErrorContractTest struct {
	Name             string
	Adapter          providers.Adapter
	Input            providers.Input
	ExpectedCategory providers.ErrorCategory
	ExpectedOutcome  models.Outcome
}

// Run executes an error contract test
func (ect *ErrorContractTest) Run(t *testing.T) {
	t.Run(ect.Name, func(t *testing.T) {
		result := ect.Adapter.Attempt(context.Background(), ect.Input)
		if result.Err == nil {
			t.Fatal("expected error but got none")
		}

		category := providers.GetCategory(result.Err)
		if category != ect.ExpectedCategory {
			t.Errorf("expected error category %s, got %s", ect.ExpectedCategory, category)
		}
		if result.Outcome != ect.ExpectedOutcome {
			t.Errorf("expected outcome %s, got %s", ect.ExpectedOutcome, result.Outcome)
		}
	})
}

// ConfigurationTest checks that an adapter without credentials reports itself
// unconfigured.
type ConfigurationTest struct {
	Adapter providers.Adapter
}

// Run executes a configuration test
func (ct *ConfigurationTest) Run(t *testing.T) {
	if ct.Adapter.Configured() {
		t.Errorf("adapter %s reports configured without credentials", ct.Adapter.ID())
	}
	if ct.Adapter.ID() == "" {
		t.Error("adapter ID not set")
	}
}
