package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// Step is one request in a scenario and the outcome expected from it.
type Step struct {
	When    string
	Request func(t *testing.T) *http.Request
	Then    string
	Expect  func(t *testing.T, rec *httptest.ResponseRecorder)
}

// Scenario runs steps in order against one handler, so state left by an
// earlier step is visible to later ones. Subtests read
// "Given <given>/When <step.When>/Then <step.Then>".
func Scenario(t *testing.T, given string, h http.Handler, steps ...Step) {
	t.Helper()
	t.Run("Given "+given, func(t *testing.T) {
		for _, step := range steps {
			t.Run("When "+step.When, func(t *testing.T) {
				rec := DoRequest(h, step.Request(t))
				t.Run("Then "+step.Then, func(t *testing.T) {
					step.Expect(t, rec)
				})
			})
		}
	})
}
