package route

import "testing"

func TestState_Equal(t *testing.T) {
	tests := []struct {
		desc     string
		a, b     *State
		expected bool
	}{
		{
			desc:     "same name no params",
			a:        &State{Name: "home"},
			b:        &State{Name: "home"},
			expected: true,
		},
		{
			desc:     "same name same params",
			a:        &State{Name: "users.detail", Params: Params{"id": "42"}},
			b:        &State{Name: "users.detail", Params: Params{"id": "42"}},
			expected: true,
		},
		{
			desc:     "same name different params",
			a:        &State{Name: "users.detail", Params: Params{"id": "42"}},
			b:        &State{Name: "users.detail", Params: Params{"id": "7"}},
			expected: false,
		},
		{
			desc:     "different name",
			a:        &State{Name: "home"},
			b:        &State{Name: "users"},
			expected: false,
		},
		{
			desc:     "nil vs nil",
			a:        nil,
			b:        nil,
			expected: true,
		},
		{
			desc:     "nil vs non-nil",
			a:        nil,
			b:        &State{Name: "home"},
			expected: false,
		},
		{
			desc:     "nil params vs empty params",
			a:        &State{Name: "home", Params: nil},
			b:        &State{Name: "home", Params: Params{}},
			expected: true,
		},
		{
			desc:     "path ignored",
			a:        &State{Name: "home", Path: "/home"},
			b:        &State{Name: "home", Path: "/"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.expected {
				t.Errorf("State.Equal() = %v, want %v", got, tt.expected)
			}
			// Equality is symmetric.
			if got := tt.b.Equal(tt.a); got != tt.expected {
				t.Errorf("State.Equal() reversed = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_Clone(t *testing.T) {
	orig := &State{Name: "users.detail", Params: Params{"id": "42"}, Path: "/users/42"}
	clone := orig.Clone()

	if !clone.Equal(orig) {
		t.Fatal("clone is not equal to original")
	}
	clone.Params["id"] = "7"
	if orig.Params["id"] != "42" {
		t.Error("mutating clone params affected original")
	}

	var nilState *State
	if nilState.Clone() != nil {
		t.Error("Clone of nil state should be nil")
	}
}
