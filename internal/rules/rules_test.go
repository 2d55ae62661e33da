package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"techstore/internal/directory"
)

func userWith(controls map[string]any) *directory.User {
	return &directory.User{ID: 1, Controls: controls}
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		user *directory.User
		want Decision
	}{
		{"nil user", nil, Unspecified},
		{"nil controls", userWith(nil), Unspecified},
		{"control absent", userWith(map[string]any{"other": true}), Unspecified},
		{"explicit null is a denial", userWith(map[string]any{"canCheckout": nil}), Denied},
		{"explicit false", userWith(map[string]any{"canCheckout": false}), Denied},
		{"explicit true", userWith(map[string]any{"canCheckout": true}), Allowed},
		{"zero number", userWith(map[string]any{"canCheckout": float64(0)}), Denied},
		{"nonzero number", userWith(map[string]any{"canCheckout": float64(1)}), Allowed},
		{"empty string", userWith(map[string]any{"canCheckout": ""}), Denied},
		{"nonempty string", userWith(map[string]any{"canCheckout": "yes"}), Allowed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Evaluate(tc.user, "canCheckout"))
		})
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allowed", Allowed.String())
	assert.Equal(t, "denied", Denied.String())
	assert.Equal(t, "unspecified", Unspecified.String())
}
