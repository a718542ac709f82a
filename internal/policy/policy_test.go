package policy_test

import (
	"testing"

	"taskr/internal/domain"
	"taskr/internal/policy"
)

func TestCanMutate(t *testing.T) {
	task := domain.Task{ID: "t1", OwnerID: "u-michael"}

	cases := []struct {
		name string
		ac   domain.AuthContext
		want bool
	}{
		{"owner", domain.AuthContext{UserID: "u-michael", Role: domain.RoleUser}, true},
		{"stranger", domain.AuthContext{UserID: "u-fletcher", Role: domain.RoleUser}, false},
		{"admin non-owner", domain.AuthContext{UserID: "u-admin", Role: domain.RoleAdmin}, true},
		{"empty context", domain.AuthContext{}, false},
	}
	for _, tc := range cases {
		if got := policy.CanMutate(tc.ac, task); got != tc.want {
			t.Errorf("%s: CanMutate=%v, want %v", tc.name, got, tc.want)
		}
	}
}
