// Package policy is the single place ownership and role rules are evaluated.
package policy

import "taskr/internal/domain"

// CanMutate reports whether the caller may change or delete the given task:
// admins may mutate anything, everyone else only their own tasks.
func CanMutate(ac domain.AuthContext, t domain.Task) bool {
	return ac.Role == domain.RoleAdmin || ac.UserID == t.OwnerID
}
