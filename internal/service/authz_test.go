package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fleetops-backend/internal/domain"
)

func TestRolePolicy(t *testing.T) {
	policy := NewRolePolicy()

	privileged := []domain.Role{domain.RoleMD, domain.RoleED, domain.RoleFleetOfficer}
	actions := []Action{ActionAdjustBalance, ActionEditTransaction, ActionDeleteTransaction}

	for _, role := range privileged {
		for _, action := range actions {
			assert.NoError(t, policy.Authorize(domain.Actor{Name: "x", Role: role}, action),
				"role %s action %s", role, action)
		}
	}

	for _, action := range actions {
		err := policy.Authorize(domain.Actor{Name: "sam", Role: domain.RoleStaff}, action)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized, "action %s", action)
	}

	// Unknown roles are not privileged.
	err := policy.Authorize(domain.Actor{Name: "x", Role: "INTERN"}, ActionAdjustBalance)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
}
