package service

import (
	"fmt"

	"fleetops-backend/internal/domain"
)

type Action string

const (
	ActionAdjustBalance     Action = "adjust_balance"
	ActionEditTransaction   Action = "edit_transaction"
	ActionDeleteTransaction Action = "delete_transaction"
)

// Policy decides whether an actor may perform a privileged ledger action.
// The ledger service consults it directly so call sites cannot forget the
// check.
type Policy interface {
	Authorize(actor domain.Actor, action Action) error
}

type rolePolicy struct {
	allowed map[Action]map[domain.Role]bool
}

// NewRolePolicy returns the default policy: balance adjustments and
// transaction edits/deletes are restricted to MD, ED and Fleet Officer.
func NewRolePolicy() Policy {
	privileged := map[domain.Role]bool{
		domain.RoleMD:           true,
		domain.RoleED:           true,
		domain.RoleFleetOfficer: true,
	}
	return &rolePolicy{
		allowed: map[Action]map[domain.Role]bool{
			ActionAdjustBalance:     privileged,
			ActionEditTransaction:   privileged,
			ActionDeleteTransaction: privileged,
		},
	}
}

func (p *rolePolicy) Authorize(actor domain.Actor, action Action) error {
	roles, ok := p.allowed[action]
	if !ok {
		return nil
	}
	if !roles[actor.Role] {
		return fmt.Errorf("%w: role %s may not %s", domain.ErrNotAuthorized, actor.Role, action)
	}
	return nil
}
