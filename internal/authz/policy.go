package authz

import (
	"fmt"

	"bank-admin-service/internal/domain"
	xerrors "bank-admin-service/pkg/xerrors"
)

// Policy decides whether an actor may perform an action. Callers must
// hold a grant before any registry or ledger call goes through; there is
// no implicit allow.
type Policy interface {
	Can(actor domain.Actor, action domain.Action) error
}

// RolePolicy is a static role -> action-set table.
type RolePolicy struct {
	grants map[string]map[domain.Action]bool
}

func NewRolePolicy() *RolePolicy {
	return &RolePolicy{
		grants: map[string]map[domain.Action]bool{
			domain.RoleAdmin: {
				domain.ActionViewAccounts:   true,
				domain.ActionManageAccounts: true,
				domain.ActionMoveMoney:      true,
				domain.ActionViewAnalytics:  true,
			},
			domain.RoleAuditor: {
				domain.ActionViewAccounts:  true,
				domain.ActionViewAnalytics: true,
			},
		},
	}
}

func (p *RolePolicy) Can(actor domain.Actor, action domain.Action) error {
	if p.grants[actor.Role][action] {
		return nil
	}
	return fmt.Errorf("%s denied %s: %w", actor.Username, action, xerrors.ErrForbidden)
}
