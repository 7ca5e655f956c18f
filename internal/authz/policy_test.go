package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bank-admin-service/internal/domain"
	xerrors "bank-admin-service/pkg/xerrors"
)

func TestRolePolicyGrants(t *testing.T) {
	p := NewRolePolicy()
	admin := domain.Actor{AdminID: 1, Username: "root", Role: domain.RoleAdmin}
	auditor := domain.Actor{AdminID: 2, Username: "audit", Role: domain.RoleAuditor}

	for _, action := range []domain.Action{
		domain.ActionViewAccounts,
		domain.ActionManageAccounts,
		domain.ActionMoveMoney,
		domain.ActionViewAnalytics,
	} {
		assert.NoError(t, p.Can(admin, action), "admin should hold %s", action)
	}

	assert.NoError(t, p.Can(auditor, domain.ActionViewAccounts))
	assert.NoError(t, p.Can(auditor, domain.ActionViewAnalytics))
	assert.ErrorIs(t, p.Can(auditor, domain.ActionManageAccounts), xerrors.ErrForbidden)
	assert.ErrorIs(t, p.Can(auditor, domain.ActionMoveMoney), xerrors.ErrForbidden)
}

func TestRolePolicyDeniesUnknownRole(t *testing.T) {
	p := NewRolePolicy()
	stranger := domain.Actor{AdminID: 3, Username: "ghost", Role: "intern"}

	assert.ErrorIs(t, p.Can(stranger, domain.ActionViewAccounts), xerrors.ErrForbidden)
}
