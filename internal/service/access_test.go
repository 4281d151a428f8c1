package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tmurzenkov/circulation-service/internal/errs"
	"github.com/tmurzenkov/circulation-service/internal/model"
	"github.com/tmurzenkov/circulation-service/internal/service"
)

func TestAccessGate_Authorize(t *testing.T) {
	t.Parallel()

	member := model.Account{ID: 2, Role: model.RoleMember, Activated: true}
	blockedMember := model.Account{ID: 3, Role: model.RoleMember, Activated: true, Blocked: true}
	deactivated := model.Account{ID: 4, Role: model.RoleMember, Activated: false}
	admin := model.Account{ID: 1, Role: model.RoleAdmin, Activated: true}
	// blocked admins still lend: the member-only blocked check does not apply
	blockedAdmin := model.Account{ID: 5, Role: model.RoleAdmin, Activated: true, Blocked: true}
	deactivatedAdmin := model.Account{ID: 6, Role: model.RoleAdmin, Activated: false}

	var tests = []struct {
		name    string
		account model.Account
		cap     service.Capability
		wantErr error
	}{
		{"member browses", member, service.CapBrowse, nil},
		{"member edits own profile", member, service.CapProfileEdit, nil},
		{"member borrows", member, service.CapBorrow, nil},
		{"member returns", member, service.CapReturn, nil},
		{"member denied admin", member, service.CapAdmin, errs.ErrNotAllowed},
		{"blocked member browses", blockedMember, service.CapBrowse, nil},
		{"blocked member edits profile", blockedMember, service.CapProfileEdit, nil},
		{"blocked member denied borrow", blockedMember, service.CapBorrow, errs.ErrAccountBlocked},
		{"blocked member denied return", blockedMember, service.CapReturn, errs.ErrAccountBlocked},
		{"deactivated denied everything", deactivated, service.CapBrowse, errs.ErrAccountDeactivated},
		{"deactivated denied borrow", deactivated, service.CapBorrow, errs.ErrAccountDeactivated},
		{"admin allowed admin", admin, service.CapAdmin, nil},
		{"admin allowed borrow", admin, service.CapBorrow, nil},
		{"blocked admin still borrows", blockedAdmin, service.CapBorrow, nil},
		{"blocked admin still admin", blockedAdmin, service.CapAdmin, nil},
		{"deactivated admin denied", deactivatedAdmin, service.CapAdmin, errs.ErrAccountDeactivated},
	}
	gate := service.NewAccessGate()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := gate.Authorize(tt.account, tt.cap)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
