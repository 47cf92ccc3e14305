package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/airlockrequest"
	"github.com/enclaveworks/enclave-sdk/modules/airlock/services"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/access"
)

func TestAllowedActions(t *testing.T) {
	managerRoles := access.NewRoleSet(access.RoleAirlockManager)
	researcherRoles := access.NewRoleSet(access.RoleWorkspaceResearcher)
	ownerRoles := access.NewRoleSet(access.RoleWorkspaceOwner)

	tests := []struct {
		name   string
		status airlockrequest.Status
		roles  access.RoleSet
		want   []airlockrequest.Action
	}{
		{"draft researcher", airlockrequest.StatusDraft, researcherRoles,
			[]airlockrequest.Action{airlockrequest.ActionCancel, airlockrequest.ActionSubmit}},
		{"draft owner", airlockrequest.StatusDraft, ownerRoles,
			[]airlockrequest.Action{airlockrequest.ActionCancel, airlockrequest.ActionSubmit}},
		{"draft manager", airlockrequest.StatusDraft, managerRoles,
			[]airlockrequest.Action{}},
		{"submitted researcher", airlockrequest.StatusSubmitted, researcherRoles,
			[]airlockrequest.Action{airlockrequest.ActionCancel}},
		{"in review manager", airlockrequest.StatusInReview, managerRoles,
			[]airlockrequest.Action{airlockrequest.ActionReview}},
		{"in review researcher", airlockrequest.StatusInReview, researcherRoles,
			[]airlockrequest.Action{airlockrequest.ActionCancel}},
		{"approved researcher", airlockrequest.StatusApproved, researcherRoles,
			[]airlockrequest.Action{}},
		{"cancelled manager", airlockrequest.StatusCancelled, managerRoles,
			[]airlockrequest.Action{}},
		{"no roles", airlockrequest.StatusDraft, access.NewRoleSet(),
			[]airlockrequest.Action{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &airlockrequest.AirlockRequest{Status: tt.status}
			assert.Equal(t, tt.want, services.AllowedActions(req, tt.roles))
		})
	}
}

// Affordance and enforcement must agree: an action offered by AllowedActions
// has exactly the role requirement the endpoint guard checks.
func TestAllowedActions_RoleParity(t *testing.T) {
	assert.Equal(t,
		[]access.Role{access.RoleAirlockManager},
		services.RolesForAction(airlockrequest.ActionReview))
	assert.Equal(t,
		[]access.Role{access.RoleWorkspaceOwner, access.RoleWorkspaceResearcher},
		services.RolesForAction(airlockrequest.ActionSubmit))
	assert.Equal(t,
		[]access.Role{access.RoleWorkspaceOwner, access.RoleWorkspaceResearcher},
		services.RolesForAction(airlockrequest.ActionCancel))
	assert.Nil(t, services.RolesForAction(airlockrequest.Action("bogus")))
}

func TestAllowedActions_NeverOffersIllegalTransition(t *testing.T) {
	allRoles := access.NewRoleSet(
		access.RoleWorkspaceOwner,
		access.RoleWorkspaceResearcher,
		access.RoleAirlockManager,
	)
	targets := map[airlockrequest.Action]airlockrequest.Status{
		airlockrequest.ActionReview: airlockrequest.StatusApprovalInProgress,
		airlockrequest.ActionCancel: airlockrequest.StatusCancelled,
		airlockrequest.ActionSubmit: airlockrequest.StatusSubmitted,
	}
	for _, status := range airlockrequest.AllStatuses() {
		req := &airlockrequest.AirlockRequest{Status: status}
		for _, action := range services.AllowedActions(req, allRoles) {
			assert.True(t, airlockrequest.IsLegalTransition(status, targets[action]),
				"action %s offered from %s but transition is illegal", action, status)
		}
	}
}
