package services

import (
	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/airlockrequest"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/access"
)

// actionGate pairs a lifecycle action with the transition it stands for and
// the roles allowed to invoke it. The target status is fed through the same
// legal-transition table the lifecycle engine enforces with, so affordance
// and enforcement cannot drift apart.
type actionGate struct {
	action airlockrequest.Action
	target airlockrequest.Status
	roles  []access.Role
}

var actionGates = []actionGate{
	{
		action: airlockrequest.ActionReview,
		target: airlockrequest.StatusApprovalInProgress,
		roles:  []access.Role{access.RoleAirlockManager},
	},
	{
		action: airlockrequest.ActionCancel,
		target: airlockrequest.StatusCancelled,
		roles:  []access.Role{access.RoleWorkspaceOwner, access.RoleWorkspaceResearcher},
	},
	{
		action: airlockrequest.ActionSubmit,
		target: airlockrequest.StatusSubmitted,
		roles:  []access.Role{access.RoleWorkspaceOwner, access.RoleWorkspaceResearcher},
	},
}

// AllowedActions computes which lifecycle actions the caller may invoke next
// on the given request. Used for API affordance only; enforcement happens in
// the lifecycle operations themselves.
func AllowedActions(req *airlockrequest.AirlockRequest, roles access.RoleSet) []airlockrequest.Action {
	actions := []airlockrequest.Action{}
	for _, gate := range actionGates {
		if airlockrequest.IsLegalTransition(req.Status, gate.target) && roles.HasAny(gate.roles...) {
			actions = append(actions, gate.action)
		}
	}
	return actions
}

// RolesForAction exposes the role requirement per action so the routing
// layer's guards can be asserted against the same table.
func RolesForAction(action airlockrequest.Action) []access.Role {
	for _, gate := range actionGates {
		if gate.action == action {
			return gate.roles
		}
	}
	return nil
}
