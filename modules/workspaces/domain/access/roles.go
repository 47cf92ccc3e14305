package access

// Role names a workspace-scoped capability grant. Call sites compare roles
// through RoleSet instead of raw string checks.
type Role string

const (
	RoleWorkspaceOwner      Role = "WorkspaceOwner"
	RoleWorkspaceResearcher Role = "WorkspaceResearcher"
	RoleAirlockManager      Role = "AirlockManager"
)

// RoleSet is the set of roles a caller holds on a workspace.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

func (s RoleSet) List() []Role {
	out := make([]Role, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	return out
}
