package access

import "github.com/google/uuid"

// Actor identifies the authenticated caller of an operation, together with
// the workspace roles the routing layer resolved for them. It is threaded
// explicitly through every service call; there is no ambient auth state.
type Actor struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Roles RoleSet   `json:"-"`
}
