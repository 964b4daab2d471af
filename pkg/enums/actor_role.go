package enums

import "fmt"

// ActorRole distinguishes admin panel tokens from customer portal tokens.
type ActorRole string

const (
	ActorRoleAdmin   ActorRole = "admin"
	ActorRoleCliente ActorRole = "cliente"
)

var validActorRoles = []ActorRole{
	ActorRoleAdmin,
	ActorRoleCliente,
}

// String implements fmt.Stringer.
func (r ActorRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ActorRole.
func (r ActorRole) IsValid() bool {
	for _, candidate := range validActorRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseActorRole converts raw input into an ActorRole.
func ParseActorRole(value string) (ActorRole, error) {
	for _, candidate := range validActorRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid actor role %q", value)
}
