package domain

// Role is an administrative capability granted per identity by the owner.
type Role string

const (
	RoleMembershipAdmin Role = "membership_admin"
	RoleEventAdmin      Role = "event_admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMembershipAdmin, RoleEventAdmin:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}
