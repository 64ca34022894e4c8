package models

// Available roles
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// GetDefaultRoles returns the roles assigned to a new user
func GetDefaultRoles() Roles {
	return Roles{RoleUser}
}

// GetAllRoles returns every available role
func GetAllRoles() []string {
	return []string{
		RoleUser,
		RoleAdmin,
		RoleModerator,
	}
}

// IsValidRole checks that a role is one of the known roles
func IsValidRole(role string) bool {
	for _, r := range GetAllRoles() {
		if r == role {
			return true
		}
	}
	return false
}
