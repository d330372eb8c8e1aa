package model

// Role tags assigned by the server. Role sets are stored as free-form
// strings so deployments can define their own tags on top of these.
const (
	// RoleMember is the default role of any registered user.
	RoleMember = "member"
	// RoleAdmin grants access to administrative queries and mutations.
	RoleAdmin = "admin"
	// RoleSuperAdmin is an admin that can manage other admins.
	RoleSuperAdmin = "superAdmin"
)

// A User represents a database record.
type User struct {
	Base `msgpack:",inline" storm:"inline"`

	FullName string   `json:"full_name" msgpack:"full_name"`
	Email    string   `json:"email"     msgpack:"email"     storm:"unique"`
	Password string   `json:"-"         msgpack:"password"`
	Roles    []string `json:"roles"     msgpack:"roles"`
	IsActive bool     `json:"is_active" msgpack:"is_active"`

	// LastUpdatedByID is an audit pointer to the user that last modified
	// this record. It carries no ownership nor cascade semantics and is
	// resolved with an explicit lookup, never eagerly loaded.
	LastUpdatedByID string `json:"last_updated_by_uuid,omitempty" msgpack:"last_updated_by_id"`
}

// NewUser returns a new active user with the default role set.
func NewUser() *User {
	return &User{
		Roles:    []string{RoleMember},
		IsActive: true,
	}
}

// HasAnyRole returns true if the user holds at least one of the given roles.
// An empty argument list matches any user.
func (u *User) HasAnyRole(roles ...string) bool {
	if len(roles) == 0 {
		return true
	}

	for _, role := range roles {
		for _, held := range u.Roles {
			if role == held {
				return true
			}
		}
	}
	return false
}
