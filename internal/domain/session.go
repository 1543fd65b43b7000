package domain

type Role string

const (
	RoleBuyer Role = "Buyer"
	RoleAgent Role = "Agent"
	RoleAdmin Role = "Admin"
)

// Identity is the platform-side user record attached to a session or
// embedded in a populated reference.
type Identity struct {
	ID    string `json:"_id"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Session is the credential pair held by the client for the current
// login. Token and Identity are always present together: a record with
// only one of them is not a session.
type Session struct {
	Token    string
	Identity *Identity
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.Identity != nil
}

// IdentityID returns the session owner's id, or "" when logged out.
func (s Session) IdentityID() string {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.ID
}

func (s Session) HasRole(role Role) bool {
	return s.Identity != nil && s.Identity.Role == role
}
