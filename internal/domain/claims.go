package domain

// Claims is the decoded payload of a session token.
// It lives for one request and is never stored by this service.
type Claims struct {
	Role        Role
	UserID      int
	DisplayName string
}

// HomePath is the landing page of the role's dashboard.
func (c Claims) HomePath() string {
	return HomePath(c.Role)
}

// HomePath maps a role to its dashboard home. Unknown roles go to the site root.
func HomePath(r Role) string {
	switch r {
	case RoleManager:
		return "/dashboard/manager"
	case RolePersonalTrainer:
		return "/dashboard/personalTrainer"
	case RoleClient:
		return "/dashboard/client"
	}
	return "/"
}
