package employee

// Actor identifies who is performing an operation, as asserted by the
// access token claims.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsManager() bool { return a.Role == RoleManager || a.Role == RoleFounder }
func (a Actor) IsFounder() bool { return a.Role == RoleFounder }
