package employee

import "time"

type Role string

const (
	RoleEmployee Role = "Employee"
	RoleManager  Role = "Manager"
	RoleFounder  Role = "Founder"
)

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleFounder:
		return true
	}
	return false
}

type Employee struct {
	ID         string
	Name       string
	Email      string
	Role       Role
	Title      string
	Department string
	ManagerID  *string
	JoinDate   time.Time
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
