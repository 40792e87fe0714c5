package team_member

import "time"

type Role string

const (
	RoleDeveloper  Role = "developer"
	RoleDesigner   Role = "designer"
	RoleManager    Role = "manager"
	RoleAnalyst    Role = "analyst"
	RoleConsultant Role = "consultant"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleDeveloper, RoleDesigner, RoleManager, RoleAnalyst, RoleConsultant:
		return true
	}
	return false
}

// Roles lists every known role, in the order reports present them.
func Roles() []Role {
	return []Role{RoleDeveloper, RoleDesigner, RoleManager, RoleAnalyst, RoleConsultant}
}

type Availability string

const (
	Available   Availability = "available"
	Busy        Availability = "busy"
	Unavailable Availability = "unavailable"
)

func (a Availability) IsValid() bool {
	switch a {
	case Available, Busy, Unavailable:
		return true
	}
	return false
}

type TeamMember struct {
	ID              int
	Name            string
	Email           string
	Phone           string
	Role            Role
	Availability    Availability
	HourlyRate      float64
	ExperienceYears float64
	Skills          []string
	CurrentProject  string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
