package account

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleTalent    Role = "talent"
	RoleCoach     Role = "coach"
	RoleRecruiter Role = "recruiter"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTalent, RoleCoach, RoleRecruiter:
		return true
	}
	return false
}

// IsMember reports whether the role signs in with an access key.
func (r Role) IsMember() bool {
	return r == RoleTalent || r == RoleCoach || r == RoleRecruiter
}

// Dashboard is the view a client shell opens after sign-in.
func (r Role) Dashboard() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleRecruiter:
		return "recruiter"
	case RoleCoach:
		return "coach"
	default:
		return "jobs"
	}
}

type Admin struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}

// Credential is what login needs from any principal table.
type Credential struct {
	PrincipalID uuid.UUID
	Role        Role
	Email       string
	FullName    string
	SecretHash  string
}
