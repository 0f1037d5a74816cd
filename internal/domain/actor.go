package domain

type Role string

const (
	RoleMD           Role = "MD"
	RoleED           Role = "ED"
	RoleFleetOfficer Role = "FLEET_OFFICER"
	RoleStaff        Role = "STAFF"
)

// Actor identifies who performed a ledger operation. It is passed explicitly
// into every mutating call rather than read from ambient session state.
type Actor struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func (a Actor) IsZero() bool {
	return a.Name == "" && a.Role == ""
}
