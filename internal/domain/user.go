package domain

// Role identifies which part of the dashboard an account may use.
// The string values match the remote API's accountType and the token's Role claim.
type Role string

const (
	RoleManager         Role = "Manager"
	RolePersonalTrainer Role = "PersonalTrainer"
	RoleClient          Role = "Client"
)

// Roles lists every known role in display order.
var Roles = []Role{RoleManager, RolePersonalTrainer, RoleClient}

// ParseRole converts a raw claim or form value into a Role.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Label is the human readable name shown in the UI.
func (r Role) Label() string {
	switch r {
	case RoleManager:
		return "Manager"
	case RolePersonalTrainer:
		return "Personal Trainer"
	case RoleClient:
		return "Client"
	}
	return string(r)
}

// User is an account as returned by the remote API.
type User struct {
	UserID            int    `json:"userId"`
	Email             string `json:"email"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	PersonalTrainerID *int   `json:"personalTrainerId"`
	AccountType       Role   `json:"accountType"`
}

// FullName joins the name parts, skipping an empty one.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsTrainer reports whether the account can own clients.
func (u *User) IsTrainer() bool {
	return u.AccountType == RolePersonalTrainer
}

// IsClient reports whether workout programs can be created for the account.
func (u *User) IsClient() bool {
	return u.AccountType == RoleClient
}
