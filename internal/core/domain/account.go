package domain

import "encoding/json"

const (
	RoleFarmer   = "farmer"
	RoleSupplier = "supplier"
	RoleAdmin    = "admin"
)

// ValidRole reports whether role is one of the enumerated marketplace roles.
func ValidRole(role string) bool {
	return role == RoleFarmer || role == RoleSupplier || role == RoleAdmin
}

// Account models a registered marketplace user. Accounts are owned by the
// backend; the portal only holds transient copies. Passwords are write-only
// and never appear on this type.
type Account struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"is_active"`
}

// accountWire mirrors Account plus the alternate id key. The backend is not
// consistent about the identifier field: list endpoints emit "_id" while the
// login response emits "id". Decoding accepts both, preferring "_id".
type accountWire struct {
	ID     string `json:"_id"`
	AltID  string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"is_active"`
}

func (a *Account) UnmarshalJSON(data []byte) error {
	var w accountWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	id := w.ID
	if id == "" {
		id = w.AltID
	}
	*a = Account{ID: id, Name: w.Name, Email: w.Email, Role: w.Role, Active: w.Active}
	return nil
}
