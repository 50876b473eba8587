package db_models

type Role string

const (
	RoleRestaurant     Role = "restaurant"
	RoleNGO            Role = "ngo"
	RoleUser           Role = "user"
	RolePackingCompany Role = "packing_company"
	RoleAdmin          Role = "admin"
)

// Capability is something a role is allowed to do. Routes are gated on
// capabilities rather than on role names.
type Capability string

const (
	CapOwnMenu         Capability = "own_menu"
	CapRequestFood     Capability = "request_food"
	CapFulfillFood     Capability = "fulfill_food"
	CapRequestPacking  Capability = "request_packing"
	CapFulfillPacking  Capability = "fulfill_packing"
	CapRequestPickup   Capability = "request_pickup"
	CapFulfillPickup   Capability = "fulfill_pickup"
	CapRateRestaurant  Capability = "rate_restaurant"
	CapKeepPreferences Capability = "keep_preferences"
	CapManageAccounts  Capability = "manage_accounts"
)

var roleCapabilities = map[Role][]Capability{
	RoleRestaurant:     {CapOwnMenu, CapFulfillFood, CapRequestPacking, CapRequestPickup},
	RoleNGO:            {CapRequestFood, CapRequestPacking, CapFulfillPickup},
	RoleUser:           {CapRateRestaurant, CapKeepPreferences},
	RolePackingCompany: {CapFulfillPacking},
	RoleAdmin:          {CapManageAccounts},
}

// ParseRole returns the role for s and whether it is a known one.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := roleCapabilities[r]
	return r, ok
}

func (r Role) Can(c Capability) bool {
	for _, have := range roleCapabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}

// SelfRegistrable reports whether accounts of this role may sign up through
// the public register endpoint.
func (r Role) SelfRegistrable() bool {
	_, ok := roleCapabilities[r]
	return ok && r != RoleAdmin
}

type Account struct {
	BaseModel
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"not null;index" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Role         Role   `gorm:"type:varchar(32);not null;index" json:"role"`
}
