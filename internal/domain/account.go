package domain

// Account roles
const (
	RoleCustomer = "Customer" // Default role assigned at registration
	RoleManager  = "Manager"  // Branch staff
	RoleAdmin    = "Admin"    // Back office
)

// DefaultBalance is credited to every account at creation.
const DefaultBalance = 100000

// ValidRole reports whether role is one of the three known labels.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleManager || role == RoleAdmin
}

// Account Model
type Account struct {
	UID      string  `gorm:"primaryKey;size:64" json:"uid"`            // Client-supplied identifier
	Username string  `gorm:"unique;not null;size:64" json:"username"`  // Unique username for login lookup
	Password string  `gorm:"not null" json:"-"`                        // bcrypt hash of the credential
	Email    string  `gorm:"not null" json:"email"`                    // Required contact email
	Phone    string  `json:"phone,omitempty"`                          // Optional phone number
	Role     string  `gorm:"default:Customer" json:"role"`             // Customer, Manager or Admin
	Balance  float64 `gorm:"not null;default:100000" json:"balance"`   // Never mutated after creation
}
