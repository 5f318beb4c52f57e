// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"
)

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents the user entity
type User struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"_id"`
	Name      string    `gorm:"not null;size:100" bson:"name" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null;size:255" bson:"email" json:"email"`
	Password  string    `gorm:"not null;size:255" bson:"password" json:"-"` // Don't return in JSON
	Role      string    `gorm:"not null;size:10;default:'user'" bson:"role" json:"role"`
	Wishlist  []string  `gorm:"serializer:json;type:text" bson:"wishlist" json:"wishlist"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Profile is the public view of a user returned with a token.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Profile returns the public view of u.
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// NormalizeEmail lower-cases and trims an address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
