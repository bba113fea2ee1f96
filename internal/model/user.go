package model

import "time"

// Role enumerates user access levels.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// User rows are removed outright on delete so the email becomes
// available again.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	Photo     string    `gorm:"size:512" json:"photo,omitempty"`
	Role      Role      `gorm:"size:20;not null;default:CLIENT" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
