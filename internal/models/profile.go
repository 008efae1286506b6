package models

import "time"

// Profile is a customer account. Soft deletion is modeled with the
// IsDeleted flag rather than gorm.DeletedAt: deleted profiles must stay
// visible to admins and keep their email reserved.
type Profile struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FullName     string     `gorm:"type:varchar(200);default:''" json:"full_name"`
	Role         string     `gorm:"type:varchar(20);not null;default:'user';index" json:"role"` // user / admin
	IsBlocked    bool       `gorm:"not null;default:false" json:"is_blocked"`
	IsDeleted    bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"index" json:"updated_at"`
}

// TableName sets the table name.
func (Profile) TableName() string {
	return "profiles"
}

// IsAdmin reports whether the profile holds the admin role.
func (p Profile) IsAdmin() bool {
	return p.Role == "admin"
}
