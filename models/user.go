package models

import "time"

type User struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	FirstName  string     `gorm:"size:100;not null" json:"first_name"`
	LastName   string     `gorm:"size:100;not null" json:"last_name"`
	Phone      string     `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Email      string     `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"size:255;not null" json:"-"`
	NidFront   *string    `gorm:"column:nid_front;type:varchar(255)" json:"nid_front,omitempty"`
	NidBack    *string    `gorm:"column:nid_back;type:varchar(255)" json:"nid_back,omitempty"`
	IsVerified bool       `gorm:"column:is_verified;default:false" json:"is_verified"`
	IsApproved bool       `gorm:"column:is_approved;default:false" json:"is_approved"`
	VerifiedAt *time.Time `gorm:"column:verified_at" json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name for display and notification emails.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
