package models

import "time"

// ProjectUpdate is a progress report admins publish against a running project.
// Confirmed investors are notified by email when one is posted.
type ProjectUpdate struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"column:project_id;not null;index" json:"project_id"`
	Title       string    `gorm:"size:191;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	UpdateType  string    `gorm:"column:update_type;size:50;default:'general'" json:"update_type"`
	Images      *string   `gorm:"type:text" json:"images,omitempty"` // comma-separated object keys
	CreatedBy   int64     `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (ProjectUpdate) TableName() string {
	return "project_updates"
}
