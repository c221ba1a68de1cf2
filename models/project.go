package models

import "time"

// ProjectStatus is the lifecycle state of a crowd-funded project.
type ProjectStatus string

const (
	ProjectPending   ProjectStatus = "pending"
	ProjectApproved  ProjectStatus = "approved"
	ProjectRejected  ProjectStatus = "rejected"
	ProjectRunning   ProjectStatus = "running"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// projectTransitions maps each status to the statuses it may move to.
// Transitions are monotonic: rejected, cancelled and completed are absorbing.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectPending:   {ProjectApproved, ProjectRejected, ProjectCancelled},
	ProjectApproved:  {ProjectRunning, ProjectCancelled},
	ProjectRunning:   {ProjectCompleted},
	ProjectRejected:  {},
	ProjectCancelled: {},
	ProjectCompleted: {},
}

// CanTransitionTo reports whether a project in status s may move to target.
func (s ProjectStatus) CanTransitionTo(target ProjectStatus) bool {
	for _, t := range projectTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	_, ok := projectTransitions[s]
	return ok
}

type Project struct {
	ID                     uint          `gorm:"primaryKey" json:"id"`
	FarmerName             string        `gorm:"column:farmer_name;size:100;not null" json:"farmer_name"`
	FarmerPhone            string        `gorm:"column:farmer_phone;size:20;not null" json:"farmer_phone"`
	FarmerAddress          string        `gorm:"column:farmer_address;type:text;not null" json:"farmer_address"`
	NidCardFront           *string       `gorm:"column:nid_card_front;size:255" json:"nid_card_front,omitempty"`
	NidCardBack            *string       `gorm:"column:nid_card_back;size:255" json:"nid_card_back,omitempty"`
	ProjectName            string        `gorm:"column:project_name;size:191;not null" json:"project_name"`
	ProjectImages          *string       `gorm:"column:project_images;type:text" json:"project_images,omitempty"` // comma-separated object keys
	PerUnitPrice           float64       `gorm:"column:per_unit_price;type:decimal(15,2);not null" json:"per_unit_price"`
	TotalReturnablePerUnit float64       `gorm:"column:total_returnable_per_unit;type:decimal(15,2);not null" json:"total_returnable_per_unit"`
	ProjectDuration        int           `gorm:"column:project_duration;not null" json:"project_duration"` // months
	TotalUnits             int           `gorm:"column:total_units;not null" json:"total_units"`
	WhyFundWithKrishibazar string        `gorm:"column:why_fund_with_krishibazar;type:text" json:"why_fund_with_krishibazar"`
	EarningPercentage      float64       `gorm:"column:earning_percentage;type:decimal(5,2)" json:"earning_percentage"`
	CategoryID             *uint         `gorm:"column:category_id;index" json:"category_id,omitempty"`
	Status                 ProjectStatus `gorm:"type:enum('pending','approved','rejected','running','completed','cancelled');default:'pending';index" json:"status"`
	ApprovedBy             *int64        `gorm:"column:approved_by" json:"approved_by,omitempty"`
	ApprovedAt             *time.Time    `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectionReason        *string       `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	StartedAt              *time.Time    `gorm:"column:started_at" json:"started_at,omitempty"`
	CompletedAt            *time.Time    `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedBy              int64         `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt              time.Time     `json:"created_at"`
	UpdatedAt              time.Time     `json:"updated_at"`

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectUpdateFields is the explicit set of columns an admin may edit on a
// project. Nil fields are left untouched; funding terms stay editable only
// while the project is pending, which callers enforce.
type ProjectUpdateFields struct {
	FarmerName             *string
	FarmerPhone            *string
	FarmerAddress          *string
	ProjectName            *string
	ProjectImages          *string
	PerUnitPrice           *float64
	TotalReturnablePerUnit *float64
	ProjectDuration        *int
	TotalUnits             *int
	WhyFundWithKrishibazar *string
	EarningPercentage      *float64
	CategoryID             *uint
}

// Changes converts the populated fields into a GORM update map.
func (f *ProjectUpdateFields) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if f.FarmerName != nil {
		changes["farmer_name"] = *f.FarmerName
	}
	if f.FarmerPhone != nil {
		changes["farmer_phone"] = *f.FarmerPhone
	}
	if f.FarmerAddress != nil {
		changes["farmer_address"] = *f.FarmerAddress
	}
	if f.ProjectName != nil {
		changes["project_name"] = *f.ProjectName
	}
	if f.ProjectImages != nil {
		changes["project_images"] = *f.ProjectImages
	}
	if f.PerUnitPrice != nil {
		changes["per_unit_price"] = *f.PerUnitPrice
	}
	if f.TotalReturnablePerUnit != nil {
		changes["total_returnable_per_unit"] = *f.TotalReturnablePerUnit
	}
	if f.ProjectDuration != nil {
		changes["project_duration"] = *f.ProjectDuration
	}
	if f.TotalUnits != nil {
		changes["total_units"] = *f.TotalUnits
	}
	if f.WhyFundWithKrishibazar != nil {
		changes["why_fund_with_krishibazar"] = *f.WhyFundWithKrishibazar
	}
	if f.EarningPercentage != nil {
		changes["earning_percentage"] = *f.EarningPercentage
	}
	if f.CategoryID != nil {
		changes["category_id"] = *f.CategoryID
	}
	return changes
}
