package models

import "time"

// InvestmentReport is a periodic accountability report an admin files against
// a project: where the money went, how the crop is doing, what comes next.
// Unlike ProjectUpdate it carries structured financial data and is scoped to
// a reporting period.
type InvestmentReport struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ProjectID        uint      `gorm:"column:project_id;not null;index" json:"project_id"`
	ReportPeriod     string    `gorm:"column:report_period;size:50;not null;index" json:"report_period"` // e.g. "2026-07" or "2026-Q2"
	ReportDate       time.Time `gorm:"column:report_date;not null" json:"report_date"`
	FinancialSummary *string   `gorm:"column:financial_summary;type:json" json:"financial_summary,omitempty"`
	ProjectMetrics   *string   `gorm:"column:project_metrics;type:json" json:"project_metrics,omitempty"`
	FarmerFeedback   *string   `gorm:"column:farmer_feedback;type:text" json:"farmer_feedback,omitempty"`
	IssuesChallenges *string   `gorm:"column:issues_challenges;type:text" json:"issues_challenges,omitempty"`
	NextSteps        *string   `gorm:"column:next_steps;type:text" json:"next_steps,omitempty"`
	Photos           *string   `gorm:"type:text" json:"photos,omitempty"` // comma-separated object keys
	Videos           *string   `gorm:"type:text" json:"videos,omitempty"` // comma-separated object keys
	CreatedBy        int64     `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (InvestmentReport) TableName() string {
	return "investment_reports"
}

// ReportUpdateFields is the explicit set of columns an admin may edit on a
// filed report. Nil fields are left untouched.
type ReportUpdateFields struct {
	ReportPeriod     *string
	ReportDate       *time.Time
	FinancialSummary *string
	ProjectMetrics   *string
	FarmerFeedback   *string
	IssuesChallenges *string
	NextSteps        *string
	Photos           *string
	Videos           *string
}

// Changes converts the populated fields into a GORM update map.
func (f *ReportUpdateFields) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if f.ReportPeriod != nil {
		changes["report_period"] = *f.ReportPeriod
	}
	if f.ReportDate != nil {
		changes["report_date"] = *f.ReportDate
	}
	if f.FinancialSummary != nil {
		changes["financial_summary"] = *f.FinancialSummary
	}
	if f.ProjectMetrics != nil {
		changes["project_metrics"] = *f.ProjectMetrics
	}
	if f.FarmerFeedback != nil {
		changes["farmer_feedback"] = *f.FarmerFeedback
	}
	if f.IssuesChallenges != nil {
		changes["issues_challenges"] = *f.IssuesChallenges
	}
	if f.NextSteps != nil {
		changes["next_steps"] = *f.NextSteps
	}
	if f.Photos != nil {
		changes["photos"] = *f.Photos
	}
	if f.Videos != nil {
		changes["videos"] = *f.Videos
	}
	return changes
}
