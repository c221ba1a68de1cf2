package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// InvestmentStatus is the lifecycle state of a single ledger entry.
type InvestmentStatus string

const (
	InvestmentPending   InvestmentStatus = "pending"
	InvestmentConfirmed InvestmentStatus = "confirmed"
	InvestmentCancelled InvestmentStatus = "cancelled"
	InvestmentCompleted InvestmentStatus = "completed"
)

// PaymentStatus tracks whether the investor's payment has been verified.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

var investmentTransitions = map[InvestmentStatus][]InvestmentStatus{
	InvestmentPending:   {InvestmentConfirmed, InvestmentCancelled},
	InvestmentConfirmed: {InvestmentCompleted, InvestmentCancelled},
	InvestmentCancelled: {},
	InvestmentCompleted: {},
}

// CanTransitionTo reports whether an investment in status s may move to target.
// Only admins may cancel a confirmed investment; callers enforce the role.
func (s InvestmentStatus) CanTransitionTo(target InvestmentStatus) bool {
	for _, t := range investmentTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known investment status.
func (s InvestmentStatus) Valid() bool {
	_, ok := investmentTransitions[s]
	return ok
}

type Investment struct {
	ID                   uint             `gorm:"primaryKey" json:"id"`
	UserID               uint             `gorm:"not null;index" json:"user_id"`
	ProjectID            uint             `gorm:"not null;index" json:"project_id"`
	UnitsInvested        int              `gorm:"column:units_invested;not null" json:"units_invested"`
	AmountPerUnit        float64          `gorm:"column:amount_per_unit;type:decimal(15,2);not null" json:"amount_per_unit"`
	TotalAmount          float64          `gorm:"column:total_amount;type:decimal(15,2);not null" json:"total_amount"`
	ExpectedReturnAmount float64          `gorm:"column:expected_return_amount;type:decimal(15,2);not null" json:"expected_return_amount"`
	Status               InvestmentStatus `gorm:"type:enum('pending','confirmed','cancelled','completed');default:'pending';index" json:"status"`
	PaymentStatus        PaymentStatus    `gorm:"column:payment_status;type:enum('pending','paid');default:'pending'" json:"payment_status"`
	PaymentReference     *string          `gorm:"column:payment_reference;size:191" json:"payment_reference,omitempty"`
	PaymentMethod        *string          `gorm:"column:payment_method;size:50" json:"payment_method,omitempty"`
	PaymentDate          *time.Time       `gorm:"column:payment_date" json:"payment_date,omitempty"`
	ReturnReceived       *float64         `gorm:"column:return_received;type:decimal(15,2)" json:"return_received,omitempty"`
	ReturnDate           *time.Time       `gorm:"column:return_date" json:"return_date,omitempty"`
	Notes                *string          `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Investment) TableName() string {
	return "investments"
}

// NewInvestment builds a pending ledger entry with amounts snapshotted from the
// project's current terms. The snapshot protects investors from the terms
// changing after they commit.
func NewInvestment(userID uint, project *Project, units int, paymentMethod string, paymentReference, notes *string) *Investment {
	return &Investment{
		UserID:               userID,
		ProjectID:            project.ID,
		UnitsInvested:        units,
		AmountPerUnit:        project.PerUnitPrice,
		TotalAmount:          project.PerUnitPrice * float64(units),
		ExpectedReturnAmount: project.TotalReturnablePerUnit * float64(units),
		Status:               InvestmentPending,
		PaymentStatus:        PaymentPending,
		PaymentMethod:        &paymentMethod,
		PaymentReference:     paymentReference,
		Notes:                notes,
	}
}

// MergeInto folds this investment's committed values into an already-confirmed
// entry for the same (user, project). The confirmed row stays the single
// consolidated entry; the caller deletes the source row afterwards.
func (inv *Investment) MergeInto(confirmed *Investment) {
	confirmed.UnitsInvested += inv.UnitsInvested
	confirmed.TotalAmount += inv.TotalAmount
	confirmed.ExpectedReturnAmount += inv.ExpectedReturnAmount
}

// AppendNote appends an annotation to the notes field without overwriting
// whatever is already there.
func (inv *Investment) AppendNote(note string) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	if inv.Notes == nil || strings.TrimSpace(*inv.Notes) == "" {
		inv.Notes = &note
		return
	}
	joined := *inv.Notes + " " + note
	inv.Notes = &joined
}

// ProjectInvestmentStats is the derived capacity view over the ledger.
// It is recomputed on demand, never stored (drift-free by construction).
type ProjectInvestmentStats struct {
	TotalInvestments    int64   `json:"total_investments"`
	TotalUnitsInvested  int64   `json:"total_units_invested"`
	TotalAmountInvested float64 `json:"total_amount_invested"`
	ConfirmedUnits      int64   `json:"confirmed_units"`
	ConfirmedAmount     float64 `json:"confirmed_amount"`
	TotalBookedUnits    int64   `json:"total_booked_units"`
}

// AvailableUnits returns how many units remain investable against confirmed
// commitments only. Pending requests may collectively overbook up to this
// number; confirmation is where capacity becomes binding.
func (s *ProjectInvestmentStats) AvailableUnits(totalUnits int) int64 {
	return int64(totalUnits) - s.ConfirmedUnits
}

// DisplayAvailableUnits is the public-listing figure: capacity minus all
// booked (pending, confirmed, completed) units, floored at zero.
func (s *ProjectInvestmentStats) DisplayAvailableUnits(totalUnits int) int64 {
	avail := int64(totalUnits) - s.TotalBookedUnits
	if avail < 0 {
		return 0
	}
	return avail
}

// GetProjectInvestmentStats aggregates the ledger for one project. Cancelled
// rows are excluded everywhere; absence of rows yields zero-valued aggregates.
func GetProjectInvestmentStats(db *gorm.DB, projectID uint) (*ProjectInvestmentStats, error) {
	var stats ProjectInvestmentStats
	err := db.Model(&Investment{}).
		Select(`COUNT(*) AS total_investments,
			COALESCE(SUM(units_invested), 0) AS total_units_invested,
			COALESCE(SUM(total_amount), 0) AS total_amount_invested,
			COALESCE(SUM(CASE WHEN status IN ('confirmed','completed') THEN units_invested ELSE 0 END), 0) AS confirmed_units,
			COALESCE(SUM(CASE WHEN status IN ('confirmed','completed') THEN total_amount ELSE 0 END), 0) AS confirmed_amount,
			COALESCE(SUM(CASE WHEN status IN ('pending','confirmed','completed') THEN units_invested ELSE 0 END), 0) AS total_booked_units`).
		Where("project_id = ? AND status IN ('pending','confirmed','completed')", projectID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
