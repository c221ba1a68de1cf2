package admins

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/models"
	"github.com/K4Y35/krishibazar-backend/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvestmentResponse struct {
	ID                   uint     `json:"id"`
	UserID               uint     `json:"user_id"`
	UserName             string   `json:"user_name"`
	Phone                string   `json:"phone"`
	Email                string   `json:"email"`
	ProjectID            uint     `json:"project_id"`
	ProjectName          string   `json:"project_name"`
	UnitsInvested        int      `json:"units_invested"`
	AmountPerUnit        float64  `json:"amount_per_unit"`
	TotalAmount          float64  `json:"total_amount"`
	ExpectedReturnAmount float64  `json:"expected_return_amount"`
	Status               string   `json:"status"`
	PaymentStatus        string   `json:"payment_status"`
	PaymentReference     *string  `json:"payment_reference,omitempty"`
	PaymentMethod        *string  `json:"payment_method,omitempty"`
	PaymentDate          string   `json:"payment_date,omitempty"`
	ReturnReceived       *float64 `json:"return_received,omitempty"`
	ReturnDate           string   `json:"return_date,omitempty"`
	Notes                *string  `json:"notes,omitempty"`
	CreatedAt            string   `json:"created_at"`
}

type investmentRow struct {
	models.Investment
	ProjectName string
	FirstName   string
	LastName    string
	Phone       string
	Email       string
}

func toInvestmentResponse(row investmentRow) InvestmentResponse {
	return InvestmentResponse{
		ID:                   row.ID,
		UserID:               row.UserID,
		UserName:             strings.TrimSpace(row.FirstName + " " + row.LastName),
		Phone:                row.Phone,
		Email:                row.Email,
		ProjectID:            row.ProjectID,
		ProjectName:          row.ProjectName,
		UnitsInvested:        row.UnitsInvested,
		AmountPerUnit:        row.AmountPerUnit,
		TotalAmount:          row.TotalAmount,
		ExpectedReturnAmount: row.ExpectedReturnAmount,
		Status:               string(row.Status),
		PaymentStatus:        string(row.PaymentStatus),
		PaymentReference:     row.PaymentReference,
		PaymentMethod:        row.PaymentMethod,
		PaymentDate:          formatTimePtr(row.PaymentDate),
		ReturnReceived:       row.ReturnReceived,
		ReturnDate:           formatTimePtr(row.ReturnDate),
		Notes:                row.Notes,
		CreatedAt:            row.CreatedAt.Format(time.RFC3339),
	}
}

// GET /v1/admin/investments?status=&payment_status=&user_id=&project_id=&page=&limit=
func GetInvestments(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.DB
	query := db.Model(&models.Investment{}).
		Joins("JOIN projects ON investments.project_id = projects.id").
		Joins("JOIN users ON investments.user_id = users.id")

	if status := models.InvestmentStatus(r.URL.Query().Get("status")); status != "" {
		if !status.Valid() {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid status filter"})
			return
		}
		query = query.Where("investments.status = ?", status)
	}
	if ps := r.URL.Query().Get("payment_status"); ps != "" {
		query = query.Where("investments.payment_status = ?", ps)
	}
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		query = query.Where("investments.user_id = ?", userID)
	}
	if projectID := r.URL.Query().Get("project_id"); projectID != "" {
		query = query.Where("investments.project_id = ?", projectID)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var rows []investmentRow
	err := query.
		Select("investments.*, projects.project_name as project_name, users.first_name, users.last_name, users.phone, users.email").
		Order("investments.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	response := make([]InvestmentResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, toInvestmentResponse(row))
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data":       response,
			"pagination": utils.NewPagination(page, limit, totalRows),
		},
	})
}

// GET /v1/admin/investments/{id}
func GetInvestmentDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid investment ID"})
		return
	}

	var row investmentRow
	err = database.DB.Model(&models.Investment{}).
		Joins("JOIN projects ON investments.project_id = projects.id").
		Joins("JOIN users ON investments.user_id = users.id").
		Select("investments.*, projects.project_name as project_name, users.first_name, users.last_name, users.phone, users.email").
		Where("investments.id = ?", uint(id)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Investment not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: toInvestmentResponse(row)})
}

type ConfirmInvestmentRequest struct {
	PaymentReference string `json:"payment_reference"`
	PaymentMethod    string `json:"payment_method"`
}

var errAlreadyDecided = errors.New("already_decided")

// PUT /v1/admin/investments/{id}/confirm
//
// Confirms a pending investment after payment is verified. If the investor
// already holds a confirmed entry in the same project, the pending entry's
// units and amounts are folded into it and the pending row is deleted, so
// there is never more than one confirmed row per investor and project. The
// merge and the delete are one transaction.
func ConfirmInvestment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid investment ID"})
		return
	}

	var req ConfirmInvestmentRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	db := database.DB

	var inv models.Investment
	if err := db.First(&inv, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Investment not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if inv.Status != models.InvestmentPending {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Only pending investments can be confirmed"})
		return
	}

	now := time.Now()
	reference := strings.TrimSpace(req.PaymentReference)
	if reference == "" {
		reference = utils.GeneratePaymentReference(inv.UserID)
	}
	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" && inv.PaymentMethod != nil {
		method = *inv.PaymentMethod
	}

	var result *models.Investment
	merged := false
	err = db.Transaction(func(tx *gorm.DB) error {
		// re-read with a row lock; a consistent-read snapshot would not see
		// a concurrent confirm, so a racing admin loses here instead
		var candidate models.Investment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&candidate, inv.ID).Error; err != nil {
			return err
		}
		if candidate.Status != models.InvestmentPending {
			return errAlreadyDecided
		}

		// lock the confirmed row too: two merges into it must serialize, or
		// the second would compute its totals from a stale snapshot
		var existing models.Investment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND project_id = ? AND status = ? AND id != ?",
				candidate.UserID, candidate.ProjectID, models.InvestmentConfirmed, candidate.ID).
			First(&existing).Error
		switch {
		case err == nil:
			candidate.MergeInto(&existing)
			existing.PaymentReference = &reference
			if method != "" {
				existing.PaymentMethod = &method
			}
			existing.PaymentDate = &now
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			if err := tx.Delete(&candidate).Error; err != nil {
				return err
			}
			result = &existing
			merged = true
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			candidate.Status = models.InvestmentConfirmed
			candidate.PaymentStatus = models.PaymentPaid
			candidate.PaymentReference = &reference
			if method != "" {
				candidate.PaymentMethod = &method
			}
			candidate.PaymentDate = &now
			if err := tx.Save(&candidate).Error; err != nil {
				return err
			}
			result = &candidate
			return nil
		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, errAlreadyDecided) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Only pending investments can be confirmed"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to confirm investment"})
		return
	}

	notifyInvestmentConfirmed(result)

	message := "Investment confirmed"
	if merged {
		message = "Investment confirmed and merged into existing holding"
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: message, Data: result})
}

type CancelInvestmentRequest struct {
	Reason string `json:"reason"`
}

// PUT /v1/admin/investments/{id}/cancel
//
// Admins may cancel pending or confirmed investments; completed ones are
// settled history and stay untouched.
func CancelInvestment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid investment ID"})
		return
	}

	var req CancelInvestmentRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	db := database.DB
	var inv models.Investment
	if err := db.First(&inv, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Investment not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if !inv.Status.CanTransitionTo(models.InvestmentCancelled) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Completed or cancelled investments cannot be cancelled"})
		return
	}

	inv.Status = models.InvestmentCancelled
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "Cancelled by admin"
	}
	inv.AppendNote(fmt.Sprintf("[Cancelled %s] %s", time.Now().Format("2006-01-02"), reason))

	if err := db.Save(&inv).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to cancel investment"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment cancelled", Data: inv})
}

type CompleteInvestmentRequest struct {
	ReturnAmount float64 `json:"return_amount"`
}

// PUT /v1/admin/investments/{id}/complete
//
// Marks a confirmed investment as paid out, recording the actual return
// (which may differ from the expected return).
func CompleteInvestment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid investment ID"})
		return
	}

	var req CompleteInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if req.ReturnAmount < 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "return_amount cannot be negative"})
		return
	}

	db := database.DB
	var inv models.Investment
	if err := db.First(&inv, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Investment not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if inv.Status != models.InvestmentConfirmed {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Only confirmed investments can be completed"})
		return
	}

	now := time.Now()
	inv.Status = models.InvestmentCompleted
	inv.ReturnReceived = &req.ReturnAmount
	inv.ReturnDate = &now

	if err := db.Save(&inv).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to complete investment"})
		return
	}

	notifyInvestmentCompleted(&inv)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment completed", Data: inv})
}

// GET /v1/admin/investments/stats?project_id=
func GetInvestmentStats(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseUint(r.URL.Query().Get("project_id"), 10, 32)
	if err != nil || projectID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "project_id is required"})
		return
	}

	db := database.DB
	var project models.Project
	if err := db.First(&project, uint(projectID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Project not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	stats, err := models.GetProjectInvestmentStats(db, project.ID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"project_id":            project.ID,
			"project_name":          project.ProjectName,
			"total_units":           project.TotalUnits,
			"total_investments":     stats.TotalInvestments,
			"total_units_invested":  stats.TotalUnitsInvested,
			"total_amount_invested": stats.TotalAmountInvested,
			"confirmed_units":       stats.ConfirmedUnits,
			"confirmed_amount":      stats.ConfirmedAmount,
			"available_units":       stats.AvailableUnits(project.TotalUnits),
		},
	})
}

func notifyInvestmentConfirmed(inv *models.Investment) {
	var user models.User
	var project models.Project
	if err := database.DB.First(&user, inv.UserID).Error; err != nil {
		return
	}
	if err := database.DB.First(&project, inv.ProjectID).Error; err != nil {
		return
	}
	utils.NotifyInvestmentConfirmed(user.Email, user.FullName(), project.ProjectName, inv.UnitsInvested, inv.TotalAmount)
}

func notifyInvestmentCompleted(inv *models.Investment) {
	var user models.User
	var project models.Project
	if err := database.DB.First(&user, inv.UserID).Error; err != nil {
		return
	}
	if err := database.DB.First(&project, inv.ProjectID).Error; err != nil {
		return
	}
	returned := inv.ExpectedReturnAmount
	if inv.ReturnReceived != nil {
		returned = *inv.ReturnReceived
	}
	utils.NotifyInvestmentCompleted(user.Email, user.FullName(), project.ProjectName, returned)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
