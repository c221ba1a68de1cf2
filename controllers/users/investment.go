package users

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

type CreateInvestmentRequest struct {
	ProjectID        uint   `json:"project_id"`
	UnitsInvested    int    `json:"units_invested"`
	PaymentMethod    string `json:"payment_method"`
	PaymentReference string `json:"payment_reference"`
	Notes            string `json:"notes"`
}

// Sentinel errors used inside the create transaction so the handler can map
// rollback reasons to response codes.
var (
	errProjectNotFound  = errors.New("project_not_found")
	errProjectNotOpen   = errors.New("project_not_open")
	errCapacityExceeded = errors.New("capacity_exceeded")
)

// POST /v1/users/investments
//
// The project row is locked FOR UPDATE and the ledger aggregated inside the
// same transaction, so two concurrent requests cannot both pass the capacity
// check against stale confirmed totals. Pending requests may still overbook
// beyond confirmed capacity; confirmation is where the limit becomes binding.
func CreateInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req CreateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	if req.ProjectID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "project_id is required"})
		return
	}
	if req.UnitsInvested <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "units_invested must be greater than zero"})
		return
	}
	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "payment_method is required"})
		return
	}

	db := database.DB

	var user models.User
	if err := db.Select("id, is_approved, is_verified").First(&user, uid).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if !user.IsApproved {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "Your account must be approved before investing"})
		return
	}

	var paymentReference *string
	if s := strings.TrimSpace(req.PaymentReference); s != "" {
		paymentReference = &s
	}
	var notes *string
	if s := strings.TrimSpace(req.Notes); s != "" {
		notes = &s
	}

	var inv *models.Investment
	var availableUnits int64
	err := db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&project, req.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errProjectNotFound
			}
			return err
		}
		if project.Status != models.ProjectApproved {
			return errProjectNotOpen
		}

		stats, err := models.GetProjectInvestmentStats(tx, project.ID)
		if err != nil {
			return err
		}
		availableUnits = stats.AvailableUnits(project.TotalUnits)
		if int64(req.UnitsInvested) > availableUnits {
			return errCapacityExceeded
		}

		inv = models.NewInvestment(uid, &project, req.UnitsInvested, method, paymentReference, notes)
		return tx.Create(inv).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, errProjectNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Project not found"})
		case errors.Is(err, errProjectNotOpen):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Project is not open for investment"})
		case errors.Is(err, errCapacityExceeded):
			msg := fmt.Sprintf("Only %d unit(s) available for this project", availableUnits)
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: msg})
		default:
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create investment"})
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Investment request submitted. It will be active once payment is confirmed.",
		Data:    inv,
	})
}

// GET /v1/users/investments?status=
func ListInvestmentsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	db := database.DB
	query := db.Preload("Project").Where("user_id = ?", uid)

	if status := models.InvestmentStatus(r.URL.Query().Get("status")); status != "" {
		if !status.Valid() {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var rows []models.Investment
	if err := query.Order("id DESC").Find(&rows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: rows})
}

// GET /v1/users/investments/{id}
func GetInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid investment ID"})
		return
	}

	var row models.Investment
	if err := database.DB.Preload("Project").Where("id = ? AND user_id = ?", uint(id), uid).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Investment not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: row})
}

type CancelInvestmentRequest struct {
	Reason string `json:"reason"`
}

// PUT /v1/users/investments/{id}/cancel
//
// Investors may only cancel their own pending investments. Confirmed money is
// already working in the field; backing out of a confirmed position goes
// through an admin.
func CancelInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

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
	if err := db.Where("id = ? AND user_id = ?", uint(id), uid).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Investment not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if inv.Status != models.InvestmentPending {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Only pending investments can be cancelled"})
		return
	}

	inv.Status = models.InvestmentCancelled
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "Cancelled by investor"
	}
	inv.AppendNote(fmt.Sprintf("[Cancelled %s] %s", time.Now().Format("2006-01-02"), reason))

	if err := db.Save(&inv).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to cancel investment"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment cancelled", Data: inv})
}
