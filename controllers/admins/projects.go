package admins

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/models"
	"github.com/K4Y35/krishibazar-backend/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	FarmerName             string  `json:"farmer_name" validate:"required,nameok"`
	FarmerPhone            string  `json:"farmer_phone" validate:"required,phonebd"`
	FarmerAddress          string  `json:"farmer_address" validate:"required"`
	NidCardFront           string  `json:"nid_card_front"`
	NidCardBack            string  `json:"nid_card_back"`
	ProjectName            string  `json:"project_name" validate:"required"`
	ProjectImages          string  `json:"project_images"`
	PerUnitPrice           float64 `json:"per_unit_price"`
	TotalReturnablePerUnit float64 `json:"total_returnable_per_unit"`
	ProjectDuration        int     `json:"project_duration"`
	TotalUnits             int     `json:"total_units"`
	WhyFundWithKrishibazar string  `json:"why_fund_with_krishibazar"`
	EarningPercentage      float64 `json:"earning_percentage"`
	CategoryID             *uint   `json:"category_id"`
}

// POST /v1/admin/projects
//
// Admins create projects on behalf of farmers; media keys come from the
// upload endpoint. New projects start pending and must be approved before
// they appear publicly.
func CreateProject(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetAdminID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Validation failed", Data: err.Error()})
		return
	}
	if req.PerUnitPrice <= 0 || req.TotalUnits <= 0 || req.ProjectDuration <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "per_unit_price, total_units and project_duration must be greater than zero"})
		return
	}
	if req.TotalReturnablePerUnit < req.PerUnitPrice {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "total_returnable_per_unit cannot be below per_unit_price"})
		return
	}

	project := models.Project{
		FarmerName:             req.FarmerName,
		FarmerPhone:            req.FarmerPhone,
		FarmerAddress:          req.FarmerAddress,
		ProjectName:            req.ProjectName,
		PerUnitPrice:           req.PerUnitPrice,
		TotalReturnablePerUnit: req.TotalReturnablePerUnit,
		ProjectDuration:        req.ProjectDuration,
		TotalUnits:             req.TotalUnits,
		WhyFundWithKrishibazar: req.WhyFundWithKrishibazar,
		EarningPercentage:      req.EarningPercentage,
		CategoryID:             req.CategoryID,
		Status:                 models.ProjectPending,
		CreatedBy:              adminID,
	}
	if s := strings.TrimSpace(req.NidCardFront); s != "" {
		project.NidCardFront = &s
	}
	if s := strings.TrimSpace(req.NidCardBack); s != "" {
		project.NidCardBack = &s
	}
	if s := strings.TrimSpace(req.ProjectImages); s != "" {
		project.ProjectImages = &s
	}

	if err := database.DB.Create(&project).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create project"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Project created", Data: project})
}

// GET /v1/admin/projects?status=&page=&limit=
func GetProjects(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	db := database.DB
	query := db.Model(&models.Project{})
	if status := models.ProjectStatus(r.URL.Query().Get("status")); status != "" {
		if !status.Valid() {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		query = query.Where("project_name LIKE ? OR farmer_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var projects []models.Project
	if err := query.Preload("Category").Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&projects).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data":       projects,
			"pagination": utils.NewPagination(page, limit, totalRows),
		},
	})
}

// GET /v1/admin/projects/{id}
func GetProjectDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid project ID"})
		return
	}

	db := database.DB
	var project models.Project
	if err := db.Preload("Category").First(&project, uint(id)).Error; err != nil {
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
			"project": project,
			"stats":   stats,
		},
	})
}

type UpdateProjectRequest struct {
	FarmerName             *string  `json:"farmer_name"`
	FarmerPhone            *string  `json:"farmer_phone"`
	FarmerAddress          *string  `json:"farmer_address"`
	ProjectName            *string  `json:"project_name"`
	ProjectImages          *string  `json:"project_images"`
	PerUnitPrice           *float64 `json:"per_unit_price"`
	TotalReturnablePerUnit *float64 `json:"total_returnable_per_unit"`
	ProjectDuration        *int     `json:"project_duration"`
	TotalUnits             *int     `json:"total_units"`
	WhyFundWithKrishibazar *string  `json:"why_fund_with_krishibazar"`
	EarningPercentage      *float64 `json:"earning_percentage"`
	CategoryID             *uint    `json:"category_id"`
}

// PUT /v1/admin/projects/{id}
//
// Funding terms (prices, units, duration) freeze once the project leaves
// pending; investors hold snapshots taken against those terms.
func UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid project ID"})
		return
	}

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	db := database.DB
	var project models.Project
	if err := db.First(&project, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Project not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	fields := models.ProjectUpdateFields{
		FarmerName:             req.FarmerName,
		FarmerPhone:            req.FarmerPhone,
		FarmerAddress:          req.FarmerAddress,
		ProjectName:            req.ProjectName,
		ProjectImages:          req.ProjectImages,
		WhyFundWithKrishibazar: req.WhyFundWithKrishibazar,
		CategoryID:             req.CategoryID,
	}
	if project.Status == models.ProjectPending {
		fields.PerUnitPrice = req.PerUnitPrice
		fields.TotalReturnablePerUnit = req.TotalReturnablePerUnit
		fields.ProjectDuration = req.ProjectDuration
		fields.TotalUnits = req.TotalUnits
		fields.EarningPercentage = req.EarningPercentage
	} else if req.PerUnitPrice != nil || req.TotalReturnablePerUnit != nil ||
		req.ProjectDuration != nil || req.TotalUnits != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Funding terms can only be changed while the project is pending"})
		return
	}

	changes := fields.Changes()
	if len(changes) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "No fields to update"})
		return
	}

	if err := db.Model(&project).Updates(changes).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update project"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Project updated", Data: project})
}

// transitionProject performs a guarded single-row status UPDATE: the WHERE
// clause carries the expected current status, so a concurrent transition
// makes this one a no-op instead of silently overwriting it.
func transitionProject(db *gorm.DB, id uint, from, to models.ProjectStatus, extra map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	res := db.Model(&models.Project{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func projectLifecycleHandler(w http.ResponseWriter, r *http.Request, from, to models.ProjectStatus, extra map[string]interface{}, okMessage, failMessage string) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid project ID"})
		return
	}

	db := database.DB
	var project models.Project
	if err := db.First(&project, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Project not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	ok, err := transitionProject(db, uint(id), from, to, extra)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: failMessage})
		return
	}

	db.First(&project, uint(id))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: okMessage, Data: project})
}

// PUT /v1/admin/projects/{id}/approve
func ApproveProject(w http.ResponseWriter, r *http.Request) {
	adminID, _ := utils.GetAdminID(r)
	now := time.Now()
	projectLifecycleHandler(w, r,
		models.ProjectPending, models.ProjectApproved,
		map[string]interface{}{"approved_by": adminID, "approved_at": now},
		"Project approved", "Only pending projects can be approved")
}

type RejectProjectRequest struct {
	Reason string `json:"reason"`
}

// PUT /v1/admin/projects/{id}/reject
func RejectProject(w http.ResponseWriter, r *http.Request) {
	var req RejectProjectRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "A rejection reason is required"})
		return
	}
	projectLifecycleHandler(w, r,
		models.ProjectPending, models.ProjectRejected,
		map[string]interface{}{"rejection_reason": reason},
		"Project rejected", "Only pending projects can be rejected")
}

// PUT /v1/admin/projects/{id}/start
func StartProject(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	projectLifecycleHandler(w, r,
		models.ProjectApproved, models.ProjectRunning,
		map[string]interface{}{"started_at": now},
		"Project started", "Only approved projects can be started")
}

// PUT /v1/admin/projects/{id}/complete
func CompleteProject(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	projectLifecycleHandler(w, r,
		models.ProjectRunning, models.ProjectCompleted,
		map[string]interface{}{"completed_at": now},
		"Project completed", "Only running projects can be completed")
}

// PUT /v1/admin/projects/{id}/cancel
func CancelProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid project ID"})
		return
	}

	db := database.DB
	var project models.Project
	if err := db.First(&project, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Project not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if !project.Status.CanTransitionTo(models.ProjectCancelled) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "This project cannot be cancelled from its current status"})
		return
	}

	ok, err := transitionProject(db, uint(id), project.Status, models.ProjectCancelled, nil)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "This project cannot be cancelled from its current status"})
		return
	}

	db.First(&project, uint(id))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Project cancelled", Data: project})
}

// DELETE /v1/admin/projects/{id}
//
// Allowed only while no non-cancelled investments reference the project.
// Associated media objects are removed best-effort.
func DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid project ID"})
		return
	}

	db := database.DB
	var project models.Project
	if err := db.First(&project, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Project not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var activeInvestments int64
	if err := db.Model(&models.Investment{}).
		Where("project_id = ? AND status != ?", project.ID, models.InvestmentCancelled).
		Count(&activeInvestments).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if activeInvestments > 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Projects with active investments cannot be deleted"})
		return
	}

	if err := db.Delete(&project).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete project"})
		return
	}

	_ = utils.DeleteMediaList(project.ProjectImages)
	if project.NidCardFront != nil {
		_ = utils.DeleteMedia(*project.NidCardFront)
	}
	if project.NidCardBack != nil {
		_ = utils.DeleteMedia(*project.NidCardBack)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Project deleted"})
}
