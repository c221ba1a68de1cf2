package admins

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/models"
	"github.com/K4Y35/krishibazar-backend/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type ProjectUpdateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	UpdateType  string `json:"update_type"`
	Images      string `json:"images"`
}

// POST /v1/admin/projects/{id}/updates
//
// Publishes a progress report and emails every investor holding a confirmed
// or completed position in the project. Sending is fire-and-forget.
func CreateProjectUpdate(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetAdminID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	projectID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || projectID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid project ID"})
		return
	}

	var req ProjectUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Validation failed", Data: err.Error()})
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

	update := models.ProjectUpdate{
		ProjectID:   project.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		UpdateType:  req.UpdateType,
		CreatedBy:   adminID,
	}
	if update.UpdateType == "" {
		update.UpdateType = "general"
	}
	if s := strings.TrimSpace(req.Images); s != "" {
		update.Images = &s
	}

	if err := db.Create(&update).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create project update"})
		return
	}

	notifyProjectInvestors(&project, &update)

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Project update published", Data: update})
}

// GET /v1/admin/projects/{id}/updates
func GetProjectUpdates(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || projectID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid project ID"})
		return
	}

	var updates []models.ProjectUpdate
	if err := database.DB.Where("project_id = ?", uint(projectID)).Order("created_at DESC").Find(&updates).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: updates})
}

func notifyProjectInvestors(project *models.Project, update *models.ProjectUpdate) {
	var investors []models.User
	err := database.DB.Model(&models.User{}).
		Joins("JOIN investments ON investments.user_id = users.id").
		Where("investments.project_id = ? AND investments.status IN ?",
			project.ID, []models.InvestmentStatus{models.InvestmentConfirmed, models.InvestmentCompleted}).
		Distinct("users.*").
		Find(&investors).Error
	if err != nil {
		return
	}
	for _, investor := range investors {
		utils.NotifyProjectUpdate(investor.Email, investor.FullName(), project.ProjectName, update.Title, update.Description)
	}
}
