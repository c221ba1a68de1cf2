package controllers

import (
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

// projectView is the public shape of a project: the stored row plus the
// derived capacity figures.
type projectView struct {
	models.Project
	TotalUnitsInvested  int64   `json:"total_units_invested"`
	TotalAmountInvested float64 `json:"total_amount_invested"`
	ConfirmedUnits      int64   `json:"confirmed_units"`
	AvailableUnits      int64   `json:"available_units"`
	TotalInvestments    int64   `json:"total_investments"`
}

func newProjectView(p models.Project, stats *models.ProjectInvestmentStats) projectView {
	return projectView{
		Project:             p,
		TotalUnitsInvested:  stats.TotalUnitsInvested,
		TotalAmountInvested: stats.TotalAmountInvested,
		ConfirmedUnits:      stats.ConfirmedUnits,
		AvailableUnits:      stats.DisplayAvailableUnits(p.TotalUnits),
		TotalInvestments:    stats.TotalInvestments,
	}
}

// GET /v1/projects?category_id=&page=&limit=
//
// Lists approved and running projects with per-project capacity figures.
func ProjectListHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}

	query := db.Model(&models.Project{}).
		Where("status IN ?", []models.ProjectStatus{models.ProjectApproved, models.ProjectRunning})
	if categoryID := r.URL.Query().Get("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		query = query.Where("project_name LIKE ?", "%"+search+"%")
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

	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		stats, err := models.GetProjectInvestmentStats(db, p.ID)
		if err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
			return
		}
		views = append(views, newProjectView(p, stats))
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data":       views,
			"pagination": utils.NewPagination(page, limit, totalRows),
		},
	})
}

// GET /v1/projects/{id}
//
// Only approved or running projects are publicly visible; everything else is a 404.
func ProjectDetailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid project ID"})
		return
	}

	db := database.DB
	var project models.Project
	err = db.Preload("Category").
		Where("id = ? AND status IN ?", uint(id), []models.ProjectStatus{models.ProjectApproved, models.ProjectRunning}).
		First(&project).Error
	if err != nil {
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

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: newProjectView(project, stats)})
}
