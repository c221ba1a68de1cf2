package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/models"
	"github.com/K4Y35/krishibazar-backend/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// GET /v1/users/projects/{id}/updates
//
// Progress reports are visible only to investors holding a confirmed or
// completed position in the project.
func ListProjectUpdatesHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	projectID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || projectID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid project ID"})
		return
	}

	db := database.DB

	var holding models.Investment
	err = db.Where("user_id = ? AND project_id = ? AND status IN ?",
		uid, uint(projectID), []models.InvestmentStatus{models.InvestmentConfirmed, models.InvestmentCompleted}).
		First(&holding).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "Updates are available to confirmed investors only"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var updates []models.ProjectUpdate
	if err := db.Where("project_id = ?", uint(projectID)).Order("created_at DESC").Find(&updates).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: updates})
}
