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

// GET /v1/users/investments/{id}/reports
//
// Periodic accountability reports for the project behind one of the caller's
// own investments. Ownership is checked on the investment, not the project,
// so the route leaks nothing about other investors' holdings.
func ListInvestmentReportsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	investmentID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || investmentID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid investment ID"})
		return
	}

	db := database.DB

	var inv models.Investment
	if err := db.Where("id = ? AND user_id = ?", uint(investmentID), uid).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Investment not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var reports []models.InvestmentReport
	if err := db.Where("project_id = ?", inv.ProjectID).
		Order("report_date DESC").
		Find(&reports).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data": reports,
			"investment": map[string]interface{}{
				"id":         inv.ID,
				"project_id": inv.ProjectID,
			},
		},
	})
}
