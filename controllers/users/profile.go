package users

import (
	"net/http"

	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/models"
	"github.com/K4Y35/krishibazar-backend/utils"
)

// GET /v1/users/profile
func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, uid).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	// signed URLs let the owner review their own NID uploads
	nidFront := ""
	nidBack := ""
	if user.NidFront != nil {
		nidFront, _ = utils.MediaSignedURL(*user.NidFront, 3600)
	}
	if user.NidBack != nil {
		nidBack, _ = utils.MediaSignedURL(*user.NidBack, 3600)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"id":          user.ID,
			"first_name":  user.FirstName,
			"last_name":   user.LastName,
			"phone":       user.Phone,
			"email":       user.Email,
			"nid_front":   nidFront,
			"nid_back":    nidBack,
			"is_verified": user.IsVerified,
			"is_approved": user.IsApproved,
			"created_at":  user.CreatedAt,
		},
	})
}
