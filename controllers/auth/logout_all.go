package auth

import (
	"net/http"

	"github.com/K4Y35/krishibazar-backend/utils"
)

// LogoutAllHandler revokes every refresh token belonging to the authenticated
// user, ending all of their sessions.
func LogoutAllHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	if err := utils.RevokeAllRefreshTokens(uid); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "All sessions logged out"})
}
