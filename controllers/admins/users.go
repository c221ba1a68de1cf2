package admins

import (
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

// GET /v1/admin/users?approved=&search=&page=&limit=
func GetUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	db := database.DB
	query := db.Model(&models.User{})
	if approved := r.URL.Query().Get("approved"); approved != "" {
		query = query.Where("is_approved = ?", approved == "true")
	}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like, like)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var users []models.User
	if err := query.Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&users).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data":       users,
			"pagination": utils.NewPagination(page, limit, totalRows),
		},
	})
}

// GET /v1/admin/users/{id}
func GetUserDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user ID"})
		return
	}

	db := database.DB
	var user models.User
	if err := db.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	// signed NID URLs so the reviewing admin can inspect documents
	nidFront := ""
	nidBack := ""
	if user.NidFront != nil {
		nidFront, _ = utils.MediaSignedURL(*user.NidFront, 3600)
	}
	if user.NidBack != nil {
		nidBack, _ = utils.MediaSignedURL(*user.NidBack, 3600)
	}

	var investments []models.Investment
	_ = db.Preload("Project").Where("user_id = ?", user.ID).Order("id DESC").Find(&investments).Error

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"user":        user,
			"nid_front":   nidFront,
			"nid_back":    nidBack,
			"investments": investments,
		},
	})
}

// PUT /v1/admin/users/{id}/approve
//
// Approving also marks the user verified; the NID review covers both.
func ApproveUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user ID"})
		return
	}

	db := database.DB
	var user models.User
	if err := db.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if user.IsApproved {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "User is already approved"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_approved": true,
		"is_verified": true,
		"verified_at": now,
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to approve user"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "User approved", Data: user})
}
