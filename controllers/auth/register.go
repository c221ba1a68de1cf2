package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/middleware"
	"github.com/K4Y35/krishibazar-backend/models"
	"github.com/K4Y35/krishibazar-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	FirstName       string `json:"first_name" validate:"required,nameok"`
	LastName        string `json:"last_name" validate:"required,nameok"`
	Phone           string `json:"phone" validate:"required,phonebd"`
	Email           string `json:"email" validate:"required,emailok"`
	Password        string `json:"password" validate:"required,pwdmin"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	NidFront        string `json:"nid_front"`
	NidBack         string `json:"nid_back"`
}

// RegisterHandler creates a new investor account. Accounts start unapproved;
// an admin reviews the NID images before the user may invest.
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	db := database.DB

	var existing models.User
	err := db.Where("phone = ? OR email = ?", req.Phone, req.Email).First(&existing).Error
	if err == nil {
		msg := "Phone number already registered"
		if strings.EqualFold(existing.Email, req.Email) {
			msg = "Email already registered"
		}
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: msg})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     strings.ToLower(req.Email),
		Password:  string(hashed),
	}
	if req.NidFront != "" {
		user.NidFront = &req.NidFront
	}
	if req.NidBack != "" {
		user.NidBack = &req.NidBack
	}

	if err := db.Create(&user).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create account"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Registration successful. Your account is pending admin approval.",
		Data: map[string]interface{}{
			"id":          user.ID,
			"first_name":  user.FirstName,
			"last_name":   user.LastName,
			"phone":       user.Phone,
			"email":       user.Email,
			"is_approved": user.IsApproved,
		},
	})
}
