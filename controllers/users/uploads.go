package users

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/models"
	"github.com/K4Y35/krishibazar-backend/utils"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// POST /v1/users/nid/upload
//
// Multipart form with a "side" field (front|back) and a "file" image.
// The object key is stored on the user; re-uploading a side replaces
// the previous object.
func UploadNidHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid form data"})
		return
	}

	side := strings.TrimSpace(r.FormValue("side"))
	if side != "front" && side != "back" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "side must be front or back"})
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil || handler == nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "file is required"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(handler.Filename))
	if !allowedImageExts[ext] {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Image must be JPG/PNG/WEBP"})
		return
	}
	if handler.Size > 5<<20 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Image must be at most 5MB"})
		return
	}

	db := database.DB
	var user models.User
	if err := db.First(&user, uid).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	objectKey := fmt.Sprintf("nid/%d_%s_%d%s", uid, side, time.Now().Unix(), ext)
	if err := utils.UploadMedia(objectKey, file); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to upload image"})
		return
	}

	var previous *string
	if side == "front" {
		previous = user.NidFront
		user.NidFront = &objectKey
	} else {
		previous = user.NidBack
		user.NidBack = &objectKey
	}
	if err := db.Save(&user).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to save data"})
		return
	}
	if previous != nil {
		_ = utils.DeleteMedia(*previous)
	}

	url, _ := utils.MediaSignedURL(objectKey, 3600)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Upload successful",
		Data: map[string]interface{}{
			"side": side,
			"url":  url,
		},
	})
}
