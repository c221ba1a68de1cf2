package admins

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/models"
	"github.com/K4Y35/krishibazar-backend/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func uploadFormImages(r *http.Request, prefix string) ([]string, error) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		return nil, errors.New("Invalid form data")
	}
	if r.MultipartForm == nil {
		return nil, errors.New("file is required")
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		return nil, errors.New("file is required")
	}
	if len(files) > 10 {
		return nil, errors.New("At most 10 images per upload")
	}

	keys := make([]string, 0, len(files))
	for i, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedImageExts[ext] {
			return nil, errors.New("Image must be JPG/PNG/WEBP")
		}
		if fh.Size > 5<<20 {
			return nil, errors.New("Image must be at most 5MB")
		}
		key := fmt.Sprintf("%s/%d_%d%s", prefix, time.Now().UnixNano(), i, ext)
		if err := uploadOne(fh, key); err != nil {
			return nil, errors.New("Failed to upload image")
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func uploadOne(fh *multipart.FileHeader, key string) error {
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	return utils.UploadMedia(key, f)
}

func appendKeys(existing *string, keys []string) string {
	joined := strings.Join(keys, ",")
	if existing == nil || strings.TrimSpace(*existing) == "" {
		return joined
	}
	return *existing + "," + joined
}

// POST /v1/admin/projects/{id}/upload
func UploadProjectImages(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var project models.Project
	if err := database.DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Project not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	keys, err := uploadFormImages(r, fmt.Sprintf("projects/%d", project.ID))
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}

	joined := appendKeys(project.ProjectImages, keys)
	if err := database.DB.Model(&project).Update("project_images", joined).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to save data"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Upload successful",
		Data:    map[string]interface{}{"keys": keys},
	})
}

// POST /v1/admin/products/{id}/upload
func UploadProductImages(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var product models.Product
	if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Product not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	keys, err := uploadFormImages(r, fmt.Sprintf("products/%d", product.ID))
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}

	joined := appendKeys(product.ProductImages, keys)
	if err := database.DB.Model(&product).Update("product_images", joined).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to save data"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Upload successful",
		Data:    map[string]interface{}{"keys": keys},
	})
}
