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

// GET /v1/products?category=&type=&search=&in_stock=&page=&limit=
func ProductListHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}

	query := db.Model(&models.Product{})
	if category := r.URL.Query().Get("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if ptype := r.URL.Query().Get("type"); ptype != "" {
		query = query.Where("type = ?", ptype)
	}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if r.URL.Query().Get("in_stock") == "true" {
		query = query.Where("in_stock = ?", true)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var products []models.Product
	if err := query.Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&products).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data":       products,
			"pagination": utils.NewPagination(page, limit, totalRows),
		},
	})
}

// GET /v1/products/{id}
func ProductDetailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid product ID"})
		return
	}

	var product models.Product
	if err := database.DB.First(&product, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Product not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: product})
}

// GET /v1/categories
func CategoryListHandler(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	if err := database.DB.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: categories})
}
