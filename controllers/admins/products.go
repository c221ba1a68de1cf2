package admins

import (
	"encoding/json"
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

type ProductRequest struct {
	Name            string  `json:"name" validate:"required"`
	Type            string  `json:"type"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	Quantity        int     `json:"quantity"`
	Unit            string  `json:"unit"`
	MinOrder        *int    `json:"min_order"`
	MaxOrder        *int    `json:"max_order"`
	ProductImages   string  `json:"product_images"`
	Description     string  `json:"description"`
	NutritionalInfo string  `json:"nutritional_info"`
	HarvestDate     *string `json:"harvest_date"`
	ShelfLife       string  `json:"shelf_life"`
	Farmer          string  `json:"farmer"`
	Certifications  string  `json:"certifications"`
}

// POST /v1/admin/products
func CreateProduct(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetAdminID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Validation failed", Data: err.Error()})
		return
	}
	if req.Price <= 0 || req.Quantity < 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "price must be positive and quantity non-negative"})
		return
	}

	product := models.Product{
		Name:      req.Name,
		Type:      req.Type,
		Category:  req.Category,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		MinOrder:  req.MinOrder,
		MaxOrder:  req.MaxOrder,
		InStock:   req.Quantity > 0,
		CreatedBy: adminID,
	}
	if product.Type == "" {
		product.Type = "product"
	}
	if product.Unit == "" {
		product.Unit = "unit"
	}
	setOptional(&product, &req)

	if err := database.DB.Create(&product).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create product"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Product created", Data: product})
}

func setOptional(product *models.Product, req *ProductRequest) {
	if s := strings.TrimSpace(req.ProductImages); s != "" {
		product.ProductImages = &s
	}
	if s := strings.TrimSpace(req.Description); s != "" {
		product.Description = &s
	}
	if s := strings.TrimSpace(req.NutritionalInfo); s != "" {
		product.NutritionalInfo = &s
	}
	if req.HarvestDate != nil {
		if t, err := time.Parse("2006-01-02", *req.HarvestDate); err == nil {
			product.HarvestDate = &t
		}
	}
	if s := strings.TrimSpace(req.ShelfLife); s != "" {
		product.ShelfLife = &s
	}
	if s := strings.TrimSpace(req.Farmer); s != "" {
		product.Farmer = &s
	}
	if s := strings.TrimSpace(req.Certifications); s != "" {
		product.Certifications = &s
	}
}

// PUT /v1/admin/products/{id}
func UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid product ID"})
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Validation failed", Data: err.Error()})
		return
	}
	if req.Price <= 0 || req.Quantity < 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "price must be positive and quantity non-negative"})
		return
	}

	db := database.DB
	var product models.Product
	if err := db.First(&product, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Product not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	product.Name = req.Name
	if req.Type != "" {
		product.Type = req.Type
	}
	product.Category = req.Category
	product.Price = req.Price
	product.Quantity = req.Quantity
	if req.Unit != "" {
		product.Unit = req.Unit
	}
	product.MinOrder = req.MinOrder
	product.MaxOrder = req.MaxOrder
	product.InStock = req.Quantity > 0
	setOptional(&product, &req)

	if err := db.Save(&product).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update product"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Product updated", Data: product})
}

// DELETE /v1/admin/products/{id}
func DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid product ID"})
		return
	}

	db := database.DB
	var product models.Product
	if err := db.First(&product, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Product not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var openOrders int64
	if err := db.Model(&models.Order{}).
		Where("product_id = ? AND order_status NOT IN ?", product.ID, []models.OrderStatus{models.OrderDelivered, models.OrderCancelled}).
		Count(&openOrders).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if openOrders > 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Products with open orders cannot be deleted"})
		return
	}

	if err := db.Delete(&product).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete product"})
		return
	}

	_ = utils.DeleteMediaList(product.ProductImages)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Product deleted"})
}
