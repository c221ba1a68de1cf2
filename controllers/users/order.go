package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/models"
	"github.com/K4Y35/krishibazar-backend/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateOrderRequest struct {
	ProductID       uint   `json:"product_id"`
	OrderQuantity   int    `json:"order_quantity"`
	CustomerName    string `json:"customer_name" validate:"required,nameok"`
	CustomerPhone   string `json:"customer_phone" validate:"required,phonebd"`
	CustomerEmail   string `json:"customer_email" validate:"emailok"`
	DeliveryAddress string `json:"delivery_address" validate:"required"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes"`
}

var (
	errProductNotFound   = errors.New("product_not_found")
	errInsufficientStock = errors.New("insufficient_stock")
	errOrderBounds       = errors.New("order_bounds")
)

// POST /v1/users/orders
//
// Unit price and total are snapshotted from the product at order time, and the
// product row is locked so stock cannot go negative under concurrent orders.
func CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Validation failed", Data: err.Error()})
		return
	}
	if req.ProductID == 0 || req.OrderQuantity <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "product_id and a positive order_quantity are required"})
		return
	}

	paymentMethod := strings.TrimSpace(req.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = "cash_on_delivery"
	}

	var boundsMsg string
	var order *models.Order
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errProductNotFound
			}
			return err
		}
		if !product.InStock || product.Quantity < req.OrderQuantity {
			return errInsufficientStock
		}
		if product.MinOrder != nil && req.OrderQuantity < *product.MinOrder {
			boundsMsg = fmt.Sprintf("Minimum order for this product is %d %s", *product.MinOrder, product.Unit)
			return errOrderBounds
		}
		if product.MaxOrder != nil && req.OrderQuantity > *product.MaxOrder {
			boundsMsg = fmt.Sprintf("Maximum order for this product is %d %s", *product.MaxOrder, product.Unit)
			return errOrderBounds
		}

		order = &models.Order{
			UserID:          uid,
			ProductID:       product.ID,
			OrderQuantity:   req.OrderQuantity,
			UnitPrice:       product.Price,
			TotalPrice:      product.Price * float64(req.OrderQuantity),
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			DeliveryAddress: req.DeliveryAddress,
			PaymentMethod:   paymentMethod,
			OrderStatus:     models.OrderPending,
			PaymentStatus:   models.PaymentPending,
		}
		if s := strings.TrimSpace(req.CustomerEmail); s != "" {
			order.CustomerEmail = &s
		}
		if s := strings.TrimSpace(req.Notes); s != "" {
			order.Notes = &s
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", req.OrderQuantity),
		}
		if product.Quantity-req.OrderQuantity <= 0 {
			updates["in_stock"] = false
		}
		return tx.Model(&models.Product{}).Where("id = ?", product.ID).Updates(updates).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, errProductNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Product not found"})
		case errors.Is(err, errInsufficientStock):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Not enough stock for this product"})
		case errors.Is(err, errOrderBounds):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: boundsMsg})
		default:
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create order"})
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Order placed successfully", Data: order})
}

// GET /v1/users/orders
func ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	query := database.DB.Preload("Product").Where("user_id = ?", uid)
	if status := models.OrderStatus(r.URL.Query().Get("status")); status != "" {
		if !status.Valid() {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid status filter"})
			return
		}
		query = query.Where("order_status = ?", status)
	}

	var rows []models.Order
	if err := query.Order("id DESC").Find(&rows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: rows})
}

// GET /v1/users/orders/{id}
func GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid order ID"})
		return
	}

	var row models.Order
	if err := database.DB.Preload("Product").Where("id = ? AND user_id = ?", uint(id), uid).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Order not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: row})
}
