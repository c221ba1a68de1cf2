package admins

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/models"
	"github.com/K4Y35/krishibazar-backend/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// GET /v1/admin/orders?status=&payment_status=&page=&limit=
func GetOrders(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	db := database.DB
	query := db.Model(&models.Order{})
	if status := models.OrderStatus(r.URL.Query().Get("status")); status != "" {
		if !status.Valid() {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid status filter"})
			return
		}
		query = query.Where("order_status = ?", status)
	}
	if ps := r.URL.Query().Get("payment_status"); ps != "" {
		query = query.Where("payment_status = ?", ps)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var orders []models.Order
	if err := query.Preload("Product").Preload("User").Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&orders).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data":       orders,
			"pagination": utils.NewPagination(page, limit, totalRows),
		},
	})
}

// GET /v1/admin/orders/{id}
func GetOrderDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid order ID"})
		return
	}

	var order models.Order
	if err := database.DB.Preload("Product").Preload("User").First(&order, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Order not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: order})
}

type UpdateOrderStatusRequest struct {
	OrderStatus   string `json:"order_status"`
	PaymentStatus string `json:"payment_status"`
}

// PUT /v1/admin/orders/{id}/status
//
// Order status follows the fulfilment transition table; cancelling restores
// the reserved stock. Confirmation stamps the acting admin.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	adminID, _ := utils.GetAdminID(r)

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid order ID"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if req.OrderStatus == "" && req.PaymentStatus == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Nothing to update"})
		return
	}

	db := database.DB
	var order models.Order
	if err := db.First(&order, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Order not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if req.OrderStatus != "" {
			target := models.OrderStatus(req.OrderStatus)
			if !target.Valid() {
				return errInvalidStatus
			}
			if !order.OrderStatus.CanTransitionTo(target) {
				return errInvalidTransition
			}
			order.OrderStatus = target
			switch target {
			case models.OrderConfirmed:
				now := time.Now()
				order.ConfirmedBy = &adminID
				order.ConfirmedAt = &now
			case models.OrderCancelled:
				// return reserved stock
				if err := tx.Model(&models.Product{}).Where("id = ?", order.ProductID).
					Updates(map[string]interface{}{
						"quantity": gorm.Expr("quantity + ?", order.OrderQuantity),
						"in_stock": true,
					}).Error; err != nil {
					return err
				}
			}
		}
		if req.PaymentStatus != "" {
			ps := models.PaymentStatus(req.PaymentStatus)
			if ps != models.PaymentPending && ps != models.PaymentPaid {
				return errInvalidStatus
			}
			order.PaymentStatus = ps
		}
		return tx.Save(&order).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, errInvalidStatus):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid status value"})
		case errors.Is(err, errInvalidTransition):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Order cannot move to that status from its current one"})
		default:
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update order"})
		}
		return
	}

	notifyOrderStatus(&order)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Order updated", Data: order})
}

var (
	errInvalidStatus     = errors.New("invalid_status")
	errInvalidTransition = errors.New("invalid_transition")
)

// DELETE /v1/admin/orders/{id}
func DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid order ID"})
		return
	}

	db := database.DB
	var order models.Order
	if err := db.First(&order, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Order not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if order.OrderStatus != models.OrderCancelled && order.OrderStatus != models.OrderDelivered {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Only cancelled or delivered orders can be deleted"})
		return
	}

	if err := db.Delete(&order).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete order"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Order deleted"})
}

func notifyOrderStatus(order *models.Order) {
	if order.CustomerEmail == nil || *order.CustomerEmail == "" {
		return
	}
	var product models.Product
	if err := database.DB.Select("name").First(&product, order.ProductID).Error; err != nil {
		return
	}
	utils.NotifyOrderStatus(*order.CustomerEmail, order.ID, product.Name, string(order.OrderStatus), string(order.PaymentStatus))
}
