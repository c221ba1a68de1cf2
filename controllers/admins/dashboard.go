package admins

import (
	"net/http"

	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/models"
	"github.com/K4Y35/krishibazar-backend/utils"
)

// GET /v1/admin/dashboard
//
// A count/sum snapshot across users, projects, investments and orders.
// Cancelled investments are excluded from the money figures.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var totalUsers, pendingUsers int64
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.User{}).Where("is_approved = ?", false).Count(&pendingUsers)

	var totalProjects, pendingProjects, runningProjects int64
	db.Model(&models.Project{}).Count(&totalProjects)
	db.Model(&models.Project{}).Where("status = ?", models.ProjectPending).Count(&pendingProjects)
	db.Model(&models.Project{}).Where("status = ?", models.ProjectRunning).Count(&runningProjects)

	var totalInvestments, pendingInvestments int64
	db.Model(&models.Investment{}).Where("status != ?", models.InvestmentCancelled).Count(&totalInvestments)
	db.Model(&models.Investment{}).Where("status = ?", models.InvestmentPending).Count(&pendingInvestments)

	var confirmedAmount, completedReturns float64
	db.Model(&models.Investment{}).
		Where("status IN ?", []models.InvestmentStatus{models.InvestmentConfirmed, models.InvestmentCompleted}).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&confirmedAmount)
	db.Model(&models.Investment{}).
		Where("status = ?", models.InvestmentCompleted).
		Select("COALESCE(SUM(return_received), 0)").Scan(&completedReturns)

	var totalOrders, pendingOrders int64
	var orderRevenue float64
	db.Model(&models.Order{}).Count(&totalOrders)
	db.Model(&models.Order{}).Where("order_status = ?", models.OrderPending).Count(&pendingOrders)
	db.Model(&models.Order{}).
		Where("order_status != ?", models.OrderCancelled).
		Select("COALESCE(SUM(total_price), 0)").Scan(&orderRevenue)

	var unreadMessages int64
	db.Model(&models.ChatMessage{}).
		Where("sender_type = ? AND is_read = ?", models.SenderUser, false).
		Count(&unreadMessages)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"users": map[string]interface{}{
				"total":            totalUsers,
				"pending_approval": pendingUsers,
			},
			"projects": map[string]interface{}{
				"total":   totalProjects,
				"pending": pendingProjects,
				"running": runningProjects,
			},
			"investments": map[string]interface{}{
				"total":             totalInvestments,
				"pending":           pendingInvestments,
				"confirmed_amount":  confirmedAmount,
				"completed_returns": completedReturns,
			},
			"orders": map[string]interface{}{
				"total":   totalOrders,
				"pending": pendingOrders,
				"revenue": orderRevenue,
			},
			"unread_messages": unreadMessages,
		},
	})
}
