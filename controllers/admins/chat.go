package admins

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/models"
	"github.com/K4Y35/krishibazar-backend/utils"

	"github.com/gorilla/mux"
)

// GET /v1/admin/chat/conversations
//
// One row per user who has ever written, with their latest message and the
// count of their messages staff have not read yet.
func GetConversations(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	type conversation struct {
		UserID      uint   `json:"user_id"`
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		Phone       string `json:"phone"`
		LastMessage string `json:"last_message"`
		LastAt      string `json:"last_at"`
		UnreadCount int64  `json:"unread_count"`
	}

	var rows []conversation
	err := db.Raw(`
		SELECT u.id AS user_id, u.first_name, u.last_name, u.phone,
		       cm.message AS last_message, cm.created_at AS last_at,
		       (SELECT COUNT(*) FROM chat_messages
		         WHERE sender_type = 'user' AND sender_id = u.id AND is_read = 0) AS unread_count
		FROM users u
		JOIN chat_messages cm ON cm.id = (
			SELECT id FROM chat_messages
			WHERE (sender_type = 'user' AND sender_id = u.id)
			   OR (sender_type = 'admin' AND receiver_id = u.id)
			ORDER BY created_at DESC LIMIT 1
		)
		ORDER BY cm.created_at DESC`).Scan(&rows).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: rows})
}

// GET /v1/admin/chat/{user_id}
func GetUserThread(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(mux.Vars(r)["user_id"], 10, 32)
	if err != nil || userID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user ID"})
		return
	}

	var rows []models.ChatMessage
	err = database.DB.
		Where("(sender_type = ? AND sender_id = ?) OR (sender_type = ? AND receiver_id = ?)",
			models.SenderUser, uint(userID), models.SenderAdmin, uint(userID)).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: rows})
}

type AdminSendMessageRequest struct {
	Message string `json:"message"`
}

// POST /v1/admin/chat/{user_id}
func SendMessage(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetAdminID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	userID, err := strconv.ParseUint(mux.Vars(r)["user_id"], 10, 32)
	if err != nil || userID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user ID"})
		return
	}

	var req AdminSendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Message cannot be empty"})
		return
	}

	receiver := uint(userID)
	row := models.ChatMessage{
		SenderID:   uint(adminID),
		SenderType: models.SenderAdmin,
		ReceiverID: &receiver,
		Message:    msg,
	}
	if err := database.DB.Create(&row).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to send message"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Message sent", Data: row})
}

// PUT /v1/admin/chat/{user_id}/read marks the user's messages as read by staff.
func MarkThreadRead(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(mux.Vars(r)["user_id"], 10, 32)
	if err != nil || userID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user ID"})
		return
	}

	err = database.DB.Model(&models.ChatMessage{}).
		Where("sender_type = ? AND sender_id = ? AND is_read = ?", models.SenderUser, uint(userID), false).
		Update("is_read", true).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Messages marked as read"})
}
