package users

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/K4Y35/krishibazar-backend/database"
	"github.com/K4Y35/krishibazar-backend/models"
	"github.com/K4Y35/krishibazar-backend/utils"
)

type SendMessageRequest struct {
	Message string `json:"message"`
}

// POST /v1/users/chat
func SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Message cannot be empty"})
		return
	}

	// user messages address staff as a whole, not a specific admin
	row := models.ChatMessage{
		SenderID:   uid,
		SenderType: models.SenderUser,
		Message:    msg,
	}
	if err := database.DB.Create(&row).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to send message"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Message sent", Data: row})
}

// GET /v1/users/chat
//
// Returns the user's full thread: their own messages plus admin messages
// addressed to them.
func ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var rows []models.ChatMessage
	err := database.DB.
		Where("(sender_type = ? AND sender_id = ?) OR (sender_type = ? AND receiver_id = ?)",
			models.SenderUser, uid, models.SenderAdmin, uid).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: rows})
}

// PUT /v1/users/chat/read marks all admin messages in the thread as read.
func MarkMessagesReadHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	err := database.DB.Model(&models.ChatMessage{}).
		Where("sender_type = ? AND receiver_id = ? AND is_read = ?", models.SenderAdmin, uid, false).
		Update("is_read", true).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Messages marked as read"})
}

// GET /v1/users/chat/unread-count
func UnreadCountHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var count int64
	err := database.DB.Model(&models.ChatMessage{}).
		Where("sender_type = ? AND receiver_id = ? AND is_read = ?", models.SenderAdmin, uid, false).
		Count(&count).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{"unread_count": count}})
}
