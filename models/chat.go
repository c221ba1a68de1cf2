package models

import "time"

// SenderType tells which side of the support conversation wrote a message.
type SenderType string

const (
	SenderUser  SenderType = "user"
	SenderAdmin SenderType = "admin"
)

// ChatMessage is one message in the user-to-admin support thread.
// receiver_id is the user's id when an admin writes, and null (broadcast to
// staff) when a user writes without a specific admin addressed.
type ChatMessage struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	SenderID   uint       `gorm:"column:sender_id;not null;index" json:"sender_id"`
	SenderType SenderType `gorm:"column:sender_type;type:enum('user','admin');not null" json:"sender_type"`
	ReceiverID *uint      `gorm:"column:receiver_id;index" json:"receiver_id,omitempty"`
	Message    string     `gorm:"type:text;not null" json:"message"`
	IsRead     bool       `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
