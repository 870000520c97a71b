package models

import "time"

// Message is addressed to exactly one of a receiver (direct message) or a
// group — never both, never neither.
//
// Deletion is asymmetric: the sender deleting their own message removes the
// row entirely, while the receiver of a direct message only flips
// DeletedForReceiver, hiding the row from their own view.
type Message struct {
	ID                 uint64    `gorm:"primaryKey" json:"message_id"`
	CreatedAt          time.Time `json:"date_created"`
	Content            string    `gorm:"type:text" json:"content"`
	Photo              *string   `gorm:"type:varchar(500)" json:"photo"`
	SenderID           *uint64   `gorm:"index" json:"sender_id"` // nullable: survives sender account deletion
	Sender             *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"sender,omitempty"`
	ReceiverID         *uint64   `gorm:"index" json:"receiver_id"`
	Receiver           *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"receiver,omitempty"`
	GroupID            *uint64   `gorm:"index" json:"group_id"`
	Group              *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"group,omitempty"`
	DeletedForReceiver bool      `json:"deleted_for_receiver"`
}
