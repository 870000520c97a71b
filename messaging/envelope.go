// Package messaging decides where a message goes: persisted first, then
// pushed to whoever is live — one receiver for direct messages, every group
// member for group messages.
package messaging

import (
	"time"

	"github.com/vanbenpham/forunime-backend/models"
)

const (
	TypeDirectMessage = "direct_message"
	TypeGroupMessage  = "group_message"
)

type GroupSummary struct {
	ID   uint64 `json:"group_id"`
	Name string `json:"group_name"`
}

type MessageData struct {
	MessageID   uint64           `json:"message_id"`
	Content     string           `json:"content"`
	Photo       *string          `json:"photo,omitempty"`
	DateCreated time.Time        `json:"date_created"`
	Sender      models.UserInfo  `json:"sender"`
	Receiver    *models.UserInfo `json:"receiver,omitempty"`
	Group       *GroupSummary    `json:"group,omitempty"`
}

// Envelope is the payload pushed over live channels.
type Envelope struct {
	Type  string      `json:"type"`
	Stamp int64       `json:"stamp"`
	Data  MessageData `json:"data"`
}

func NewEnvelope(message *models.Message) Envelope {
	env := Envelope{
		Type:  TypeDirectMessage,
		Stamp: time.Now().UnixMilli(),
		Data: MessageData{
			MessageID:   message.ID,
			Content:     message.Content,
			Photo:       message.Photo,
			DateCreated: message.CreatedAt,
		},
	}
	if message.Sender != nil {
		env.Data.Sender = message.Sender.Info()
	}
	if message.Receiver != nil {
		info := message.Receiver.Info()
		env.Data.Receiver = &info
	}
	if message.Group != nil {
		env.Type = TypeGroupMessage
		env.Data.Group = &GroupSummary{ID: message.Group.ID, Name: message.Group.GroupName}
	}
	return env
}
