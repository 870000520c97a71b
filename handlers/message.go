package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vanbenpham/forunime-backend/db"
	"github.com/vanbenpham/forunime-backend/messaging"
	"github.com/vanbenpham/forunime-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type MessageUpdateRequest struct {
	Content *string `json:"content"`
}

type MessageInfo struct {
	MessageID          uint64                  `json:"message_id"`
	Content            string                  `json:"content"`
	Photo              *string                 `json:"photo"`
	DateCreated        time.Time               `json:"date_created"`
	Sender             *models.UserInfo        `json:"sender"`
	Receiver           *models.UserInfo        `json:"receiver,omitempty"`
	Group              *messaging.GroupSummary `json:"group,omitempty"`
	DeletedForReceiver bool                    `json:"deleted_for_receiver"`
}

func messageInfo(message *models.Message) *MessageInfo {
	info := &MessageInfo{
		MessageID:          message.ID,
		Content:            message.Content,
		Photo:              message.Photo,
		DateCreated:        message.CreatedAt,
		DeletedForReceiver: message.DeletedForReceiver,
	}
	if message.Sender != nil {
		sender := message.Sender.Info()
		info.Sender = &sender
	}
	if message.Receiver != nil {
		receiver := message.Receiver.Info()
		info.Receiver = &receiver
	}
	if message.Group != nil {
		info.Group = &messaging.GroupSummary{ID: message.Group.ID, Name: message.Group.GroupName}
	}
	return info
}

// MessageList returns either a group's history (members only) or the
// caller's direct conversations. Rows the caller soft-deleted as receiver
// are hidden from their view only.
func MessageList(c *gin.Context, user *models.User) {
	var rows []models.Message
	if groupID, err := strconv.ParseUint(c.Query("group_id"), 10, 64); err == nil {
		var group models.Group
		if db.Instance.First(&group, "id = ?", groupID).Error != nil {
			c.JSON(http.StatusNotFound, Response{Error: "group not found"})
			return
		}
		if !models.GroupHasUser(&group, user.ID) {
			abortWithError(c, models.ErrForbidden)
			return
		}
		err = db.Instance.Preload("Sender").Preload("Group").
			Where("group_id = ?", groupID).
			Order("id asc").
			Find(&rows).Error
		if err != nil {
			abortWithError(c, err)
			return
		}
	} else {
		err = db.Instance.Preload("Sender").Preload("Receiver").
			Where("sender_id = ? OR (receiver_id = ? AND deleted_for_receiver = ?)", user.ID, user.ID, false).
			Order("id asc").
			Find(&rows).Error
		if err != nil {
			abortWithError(c, err)
			return
		}
	}
	result := make([]*MessageInfo, 0, len(rows))
	for i := range rows {
		result = append(result, messageInfo(&rows[i]))
	}
	c.JSON(http.StatusOK, result)
}

// ChatList returns the distinct users the caller has exchanged direct
// messages with.
func ChatList(c *gin.Context, user *models.User) {
	var rows []models.Message
	err := db.Instance.
		Where("group_id IS NULL AND (sender_id = ? OR receiver_id = ?)", user.ID, user.ID).
		Find(&rows).Error
	if err != nil {
		abortWithError(c, err)
		return
	}
	ids := map[uint64]struct{}{}
	for _, message := range rows {
		if message.SenderID != nil && *message.SenderID != user.ID {
			ids[*message.SenderID] = struct{}{}
		}
		if message.ReceiverID != nil && *message.ReceiverID != user.ID {
			ids[*message.ReceiverID] = struct{}{}
		}
	}
	result := []models.UserInfo{}
	if len(ids) > 0 {
		idList := make([]uint64, 0, len(ids))
		for id := range ids {
			idList = append(idList, id)
		}
		var users []models.User
		if err := db.Instance.Where("id IN ?", idList).Find(&users).Error; err != nil {
			abortWithError(c, err)
			return
		}
		for i := range users {
			result = append(result, users[i].Info())
		}
	}
	c.JSON(http.StatusOK, result)
}

func MessageGet(c *gin.Context, user *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var message models.Message
	err := db.Instance.Preload("Sender").Preload("Receiver").Preload("Group").
		First(&message, "id = ?", id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, Response{Error: "message not found"})
		return
	}
	isSender := message.SenderID != nil && *message.SenderID == user.ID
	isReceiver := message.ReceiverID != nil && *message.ReceiverID == user.ID
	isGroupMember := message.Group != nil && models.GroupHasUser(message.Group, user.ID)
	if !isSender && !isReceiver && !isGroupMember {
		c.JSON(http.StatusNotFound, Response{Error: "message not found"})
		return
	}
	if isReceiver && !isSender && message.DeletedForReceiver {
		c.JSON(http.StatusNotFound, Response{Error: "message not found"})
		return
	}
	c.JSON(http.StatusOK, messageInfo(&message))
}

func MessageCreate(c *gin.Context, user *models.User) {
	req := messaging.SendRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	message, err := Messages.Send(user, req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, messageInfo(message))
}

func MessageUpdate(c *gin.Context, user *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var message models.Message
	if db.Instance.First(&message, "id = ?", id).Error != nil {
		c.JSON(http.StatusNotFound, Response{Error: "message not found"})
		return
	}
	if message.SenderID == nil || *message.SenderID != user.ID {
		abortWithError(c, models.ErrForbidden)
		return
	}
	req := MessageUpdateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if req.Content != nil {
		if err := db.Instance.Model(&message).Update("content", *req.Content).Error; err != nil {
			abortWithError(c, err)
			return
		}
	}
	message.Sender = user
	c.JSON(http.StatusOK, messageInfo(&message))
}

func MessageDelete(c *gin.Context, user *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := Messages.Delete(user, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
