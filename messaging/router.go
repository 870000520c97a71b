package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/vanbenpham/forunime-backend/db"
	"github.com/vanbenpham/forunime-backend/live"
	"github.com/vanbenpham/forunime-backend/logger"
	"github.com/vanbenpham/forunime-backend/models"
)

type SendRequest struct {
	Content    string  `json:"content" binding:"required"`
	Photo      *string `json:"photo"`
	ReceiverID *uint64 `json:"receiver_id"`
	GroupID    *uint64 `json:"group_id"`
}

// Router validates, persists and fans out message sends. The registry is
// injected so tests can substitute recording channels.
type Router struct {
	Registry *live.Registry
}

func NewRouter(registry *live.Registry) *Router {
	return &Router{Registry: registry}
}

// Send runs the full delivery sequence: target validation, group-membership
// authorization, durable write, then best-effort fan-out to live channels.
// Persistence success is the operation's success criterion; a recipient
// without a live channel is not an error.
func (rt *Router) Send(sender *models.User, req SendRequest) (*models.Message, error) {
	if (req.GroupID == nil) == (req.ReceiverID == nil) {
		return nil, fmt.Errorf("message must target exactly one of receiver or group: %w", models.ErrInvalidTarget)
	}

	message := models.Message{
		Content:  req.Content,
		Photo:    req.Photo,
		SenderID: &sender.ID,
		Sender:   sender,
	}

	var recipients []uint64
	if req.GroupID != nil {
		var group models.Group
		if db.Instance.First(&group, "id = ?", *req.GroupID).Error != nil {
			return nil, fmt.Errorf("group %d: %w", *req.GroupID, models.ErrNotFound)
		}
		members := models.GroupRecipientIDs(&group)
		if _, ok := members[sender.ID]; !ok {
			return nil, fmt.Errorf("user %d is not a member of group %d: %w", sender.ID, group.ID, models.ErrForbidden)
		}
		message.GroupID = &group.ID
		message.Group = &group
		for id := range members {
			if id != sender.ID { // no echo back to the sender
				recipients = append(recipients, id)
			}
		}
	} else {
		var receiver models.User
		if db.Instance.First(&receiver, "id = ?", *req.ReceiverID).Error != nil {
			return nil, fmt.Errorf("receiver %d: %w", *req.ReceiverID, models.ErrNotFound)
		}
		message.ReceiverID = &receiver.ID
		message.Receiver = &receiver
		recipients = []uint64{receiver.ID}
	}

	// The durable write must be committed before any push is attempted.
	if err := db.Instance.Create(&message).Error; err != nil {
		return nil, err
	}

	rt.fanOut(NewEnvelope(&message), recipients)
	return &message, nil
}

// fanOut pushes the envelope to every recipient with a live channel.
// Pushes run independently so one unreachable channel cannot delay the rest,
// and a channel disappearing between lookup and push is tolerated.
func (rt *Router) fanOut(env Envelope, recipients []uint64) {
	payload, err := json.Marshal(env)
	if err != nil {
		logger.Errorf("envelope for message %d did not marshal: %v", env.Data.MessageID, err)
		return
	}
	for _, userID := range recipients {
		channel, ok := rt.Registry.Lookup(userID)
		if !ok {
			continue
		}
		go func(userID uint64, channel live.Channel) {
			if err := channel.Send(payload); err != nil {
				logger.Debugf("live push to user %d skipped: %v", userID, err)
			}
		}(userID, channel)
	}
}

// Delete applies the asymmetric deletion rules: the sender removes the row
// entirely, the receiver of a direct message only hides it from their own
// view, anyone else is rejected.
func (rt *Router) Delete(caller *models.User, id uint64) error {
	var message models.Message
	if db.Instance.First(&message, "id = ?", id).Error != nil {
		return fmt.Errorf("message %d: %w", id, models.ErrNotFound)
	}
	switch {
	case message.SenderID != nil && *message.SenderID == caller.ID:
		return db.Instance.Delete(&models.Message{}, id).Error
	case message.ReceiverID != nil && *message.ReceiverID == caller.ID:
		return db.Instance.Model(&message).Update("deleted_for_receiver", true).Error
	default:
		return models.ErrForbidden
	}
}
