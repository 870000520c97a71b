package models

import (
	"time"

	"github.com/vanbenpham/forunime-backend/db"
	"github.com/vanbenpham/forunime-backend/logger"

	"gorm.io/gorm"
)

const (
	GroupRoleCoOwner = "co_owner"
	GroupRoleMember  = "member"
)

type Group struct {
	ID        uint64    `gorm:"primaryKey" json:"group_id"`
	CreatedAt time.Time `json:"date_created"`
	UpdatedAt time.Time `json:"-"`
	GroupName string    `gorm:"type:varchar(300)" json:"group_name"`
	OwnerID   uint64    `json:"owner_id"`
	Owner     User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// GroupUser links a non-owner user to a group, either as a co-owner or a
// plain member. The owner has no link row and is implicitly authorized.
type GroupUser struct {
	ID        uint64    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	GroupID   uint64    `gorm:"index:uniq_g_u,priority:1,unique;index:idx_u_g,priority:2;"`
	Group     Group     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint64    `gorm:"index:uniq_g_u,priority:2,unique;index:idx_u_g,priority:1;"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Role      string    `gorm:"type:varchar(20);default:member"`
}

// GroupRecipientIDs returns the deduplicated set of user ids entitled to the
// group's messages: the owner plus every co-owner and member.
func GroupRecipientIDs(group *Group) map[uint64]struct{} {
	result := map[uint64]struct{}{group.OwnerID: {}}
	rows, err := db.Instance.
		Table("group_users").
		Select("user_id").
		Where("group_id = ?", group.ID).
		Rows()
	if err != nil {
		logger.Errorf("loading recipients of group %d: %v", group.ID, err)
		return result
	}
	defer rows.Close()
	id := uint64(0)
	for rows.Next() {
		if err = rows.Scan(&id); err != nil {
			logger.Errorf("scanning recipient of group %d: %v", group.ID, err)
			continue
		}
		result[id] = struct{}{}
	}
	return result
}

// GroupHasUser reports whether the user is the owner, a co-owner or a member.
func GroupHasUser(group *Group, userID uint64) bool {
	if group.OwnerID == userID {
		return true
	}
	var count int64
	db.Instance.Model(&GroupUser{}).
		Where("group_id = ? AND user_id = ?", group.ID, userID).
		Count(&count)
	return count > 0
}

// GroupDelete removes the group with its link rows and its message history.
// Same application-level cascade as PostDelete.
func GroupDelete(group *Group) error {
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", group.ID).Delete(&Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", group.ID).Delete(&GroupUser{}).Error; err != nil {
			return err
		}
		return tx.Delete(group).Error
	})
}

// GroupUserHasRole reports whether the user holds the given link role.
// The owner is not represented by link rows; check OwnerID separately.
func GroupUserHasRole(group *Group, userID uint64, role string) bool {
	var count int64
	db.Instance.Model(&GroupUser{}).
		Where("group_id = ? AND user_id = ? AND role = ?", group.ID, userID, role).
		Count(&count)
	return count > 0
}
