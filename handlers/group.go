package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/vanbenpham/forunime-backend/db"
	"github.com/vanbenpham/forunime-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

type GroupCreateRequest struct {
	GroupName string   `json:"group_name" binding:"required"`
	MemberIDs []uint64 `json:"member_ids"`
}

type GroupUpdateRequest struct {
	GroupName        *string  `json:"group_name"`
	AddMemberIDs     []uint64 `json:"add_member_ids"`
	RemoveMemberIDs  []uint64 `json:"remove_member_ids"`
	AddCoOwnerIDs    []uint64 `json:"add_co_owner_ids"`
	RemoveCoOwnerIDs []uint64 `json:"remove_co_owner_ids"`
}

type GroupInfo struct {
	GroupID     uint64            `json:"group_id"`
	GroupName   string            `json:"group_name"`
	DateCreated time.Time         `json:"date_created"`
	Owner       models.UserInfo   `json:"owner"`
	CoOwners    []models.UserInfo `json:"co_owners"`
	Members     []models.UserInfo `json:"members"`
}

func groupInfo(group *models.Group) (*GroupInfo, error) {
	var owner models.User
	if err := db.Instance.First(&owner, "id = ?", group.OwnerID).Error; err != nil {
		return nil, err
	}
	var links []models.GroupUser
	err := db.Instance.Preload("User").
		Where("group_id = ?", group.ID).
		Order("id asc").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	info := &GroupInfo{
		GroupID:     group.ID,
		GroupName:   group.GroupName,
		DateCreated: group.CreatedAt,
		Owner:       owner.Info(),
		CoOwners:    []models.UserInfo{},
		Members:     []models.UserInfo{},
	}
	for _, link := range links {
		if link.Role == models.GroupRoleCoOwner {
			info.CoOwners = append(info.CoOwners, link.User.Info())
		} else {
			info.Members = append(info.Members, link.User.Info())
		}
	}
	return info, nil
}

func GroupList(c *gin.Context, user *models.User) {
	var groups []models.Group
	err := db.Instance.
		Where("owner_id = ? OR id IN (?)",
			user.ID,
			db.Instance.Model(&models.GroupUser{}).Select("group_id").Where("user_id = ?", user.ID)).
		Order("updated_at desc").
		Find(&groups).Error
	if err != nil {
		abortWithError(c, err)
		return
	}
	result := make([]*GroupInfo, 0, len(groups))
	for i := range groups {
		info, err := groupInfo(&groups[i])
		if err != nil {
			abortWithError(c, err)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}

func GroupGet(c *gin.Context, _ *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var group models.Group
	if db.Instance.First(&group, "id = ?", id).Error != nil {
		c.JSON(http.StatusNotFound, Response{Error: "group not found"})
		return
	}
	info, err := groupInfo(&group)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// GroupCreate makes the caller the owner and adds the listed users as
// members. The owner never gets a link row.
func GroupCreate(c *gin.Context, user *models.User) {
	req := GroupCreateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	group := models.Group{GroupName: req.GroupName, OwnerID: user.ID}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		for _, memberID := range req.MemberIDs {
			if memberID == user.ID {
				continue
			}
			var member models.User
			if tx.First(&member, "id = ?", memberID).Error != nil {
				return fmt.Errorf("user %d: %w", memberID, models.ErrNotFound)
			}
			link := models.GroupUser{GroupID: group.ID, UserID: memberID, Role: models.GroupRoleMember}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	info, err := groupInfo(&group)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func setGroupRole(tx *gorm.DB, group *models.Group, userID uint64, role string) error {
	if userID == group.OwnerID {
		// The owner's authorization never depends on link rows.
		return nil
	}
	var member models.User
	if tx.First(&member, "id = ?", userID).Error != nil {
		return fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}
	link := models.GroupUser{GroupID: group.ID, UserID: userID}
	err := tx.Where("group_id = ? AND user_id = ?", group.ID, userID).First(&link).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	link.Role = role
	return tx.Save(&link).Error
}

func removeGroupRole(tx *gorm.DB, group *models.Group, userID uint64, role string) error {
	return tx.Where("group_id = ? AND user_id = ? AND role = ?", group.ID, userID, role).
		Delete(&models.GroupUser{}).Error
}

// GroupUpdate lets the owner or a co-owner rename the group and manage
// members; only the owner manages co-owners.
func GroupUpdate(c *gin.Context, user *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var group models.Group
	if db.Instance.First(&group, "id = ?", id).Error != nil {
		c.JSON(http.StatusNotFound, Response{Error: "group not found"})
		return
	}
	isOwner := group.OwnerID == user.ID
	isCoOwner := models.GroupUserHasRole(&group, user.ID, models.GroupRoleCoOwner)
	if !isOwner && !isCoOwner {
		abortWithError(c, models.ErrForbidden)
		return
	}
	req := GroupUpdateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if (len(req.AddCoOwnerIDs) > 0 || len(req.RemoveCoOwnerIDs) > 0) && !isOwner {
		abortWithError(c, models.ErrForbidden)
		return
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if req.GroupName != nil {
			group.GroupName = *req.GroupName
			if err := tx.Save(&group).Error; err != nil {
				return err
			}
		}
		for _, memberID := range req.AddMemberIDs {
			if err := setGroupRole(tx, &group, memberID, models.GroupRoleMember); err != nil {
				return err
			}
		}
		for _, memberID := range req.RemoveMemberIDs {
			if err := removeGroupRole(tx, &group, memberID, models.GroupRoleMember); err != nil {
				return err
			}
		}
		for _, coOwnerID := range req.AddCoOwnerIDs {
			if err := setGroupRole(tx, &group, coOwnerID, models.GroupRoleCoOwner); err != nil {
				return err
			}
		}
		for _, coOwnerID := range req.RemoveCoOwnerIDs {
			if err := removeGroupRole(tx, &group, coOwnerID, models.GroupRoleCoOwner); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	info, err := groupInfo(&group)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func GroupDelete(c *gin.Context, user *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var group models.Group
	if db.Instance.First(&group, "id = ?", id).Error != nil {
		c.JSON(http.StatusNotFound, Response{Error: "group not found"})
		return
	}
	if group.OwnerID != user.ID {
		abortWithError(c, models.ErrForbidden)
		return
	}
	if err := models.GroupDelete(&group); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
