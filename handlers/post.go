package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vanbenpham/forunime-backend/comments"
	"github.com/vanbenpham/forunime-backend/db"
	"github.com/vanbenpham/forunime-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type PostCreateRequest struct {
	Content       string  `json:"content" binding:"required"`
	Photo         *string `json:"photo"`
	ProfileUserID *uint64 `json:"profile_user_id"`
	ThreadID      *uint64 `json:"thread_id"`
}

type PostUpdateRequest struct {
	Content *string `json:"content"`
	Photo   *string `json:"photo"`
}

type PostInfo struct {
	PostID        uint64           `json:"post_id"`
	Content       string           `json:"content"`
	Photo         *string          `json:"photo"`
	DateCreated   time.Time        `json:"date_created"`
	ProfileUserID *uint64          `json:"profile_user_id"`
	ThreadID      *uint64          `json:"thread_id"`
	UserID        uint64           `json:"user_id"`
	User          models.UserInfo  `json:"user"`
	Comments      []*comments.Info `json:"comments"`
}

func postInfo(post *models.Post, withComments bool) (*PostInfo, error) {
	info := &PostInfo{
		PostID:        post.ID,
		Content:       post.Content,
		Photo:         post.Photo,
		DateCreated:   post.CreatedAt,
		ProfileUserID: post.ProfileUserID,
		ThreadID:      post.ThreadID,
		UserID:        post.UserID,
		User:          post.User.Info(),
		Comments:      []*comments.Info{},
	}
	if withComments {
		tree, err := comments.ForPost(post.ID)
		if err != nil {
			return nil, err
		}
		info.Comments = tree
	}
	return info, nil
}

func PostList(c *gin.Context, _ *models.User) {
	query := db.Instance.Preload("User").Order("id desc")
	if threadID, err := strconv.ParseUint(c.Query("thread_id"), 10, 64); err == nil {
		query = query.Where("thread_id = ?", threadID)
	} else if profileUserID, err := strconv.ParseUint(c.Query("profile_user_id"), 10, 64); err == nil {
		query = query.Where("profile_user_id = ?", profileUserID)
	} else {
		query = query.Where("thread_id IS NULL")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("content LIKE ?", "%"+search+"%")
	}
	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		abortWithError(c, err)
		return
	}
	result := make([]*PostInfo, 0, len(posts))
	for i := range posts {
		info, err := postInfo(&posts[i], true)
		if err != nil {
			abortWithError(c, err)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}

func PostGet(c *gin.Context, _ *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var post models.Post
	if db.Instance.Preload("User").First(&post, "id = ?", id).Error != nil {
		c.JSON(http.StatusNotFound, Response{Error: "post not found"})
		return
	}
	info, err := postInfo(&post, true)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func PostCreate(c *gin.Context, user *models.User) {
	req := PostCreateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if req.ThreadID != nil {
		var thread models.Thread
		if db.Instance.First(&thread, "id = ?", *req.ThreadID).Error != nil {
			c.JSON(http.StatusNotFound, Response{Error: "thread not found"})
			return
		}
	}
	post := models.Post{
		Content:       req.Content,
		Photo:         req.Photo,
		ProfileUserID: req.ProfileUserID,
		ThreadID:      req.ThreadID,
		UserID:        user.ID,
		User:          *user,
	}
	if err := db.Instance.Create(&post).Error; err != nil {
		abortWithError(c, err)
		return
	}
	info, _ := postInfo(&post, false)
	c.JSON(http.StatusCreated, info)
}

func PostUpdate(c *gin.Context, user *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var post models.Post
	if db.Instance.Preload("User").First(&post, "id = ?", id).Error != nil {
		c.JSON(http.StatusNotFound, Response{Error: "post not found"})
		return
	}
	if post.UserID != user.ID && !user.IsAdmin() {
		abortWithError(c, models.ErrForbidden)
		return
	}
	req := PostUpdateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	updates := map[string]interface{}{}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Photo != nil {
		updates["photo"] = *req.Photo
	}
	if len(updates) > 0 {
		if err := db.Instance.Model(&post).Updates(updates).Error; err != nil {
			abortWithError(c, err)
			return
		}
	}
	info, err := postInfo(&post, true)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func PostDelete(c *gin.Context, user *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var post models.Post
	if db.Instance.First(&post, "id = ?", id).Error != nil {
		c.JSON(http.StatusNotFound, Response{Error: "post not found"})
		return
	}
	if post.UserID != user.ID && !user.IsAdmin() {
		abortWithError(c, models.ErrForbidden)
		return
	}
	if err := models.PostDelete(&post); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
