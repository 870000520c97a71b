package handlers

import (
	"net/http"
	"time"

	"github.com/vanbenpham/forunime-backend/db"
	"github.com/vanbenpham/forunime-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ReviewCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Feedback    *string `json:"feedback"`
	PhotoURL    *string `json:"photo_url"`
}

type ReviewUpdateRequest struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	Feedback    *string `json:"feedback"`
	PhotoURL    *string `json:"photo_url"`
}

// ReviewInfo carries the derived attributes; they are computed per response
// and never stored.
type ReviewInfo struct {
	ReviewID        uint64          `json:"review_id"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	Description     string          `json:"description"`
	Feedback        *string         `json:"feedback"`
	PhotoURL        *string         `json:"photo_url"`
	DateCreated     time.Time       `json:"date_created"`
	FeedbackOwnerID uint64          `json:"feedback_owner_id"`
	User            models.UserInfo `json:"user"`
	ReviewCount     int64           `json:"review_count"`
	AverageRate     float64         `json:"average_rate"`
}

func reviewInfo(review *models.Review) (*ReviewInfo, error) {
	count, average, err := models.ReviewAggregates(review.ID)
	if err != nil {
		return nil, err
	}
	return &ReviewInfo{
		ReviewID:        review.ID,
		Name:            review.Name,
		Type:            review.Type,
		Description:     review.Description,
		Feedback:        review.Feedback,
		PhotoURL:        review.PhotoURL,
		DateCreated:     review.CreatedAt,
		FeedbackOwnerID: review.FeedbackOwnerID,
		User:            review.User.Info(),
		ReviewCount:     count,
		AverageRate:     average,
	}, nil
}

func ReviewList(c *gin.Context, _ *models.User) {
	query := db.Instance.Preload("User").Order("id desc")
	if search := c.Query("search"); search != "" {
		query = query.Where("description LIKE ?", "%"+search+"%")
	}
	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		abortWithError(c, err)
		return
	}
	result := make([]*ReviewInfo, 0, len(reviews))
	for i := range reviews {
		info, err := reviewInfo(&reviews[i])
		if err != nil {
			abortWithError(c, err)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}

func ReviewGet(c *gin.Context, _ *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var review models.Review
	if db.Instance.Preload("User").First(&review, "id = ?", id).Error != nil {
		c.JSON(http.StatusNotFound, Response{Error: "review not found"})
		return
	}
	info, err := reviewInfo(&review)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func ReviewCreate(c *gin.Context, user *models.User) {
	req := ReviewCreateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	review := models.Review{
		Name:            req.Name,
		Type:            req.Type,
		Description:     req.Description,
		Feedback:        req.Feedback,
		PhotoURL:        req.PhotoURL,
		FeedbackOwnerID: user.ID,
		User:            *user,
	}
	if err := db.Instance.Create(&review).Error; err != nil {
		abortWithError(c, err)
		return
	}
	info, err := reviewInfo(&review)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func ReviewUpdate(c *gin.Context, user *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var review models.Review
	if db.Instance.Preload("User").First(&review, "id = ?", id).Error != nil {
		c.JSON(http.StatusNotFound, Response{Error: "review not found"})
		return
	}
	if review.FeedbackOwnerID != user.ID && !user.IsAdmin() {
		abortWithError(c, models.ErrForbidden)
		return
	}
	req := ReviewUpdateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Feedback != nil {
		updates["feedback"] = *req.Feedback
	}
	if req.PhotoURL != nil {
		updates["photo_url"] = *req.PhotoURL
	}
	if len(updates) > 0 {
		if err := db.Instance.Model(&review).Updates(updates).Error; err != nil {
			abortWithError(c, err)
			return
		}
	}
	info, err := reviewInfo(&review)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func ReviewDelete(c *gin.Context, user *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var review models.Review
	if db.Instance.First(&review, "id = ?", id).Error != nil {
		c.JSON(http.StatusNotFound, Response{Error: "review not found"})
		return
	}
	if review.FeedbackOwnerID != user.ID && !user.IsAdmin() {
		abortWithError(c, models.ErrForbidden)
		return
	}
	if err := models.ReviewDelete(&review); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
