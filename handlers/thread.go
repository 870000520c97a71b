package handlers

import (
	"net/http"
	"strconv"

	"github.com/vanbenpham/forunime-backend/db"
	"github.com/vanbenpham/forunime-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ThreadRequest struct {
	ThreadName string `json:"thread_name" binding:"required"`
}

func ThreadList(c *gin.Context, _ *models.User) {
	query := db.Instance.Order("id asc")
	if userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64); err == nil {
		query = query.Where("user_id = ?", userID)
	}
	var threads []models.Thread
	if err := query.Find(&threads).Error; err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, threads)
}

func ThreadGet(c *gin.Context, _ *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var thread models.Thread
	if db.Instance.First(&thread, "id = ?", id).Error != nil {
		c.JSON(http.StatusNotFound, Response{Error: "thread not found"})
		return
	}
	c.JSON(http.StatusOK, thread)
}

// ThreadCreate is admin-only (enforced by the router).
func ThreadCreate(c *gin.Context, user *models.User) {
	req := ThreadRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	var count int64
	db.Instance.Model(&models.Thread{}).Where("thread_name = ?", req.ThreadName).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, Response{Error: "a thread with this name already exists"})
		return
	}
	thread := models.Thread{ThreadName: req.ThreadName, UserID: user.ID}
	if err := db.Instance.Create(&thread).Error; err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, thread)
}

func ThreadUpdate(c *gin.Context, _ *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	req := ThreadRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	var thread models.Thread
	if db.Instance.First(&thread, "id = ?", id).Error != nil {
		c.JSON(http.StatusNotFound, Response{Error: "thread not found"})
		return
	}
	thread.ThreadName = req.ThreadName
	if err := db.Instance.Save(&thread).Error; err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

func ThreadDelete(c *gin.Context, _ *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var thread models.Thread
	if db.Instance.First(&thread, "id = ?", id).Error != nil {
		c.JSON(http.StatusNotFound, Response{Error: "thread not found"})
		return
	}
	if err := db.Instance.Delete(&thread).Error; err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
