package handlers

import (
	"net/http"

	"github.com/vanbenpham/forunime-backend/comments"
	"github.com/vanbenpham/forunime-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func CommentsForPost(c *gin.Context, _ *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	tree, err := comments.ForPost(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

func CommentsForReview(c *gin.Context, _ *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	tree, err := comments.ForReview(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

func CommentGet(c *gin.Context, _ *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	info, err := comments.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func CommentCreate(c *gin.Context, user *models.User) {
	req := comments.CreateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	info, err := comments.Create(user, req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func CommentUpdate(c *gin.Context, user *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	req := comments.UpdateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	info, err := comments.Update(user, id, req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func CommentDelete(c *gin.Context, user *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := comments.Delete(user, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
