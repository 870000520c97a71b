package handlers

import (
	"net/http"

	"github.com/vanbenpham/forunime-backend/auth"
	"github.com/vanbenpham/forunime-backend/db"
	"github.com/vanbenpham/forunime-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserRegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserUpdateRequest struct {
	Email             *string `json:"email"`
	Username          *string `json:"username"`
	Password          *string `json:"password"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

func UserRegister(c *gin.Context) {
	req := UserRegisterRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	user, err := models.UserCreate(req.Email, req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func UserLogin(c *gin.Context) {
	req := UserLoginRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	user, err := models.UserLogin(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusForbidden, Response{Error: err.Error()})
		return
	}
	token, err := auth.CreateToken(&user)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func UserGet(c *gin.Context, _ *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var user models.User
	if db.Instance.First(&user, "id = ?", id).Error != nil {
		c.JSON(http.StatusNotFound, Response{Error: "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func UserList(c *gin.Context, user *models.User) {
	var users []models.User
	if err := db.Instance.Where("id != ?", user.ID).Order("username asc").Find(&users).Error; err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func UserUpdate(c *gin.Context, current *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if id != current.ID {
		abortWithError(c, models.ErrForbidden)
		return
	}
	req := UserUpdateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	updates := map[string]interface{}{}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.ProfilePictureURL != nil {
		updates["profile_picture_url"] = *req.ProfilePictureURL
	}
	if req.Password != nil {
		if err := current.SetPassword(*req.Password); err != nil {
			abortWithError(c, err)
			return
		}
		updates["password"] = current.Password
	}
	if len(updates) > 0 {
		if err := db.Instance.Model(current).Updates(updates).Error; err != nil {
			abortWithError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, current)
}

func UserDelete(c *gin.Context, current *models.User) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if id != current.ID && !current.IsAdmin() {
		abortWithError(c, models.ErrForbidden)
		return
	}
	var user models.User
	if db.Instance.First(&user, "id = ?", id).Error != nil {
		c.JSON(http.StatusNotFound, Response{Error: "user not found"})
		return
	}
	if err := db.Instance.Delete(&user).Error; err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
