package auth

import (
	"net/http"
	"strings"

	"github.com/vanbenpham/forunime-backend/db"
	"github.com/vanbenpham/forunime-backend/models"

	"github.com/gin-gonic/gin"
)

// User is authenticated and possesses the required role
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper class that adds bearer-token checks + User pre-loading
type Router struct {
	Base *gin.Engine
}

// CurrentUser resolves the caller from the Authorization header, or from a
// "token" query parameter for transports that cannot set headers (websocket
// upgrades from browsers).
func CurrentUser(c *gin.Context) (user models.User, ok bool) {
	tokenString := ""
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		tokenString = strings.TrimPrefix(header, "Bearer ")
	} else {
		tokenString = c.Query("token")
	}
	if tokenString == "" {
		return models.User{}, false
	}
	userID, err := VerifyToken(tokenString)
	if err != nil {
		return models.User{}, false
	}
	if db.Instance.First(&user, "id = ?", userID).Error != nil {
		return models.User{}, false
	}
	return user, true
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, required []string) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}
	for _, role := range required {
		if user.Role != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
	}
	handler(c, &user)
}

func (cr *Router) GET(path string, handler HandlerFunc, required ...string) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

func (cr *Router) POST(path string, handler HandlerFunc, required ...string) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

func (cr *Router) PUT(path string, handler HandlerFunc, required ...string) {
	cr.Base.PUT(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

func (cr *Router) DELETE(path string, handler HandlerFunc, required ...string) {
	cr.Base.DELETE(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}
