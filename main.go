package main

import (
	"log"
	"strings"
	"time"

	"github.com/vanbenpham/forunime-backend/auth"
	"github.com/vanbenpham/forunime-backend/config"
	"github.com/vanbenpham/forunime-backend/db"
	"github.com/vanbenpham/forunime-backend/handlers"
	"github.com/vanbenpham/forunime-backend/logger"
	"github.com/vanbenpham/forunime-backend/models"
	"github.com/vanbenpham/forunime-backend/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

func main() {
	logger.Init(config.DEBUG_MODE)
	db.Init()
	models.Init()
	storage.Init()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws"})))
	}
	if config.S3_BUCKET == "" {
		router.Static("/uploads", config.UPLOAD_DIR)
	}

	// Public endpoints
	router.POST("/users/register", handlers.UserRegister)
	router.POST("/login", handlers.UserLogin)

	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// User handlers
	authRouter.GET("/users", handlers.UserList)
	authRouter.GET("/users/:id", handlers.UserGet)
	authRouter.PUT("/users/:id", handlers.UserUpdate)
	authRouter.DELETE("/users/:id", handlers.UserDelete)
	// Thread handlers - writes restricted to admins
	authRouter.GET("/threads", handlers.ThreadList)
	authRouter.GET("/threads/:id", handlers.ThreadGet)
	authRouter.POST("/threads", handlers.ThreadCreate, models.RoleAdmin)
	authRouter.PUT("/threads/:id", handlers.ThreadUpdate, models.RoleAdmin)
	authRouter.DELETE("/threads/:id", handlers.ThreadDelete, models.RoleAdmin)
	// Post handlers
	authRouter.GET("/posts", handlers.PostList)
	authRouter.GET("/posts/:id", handlers.PostGet)
	authRouter.POST("/posts", handlers.PostCreate)
	authRouter.PUT("/posts/:id", handlers.PostUpdate)
	authRouter.DELETE("/posts/:id", handlers.PostDelete)
	// Review handlers
	authRouter.GET("/reviews", handlers.ReviewList)
	authRouter.GET("/reviews/:id", handlers.ReviewGet)
	authRouter.POST("/reviews", handlers.ReviewCreate)
	authRouter.PUT("/reviews/:id", handlers.ReviewUpdate)
	authRouter.DELETE("/reviews/:id", handlers.ReviewDelete)
	// Comment handlers
	authRouter.GET("/posts/:id/comments", handlers.CommentsForPost)
	authRouter.GET("/reviews/:id/comments", handlers.CommentsForReview)
	authRouter.GET("/comments/:id", handlers.CommentGet)
	authRouter.POST("/comments", handlers.CommentCreate)
	authRouter.PUT("/comments/:id", handlers.CommentUpdate)
	authRouter.DELETE("/comments/:id", handlers.CommentDelete)
	// Group handlers
	authRouter.GET("/groups", handlers.GroupList)
	authRouter.GET("/groups/:id", handlers.GroupGet)
	authRouter.POST("/groups", handlers.GroupCreate)
	authRouter.PUT("/groups/:id", handlers.GroupUpdate)
	authRouter.DELETE("/groups/:id", handlers.GroupDelete)
	// Message handlers - keep /messages/chat-list ahead of /messages/:id
	authRouter.GET("/messages", handlers.MessageList)
	authRouter.GET("/messages/chat-list", handlers.ChatList)
	authRouter.GET("/messages/:id", handlers.MessageGet)
	authRouter.POST("/messages", handlers.MessageCreate)
	authRouter.PUT("/messages/:id", handlers.MessageUpdate)
	authRouter.DELETE("/messages/:id", handlers.MessageDelete)
	// Live delivery + uploads
	authRouter.GET("/ws", handlers.WebSocket)
	authRouter.POST("/photos", handlers.PhotoUpload)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
