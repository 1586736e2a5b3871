package router

import (
	"time"

	"simple-board/internal/config"
	"simple-board/internal/handler"
	"simple-board/internal/middleware"
	"simple-board/internal/service"
	"simple-board/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup configures the Gin engine: middleware, static uploads and the API.
func Setup(cfg *config.Config, db *gorm.DB, sessions session.Store) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if len(cfg.CORS.Origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.Origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true, // session cookie
			MaxAge:           12 * time.Hour,
		}))
	}

	// uploaded files are served back by path
	r.Static("/uploads", cfg.Upload.Dir)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	ttl := time.Duration(cfg.Session.TTLMinutes) * time.Minute

	authService := service.NewAuthService(db, sessions, cfg.Security.BcryptCost)
	postService := service.NewPostService(db)
	commentService := service.NewCommentService(db)

	authHandler := handler.NewAuthHandler(authService, ttl)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	uploadHandler := handler.NewUploadHandler(cfg.Upload.Dir, cfg.Upload.MaxFileSize, cfg.Upload.MaxFiles)
	exportHandler := handler.NewExportHandler(db)

	api := r.Group("/api")

	// public endpoints
	api.POST("/auth/signup", authHandler.Signup)
	loginLimiter := middleware.NewRateLimiter(5, time.Minute)
	api.POST("/auth/login", loginLimiter.Limit(), authHandler.Login)

	api.GET("/posts", postHandler.List)
	api.GET("/posts/search", postHandler.Search)
	api.GET("/posts/recent", postHandler.Recent)
	api.GET("/posts/popular", postHandler.Popular)
	api.GET("/posts/user/:user_id", postHandler.ByUser)
	api.GET("/posts/:id", postHandler.Get)

	api.GET("/comments/post/:post_id", commentHandler.ByPost)
	api.GET("/comments/user/:user_id", commentHandler.ByUser)
	api.GET("/comments/:id", commentHandler.Get)

	// endpoints requiring a live session
	protected := api.Group("")
	protected.Use(
		middleware.Auth(sessions, db),
		middleware.Audit(db),
	)

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/me", handler.GetMe)

	protected.POST("/posts", postHandler.Create)
	protected.PUT("/posts/:id", postHandler.Update)
	protected.DELETE("/posts/:id", postHandler.Delete)

	protected.POST("/comments", commentHandler.Create)
	protected.PUT("/comments/:id", commentHandler.Update)
	protected.DELETE("/comments/:id", commentHandler.Delete)

	protected.POST("/upload", uploadHandler.Upload)
	protected.POST("/upload/multiple", uploadHandler.UploadMultiple)

	protected.PUT("/profile", handler.UpdateProfile(db))
	protected.PUT("/profile/password", handler.ChangePassword(db, cfg.Security.BcryptCost))
	protected.POST("/profile/delete", handler.DeleteAccount(db, sessions))

	protected.GET("/export/posts.csv", exportHandler.ExportCSV)
	protected.GET("/export/posts.xlsx", exportHandler.ExportXLSX)

	protected.GET("/me/activity", handler.ListActivity(db))

	return r
}
