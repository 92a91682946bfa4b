package http

import (
	"net/http"

	"yatube/internal/dto"
	"yatube/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers 汇总所有路由处理器
type Handlers struct {
	Auth      *AuthHandler
	Post      *PostHandler
	Feed      *FeedHandler
	Follow    *FollowHandler
	WebSocket gin.HandlerFunc // 可为 nil，此时不注册 /ws/follow
}

// RouterOptions 是路由的配置
type RouterOptions struct {
	JWTSecret  string
	MediaRoot  string            // 为空时不提供 /media/
	Middleware []gin.HandlerFunc // 在 Recovery 之后依次执行，例如请求日志和限流
}

// NewRouter 创建 Gin Engine 并注册所有路由
func NewRouter(h Handlers, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(Recovery())
	router.Use(middleware.Metrics())
	router.Use(opts.Middleware...)
	router.NoRoute(NotFound)

	requireAuth := middleware.Auth(opts.JWTSecret)
	optionalAuth := middleware.OptionalAuth(opts.JWTSecret)

	router.GET("/", h.Feed.Index)
	router.GET("/group/:slug/", h.Feed.Group)
	router.GET("/profile/:username/", optionalAuth, h.Feed.Profile)
	router.POST("/profile/:username/follow/", requireAuth, h.Follow.Follow)
	router.POST("/profile/:username/unfollow/", requireAuth, h.Follow.Unfollow)
	router.GET(FollowPath, requireAuth, h.Feed.Follow)

	router.GET("/create/", requireAuth, h.Post.CreateForm)
	router.POST("/create/", requireAuth, h.Post.Create)

	posts := router.Group("/posts/:post_id")
	{
		posts.GET("/", optionalAuth, h.Post.Detail)
		posts.GET("/edit/", requireAuth, h.Post.EditForm)
		posts.POST("/edit/", requireAuth, h.Post.Edit)
		posts.POST("/delete/", requireAuth, h.Post.Delete)
		// 匿名评论在处理器中跳转到登录页
		posts.POST("/comment/", optionalAuth, h.Post.AddComment)
	}

	auth := router.Group("/auth")
	{
		auth.POST("/signup/", h.Auth.Signup)
		auth.POST("/login/", h.Auth.Login)
		auth.GET("/me/", requireAuth, h.Auth.Me)
	}

	about := router.Group("/about")
	{
		about.GET("/author/", AboutAuthor)
		about.GET("/tech/", AboutTech)
	}

	if opts.MediaRoot != "" {
		router.Static(dto.MediaURL, opts.MediaRoot)
	}
	if h.WebSocket != nil {
		router.GET("/ws/follow", requireAuth, h.WebSocket)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })

	return router
}
