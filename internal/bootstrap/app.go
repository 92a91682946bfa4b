package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "yatube/internal/handler/http"
	wsHandler "yatube/internal/handler/websocket"
	"yatube/internal/hub"
	gormpersistence "yatube/internal/infra/persistence/gorm"
	redisstate "yatube/internal/infra/state/redis"
	localstorage "yatube/internal/infra/storage/local"
	"yatube/internal/middleware"
	"yatube/internal/service"
	"yatube/internal/tasks"
	"yatube/internal/worker"
)

// App 持有应用的所有组件
type App struct {
	Config         *Config
	Log            *logrus.Logger
	DB             *gorm.DB
	RedisClient    *redis.Client
	AsynqClient    *asynq.Client
	AsynqServer    *worker.WorkerServer
	Scheduler      *asynq.Scheduler
	Hub            *hub.Hub
	HttpServer     *http.Server
	redisClientOpt asynq.RedisClientOpt
}

// NewApp 创建并初始化一个新的应用实例
func NewApp() (*App, error) {
	// 1. 加载配置
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	// 2. 初始化 Logger
	log := NewLogger(cfg)
	log.Infof("Logger initialized (Level: %s, Format: %T)", log.GetLevel().String(), log.Formatter)
	log.Info("Configuration loaded successfully")

	// 3. 初始化基础设施
	log.Info("Initializing infrastructure...")
	db, err := OpenDB(cfg, true)
	if err != nil {
		return nil, err
	}
	log.WithField("driver", cfg.DB.Driver).Info("Database initialized and migrated")

	redisClient, err := OpenRedis(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("Redis client initialized")

	redisClientOpt := AsynqRedisOpt(cfg)
	asynqClient := asynq.NewClient(redisClientOpt)
	log.Info("Asynq client initialized")

	images, err := localstorage.NewImageStorage(cfg.MediaRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to init media storage: %w", err)
	}
	log.WithField("media_root", images.Root()).Info("Image storage initialized")
	log.Info("Infrastructure initialized successfully")

	// 4. 初始化 Repositories
	log.Info("Initializing repositories...")
	userRepo := gormpersistence.NewGormUserRepository(db)
	groupRepo := gormpersistence.NewGormGroupRepository(db)
	postRepo := gormpersistence.NewGormPostRepository(db)
	commentRepo := gormpersistence.NewGormCommentRepository(db)
	followRepo := gormpersistence.NewGormFollowRepository(db)
	bus := redisstate.NewRedisNotificationBus(redisClient, cfg.KeyPrefix)
	feedCache := NewFeedCache(cfg, redisClient)
	log.WithField("feed_cache", cfg.FeedCacheBackend).Info("Repositories initialized")

	// 5. 初始化 Services
	log.Info("Initializing services...")
	authService, err := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to create AuthService: %w", err)
	}
	postService := service.NewPostService(postRepo, commentRepo, groupRepo, images, asynqClient)
	groupService := service.NewGroupService(groupRepo)
	followService := service.NewFollowService(followRepo, userRepo)
	feedService := service.NewFeedService(postRepo, groupRepo, userRepo, followRepo, feedCache)
	log.Info("Services initialized")

	// 6. 初始化 Hub
	log.Info("Initializing hub...")
	hubInstance := hub.NewHub(bus)
	log.Info("Hub initialized")

	// 7. 初始化 Handlers
	log.Info("Initializing handlers...")
	handlers := httpHandler.Handlers{
		Auth:      httpHandler.NewAuthHandler(authService),
		Post:      httpHandler.NewPostHandler(postService, groupService, authService),
		Feed:      httpHandler.NewFeedHandler(feedService),
		Follow:    httpHandler.NewFollowHandler(followService),
		WebSocket: wsHandler.NewWebSocketHandler(hubInstance, originChecker(cfg.CORSAllowedOrigins)).HandleConnection,
	}
	log.Info("Handlers initialized")

	// 8. 初始化 Worker Server
	log.Info("Initializing worker server...")
	fanoutHandler := worker.NewPostFanoutHandler(postRepo, followRepo, bus)
	sweepHandler := worker.NewImageSweepHandler(postRepo, images, worker.DefaultImageGracePeriod)
	workerServer := worker.NewWorkerServer(redisClientOpt, fanoutHandler, sweepHandler, log)
	log.Info("Worker server initialized")

	// 9. 初始化 Gin Engine 和路由
	log.Info("Setting up Gin router...")
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := httpHandler.NewRouter(handlers, httpHandler.RouterOptions{
		JWTSecret: cfg.JWTSecret,
		MediaRoot: images.Root(),
		Middleware: []gin.HandlerFunc{
			LoggerMiddleware(log),
			middleware.RateLimit(redisClient, cfg.KeyPrefix, cfg.RateLimitMax, cfg.RateLimitWindow),
		},
	})
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", RequestIDHeader},
		ExposedHeaders:   []string{"Location", RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
	})
	log.Info("Router setup complete")

	// 10. 初始化 HTTP Server
	log.Info("Initializing HTTP server...")
	httpServer := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           corsHandler.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info("HTTP server initialized")

	// 11. 组装 App 对象
	app := &App{
		Config:         cfg,
		Log:            log,
		DB:             db,
		RedisClient:    redisClient,
		AsynqClient:    asynqClient,
		AsynqServer:    workerServer,
		Hub:            hubInstance,
		HttpServer:     httpServer,
		redisClientOpt: redisClientOpt,
	}
	log.Info("Application assembled successfully")

	return app, nil
}

// Start 启动应用的所有后台 Goroutine 和 HTTP 服务器
func (a *App) Start() {
	a.Log.Info("Starting application background routines...")
	go a.Hub.Run()
	a.Log.Info("Hub routine started")

	go a.AsynqServer.Start()
	a.Log.Info("Asynq worker server routine started")

	a.registerPeriodicTasks()

	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

// registerPeriodicTasks 注册周期性的孤立图片清理任务
func (a *App) registerPeriodicTasks() {
	scheduler := asynq.NewScheduler(a.redisClientOpt, &asynq.SchedulerOpts{
		Location: time.UTC,
	})

	schedule := a.Config.ImageSweepSchedule
	task := asynq.NewTask(tasks.TypeImageSweep, nil)
	entryID, err := scheduler.Register(schedule, task, asynq.Queue(tasks.QueueLow), asynq.MaxRetry(1))
	if err != nil {
		a.Log.Errorf("Could not register periodic image sweep task: %v", err)
		return
	}
	a.Log.Infof("Periodic image sweep task registered with schedule '%s' (EntryID: %s)", schedule, entryID)
	a.Scheduler = scheduler

	go func() {
		a.Log.Info("Asynq scheduler starting...")
		if err := scheduler.Run(); err != nil && !errors.Is(err, asynq.ErrServerClosed) {
			a.Log.Errorf("Asynq scheduler Run() failed: %v", err)
			return
		}
		a.Log.Info("Asynq scheduler stopped.")
	}()
}

// Shutdown 优雅地关闭应用
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	// 1. 停止 Hub，断开所有 WebSocket 连接
	if a.Hub != nil {
		a.Hub.Stop()
	}

	// 2. 停止 Scheduler 和 Worker
	if a.Scheduler != nil {
		a.Scheduler.Shutdown()
	}
	if a.AsynqServer != nil {
		a.AsynqServer.Shutdown()
	}

	// 3. 优雅关闭 HTTP 服务器
	a.Log.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	// 4. 关闭 Asynq Client
	if a.AsynqClient != nil {
		if err := a.AsynqClient.Close(); err != nil {
			a.Log.Errorf("Error closing Asynq client: %v", err)
		} else {
			a.Log.Info("Asynq client closed.")
		}
	}

	// 5. 关闭 Redis 连接
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		} else {
			a.Log.Info("Redis connection closed.")
		}
	}

	// 6. 关闭数据库连接池
	if a.DB != nil {
		if err := closeDB(a.DB); err != nil {
			a.Log.Errorf("Error closing database connection: %v", err)
		} else {
			a.Log.Info("Database connection closed.")
		}
	}

	a.Log.Info("Application shutdown complete.")
}

// originChecker 只允许 CORS 白名单中的来源建立 WebSocket 连接。
// 没有 Origin 头的请求（非浏览器客户端）直接放行。
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	wildcard := false
	for _, o := range allowed {
		if o == "*" {
			wildcard = true
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || wildcard {
			return true
		}
		if _, ok := set[origin]; ok {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}

// RequestIDHeader 是请求 ID 的响应头，客户端传入时沿用
const RequestIDHeader = "X-Request-ID"

// LoggerMiddleware 创建一个 Gin 中间件用于记录请求日志
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
			"request_id":  requestID,
		})
		if userID := middleware.CurrentUserID(c); userID != 0 {
			entry = entry.WithField("user_id", userID)
		}

		switch {
		case errorMessage != "":
			entry.Error(errorMessage)
		case statusCode >= 500:
			entry.Error("Server error")
		case statusCode >= 400:
			entry.Warn("Client error")
		default:
			entry.Info("Request handled")
		}
	}
}
