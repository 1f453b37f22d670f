package app

import (
	"context"
	"habit_tracker_backend/internal/config"
	"habit_tracker_backend/internal/controller"
	"habit_tracker_backend/internal/repository"
	"habit_tracker_backend/internal/service"
	"habit_tracker_backend/internal/util"
	"habit_tracker_backend/pkg/configwatcher"
	"habit_tracker_backend/pkg/database"
	"habit_tracker_backend/pkg/logger"
	"habit_tracker_backend/pkg/monitoring"
	"habit_tracker_backend/pkg/security"
	"habit_tracker_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracer          *sdktrace.TracerProvider
	ctx             context.Context
	cancel          context.CancelFunc
	configCallbacks []func(*config.Config)
}

type services struct {
	habit   *service.HabitService
	day     *service.DayService
	toggle  *service.ToggleService
	summary *service.SummaryService
}

type controllers struct {
	habit   *controller.HabitController
	day     *controller.DayController
	summary *controller.SummaryController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func initServices(store *repository.Store, calendar *util.Calendar, cfg *config.Config, rdb *redis.Client) *services {
	// 未启用 Redis 时必须传入无类型 nil，避免接口持有 nil 指针
	var cache service.SummaryCache
	if rdb != nil {
		cache = service.NewRedisSummaryCache(rdb)
	}

	return &services{
		habit:   service.NewHabitService(store, calendar, cache),
		day:     service.NewDayService(store, calendar),
		toggle:  service.NewToggleService(store, calendar, cache),
		summary: service.NewSummaryService(store, calendar, cache, cfg.Redis.SummaryTTLDuration()),
	}
}

func initControllers(s *services, calendar *util.Calendar, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		habit:   controller.NewHabitController(s.habit, s.toggle, calendar),
		day:     controller.NewDayController(s.day, calendar),
		summary: controller.NewSummaryController(s.summary),
		health:  controller.NewHealthController(db, rdb),
	}
}

func setupMiddlewares(ctx context.Context, router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(ctx, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// newRouter 组装存储、服务、控制器与路由，rdb 可为 nil
func newRouter(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, error) {
	loc, err := config.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		return nil, err
	}
	calendar := util.NewCalendar(loc)

	store := repository.NewStore(db)
	s := initServices(store, calendar, cfg, rdb)
	c := initControllers(s, calendar, db, rdb)

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	setupMiddlewares(ctx, router, cfg)
	registerRoutes(router, c)

	return router, nil
}

func ginMode(mode string) string {
	switch mode {
	case gin.DebugMode, gin.TestMode:
		return mode
	default:
		return gin.ReleaseMode
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(ginMode(cfg.Server.Mode))

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config: cfg,
		DB:     db,
		ctx:    ctx,
		cancel: cancel,
	}

	if cfg.MigrateOnly {
		return app
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			// 汇总缓存是可选的，连接失败时退化为每次实时计算
			logger.Log.Warn("Redis unavailable, summary cache disabled", zap.Error(err))
		} else {
			app.Redis = rdb
		}
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	router, err := newRouter(ctx, cfg, db, app.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to build router", zap.Error(err))
	}
	app.Router = router

	app.RegisterConfigCallback(logger.ApplyConfig)

	return app
}

func (a *App) watchConfig() {
	if a.Config.ConfigFile == "" {
		return
	}

	go func() {
		if err := configwatcher.WatchConfig(a.ctx, a.Config.ConfigFile, a.applyConfig); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	a.watchConfig()

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Failed to listen", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(ctx)

	logger.Log.Info("Server exiting")
}

// Close 释放后台任务、追踪、缓存与数据库连接
func (a *App) Close(ctx context.Context) {
	a.cancel()

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis", zap.Error(err))
		}
	}

	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Log.Error("Failed to close database", zap.Error(err))
		}
	}
}
