package main

import (
	"log"
	"net/http"
	"time"

	"topup_store/internal/pkg/config"
	"topup_store/internal/pkg/middleware"
	"topup_store/internal/pkg/registry"
	"topup_store/internal/pkg/uploader"
	"topup_store/pkg/database"
	"topup_store/pkg/logger"
	"topup_store/pkg/metrics"

	// 模块通过 init() 自注册
	_ "topup_store/internal/domain/catalog"
	_ "topup_store/internal/domain/order"
	_ "topup_store/internal/domain/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 配置与日志
	config.LoadConfig()
	logger.InitLogger(config.GlobalConfig.App.Debug)
	defer logger.Sync()

	// 2. 基础设施
	db := database.InitDatabase()
	rdb := database.InitRedis()

	oss, err := uploader.NewAliyunOSSUploader(config.GlobalConfig.OSS)
	if err != nil {
		log.Fatalf("Failed to init OSS uploader: %v", err)
	}

	// 3. HTTP 引擎与全局中间件
	gin.SetMode(config.GlobalConfig.Server.Mode)
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.TraceMiddleware(),
		middleware.LoggerMiddleware(),
		middleware.RateLimitMiddleware(),
		metrics.Middleware(),
	)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Trace-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-Trace-ID"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	r.GET("/metrics", metrics.Handler())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 4. 初始化业务模块
	moduleCtx := &registry.ModuleContext{
		DB:       db,
		Redis:    rdb,
		Router:   r,
		Uploader: oss,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		log.Fatalf("Failed to init modules: %v", err)
	}

	// 5. 启动
	addr := ":" + config.GlobalConfig.Server.Port
	log.Printf("Server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
