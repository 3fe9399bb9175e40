package internal

import (
	"context"
	"net/http"
	"time"

	"vidshare/pkg/config"
	"vidshare/pkg/jwt"
	"vidshare/pkg/middleware"
	"vidshare/pkg/storage"
	apiHTTP "vidshare/services/api/internal/controller/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Auth  *apiHTTP.AuthHandler
	Video *apiHTTP.VideoHandler
	Admin *apiHTTP.AdminHandler
}

type HealthResponse struct {
	OK bool `json:"ok"`
	DB bool `json:"db"`
}

// NewRouter mounts every route. redisClient may be nil, which disables rate
// limiting; dbReady reports store connectivity for the health check.
func NewRouter(cfg *config.Config, jwtService *jwt.Service, redisClient *redis.Client, h Handlers, dbReady func(ctx context.Context) bool) *gin.Engine {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.MetricsMiddleware())

	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.StorageDriver == "" || cfg.StorageDriver == "local" {
		r.Static(storage.URLPrefix, cfg.UploadDir)
	}

	api := r.Group("/api")

	// GET /api/health
	// @Summary  Liveness and store connectivity
	// @Tags     health
	// @Produce  json
	// @Success  200 {object} HealthResponse
	// @Router   /health [get]
	api.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		c.JSON(http.StatusOK, HealthResponse{OK: true, DB: dbReady(ctx)})
	})

	api.Use(middleware.IdentityMiddleware(jwtService, cfg.TrustIdentityHeaders))

	// Registered ahead of the limiter: view calls are never throttled.
	api.POST("/videos/:id/view", h.Video.RecordView)

	if redisClient != nil && cfg.RateLimitPerMinute > 0 {
		api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute))
	}

	{
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/admin/login", h.Auth.AdminLogin)
		api.GET("/auth/notifications", h.Auth.Notifications)
		api.POST("/auth/upload-logo", h.Auth.UploadLogo)

		api.POST("/upload", h.Video.Upload)
		api.POST("/videos", h.Video.CreateVideo)
		api.GET("/videos", h.Video.ListVideos)
		api.GET("/videos/:id", h.Video.GetVideo)
		api.PATCH("/videos/:id", h.Video.UpdateVideo)
		api.DELETE("/videos/:id", h.Video.DeleteVideo)

		admin := api.Group("/admin/videos")
		admin.PATCH("/:id/mute-override", h.Admin.SetMuteOverride)
		admin.PATCH("/:id/approve", h.Admin.SetApproval)
		admin.PATCH("/:id/visibility", h.Admin.SetVisibility)
		admin.DELETE("/:id", h.Admin.DeleteVideo)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept", middleware.HeaderUserID, middleware.HeaderAdmin},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
