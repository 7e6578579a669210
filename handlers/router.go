package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"binimg/config"
	"binimg/internal/pipeline"
	"binimg/metrics"
)

// NewRouter builds the API router for cfg.
func NewRouter(cfg *config.Config, rec *metrics.Recorder) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{
		"X-Stego-PSNR", "X-Stego-Digest", "X-Stego-Capacity", "X-Stego-Copies", "X-Stego-Name",
		"Content-Disposition", RequestIDHeader,
	}
	corsConfig.AllowCredentials = true
	if len(corsConfig.AllowOrigins) > 0 {
		router.Use(cors.New(corsConfig))
	}

	stegoHandler := NewStegoHandler(cfg.Server.MaxUploadSize.Int64(), pipeline.Options{
		DefaultName: cfg.Encode.DefaultName,
		Compress:    cfg.Encode.Compress,
		MinPSNR:     cfg.Encode.MinPSNR,
		Recorder:    rec,
	})

	api := router.Group("/api/v1")
	{
		api.GET("/health", stegoHandler.HealthCheck)

		stego := api.Group("/stego")
		{
			stego.POST("/encode", stegoHandler.Encode)
			stego.POST("/decode", stegoHandler.Decode)
			stego.POST("/capacity", stegoHandler.Capacity)
			stego.POST("/inspect", stegoHandler.Inspect)
		}
	}

	if reg := metrics.GetRegistry(); reg != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	return router
}
