package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/boemer00/cooper-video-analysis/internal/config"
	"github.com/boemer00/cooper-video-analysis/internal/domain/services"
	"github.com/boemer00/cooper-video-analysis/internal/infrastructure/cache"
	"github.com/boemer00/cooper-video-analysis/internal/infrastructure/queue"
	"github.com/boemer00/cooper-video-analysis/internal/infrastructure/store"
	apihttp "github.com/boemer00/cooper-video-analysis/internal/interfaces/http"
	"github.com/boemer00/cooper-video-analysis/internal/interfaces/http/middleware"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	repo := store.NewRedisStore(redisClient, time.Duration(cfg.Analysis.ResultTTLHours)*time.Hour)
	jobQueue := queue.NewRedisQueue(redisClient.Client)
	analysisService := services.NewAnalysisService(repo, jobQueue, cfg.Analysis.FacialIntervalSecs, cfg.Analysis.OutputDir, log)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(log))

	apihttp.NewAnalysisHandler(analysisService).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Infof("🚀 API listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("🛑 Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Forced shutdown: %v", err)
	}
	log.Info("✅ Server stopped cleanly")
}
