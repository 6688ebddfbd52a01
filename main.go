package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrTch0o/APPUAIFOOD-sub000/configs"
	"github.com/MrTch0o/APPUAIFOOD-sub000/events"
	"github.com/MrTch0o/APPUAIFOOD-sub000/repository"
	"github.com/MrTch0o/APPUAIFOOD-sub000/routes"
	"github.com/MrTch0o/APPUAIFOOD-sub000/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		log.Fatal("load config: ", err)
	}

	logger, err := configs.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("build logger: ", err)
	}
	defer logger.Sync()

	// DB
	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	if err := configs.SetupDatabase(db); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}
	if err := configs.SeedAdmin(db, cfg, logger); err != nil {
		logger.Fatal("seed admin failed", zap.Error(err))
	}

	// live order feed, plus kafka when brokers are configured
	hub := ws.NewOrderHub(repository.NewRestaurantRepository(db), logger)
	go hub.Run()
	defer hub.Stop()

	publishers := events.Fanout{hub}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer kp.Close()
		publishers = append(publishers, kp)
	}

	logger.Info("service configuration",
		zap.String("port", cfg.Port),
		zap.String("db_driver", cfg.DBDriver),
		zap.Strings("kafka_brokers", cfg.KafkaBrokers),
		zap.String("kafka_topic", cfg.KafkaTopic))

	gin.SetMode(gin.ReleaseMode)
	router := routes.NewRouter(routes.Deps{
		DB:     db,
		Cfg:    cfg,
		Log:    logger,
		Events: publishers,
		Hub:    hub,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped")
}
