package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"civicsync/config"
	"civicsync/middlewares"
	"civicsync/notify"
	"civicsync/routes"
	"civicsync/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg, envFile, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if !envFile {
		sugar.Info("No .env file found")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	storeOpts, closeMongo := mongoOptions(cfg, sugar)
	defer closeMongo()

	issueStore, err := store.New(storeOpts...)
	if err != nil {
		sugar.Fatalf("Failed to build issue store: %v", err)
	}
	sugar.Infow("Issue store ready", "issues", issueStore.Len())

	var counter middlewares.RateCounter
	if cfg.RedisAddress != "" {
		rdb, err := config.ConnectRedis(cfg.RedisAddress, cfg.RedisPassword)
		if err != nil {
			sugar.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		counter = middlewares.NewRedisRateCounter(rdb)
		sugar.Infow("Issue rate limiter enabled", "limit", cfg.IssueDailyLimit)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := routes.NewRouter(routes.Deps{
		Config:        cfg,
		Store:         issueStore,
		Notifications: notify.NewCenter(),
		Logger:        logger,
		RateCounter:   counter,
		Registry:      reg,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sugar.Infof("Server listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-done
	sugar.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		sugar.Errorf("Forced shutdown: %v", err)
	}
	sugar.Info("Server stopped")
}

// mongoOptions hydrates the store from the Mongo mirror and keeps the mirror
// current. Without MONGODB_URI the store runs on seed data only.
func mongoOptions(cfg *config.Config, sugar *zap.SugaredLogger) ([]store.Option, func()) {
	if cfg.MongoURI == "" {
		return nil, func() {}
	}

	client, db, err := config.ConnectDB(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		sugar.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	sugar.Info("MongoDB connection established successfully!")
	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}

	mirror := store.NewMongoMirror(db.Collection("issues"), sugar)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	issues, found, err := mirror.Load(ctx)
	if err != nil {
		sugar.Fatalf("Failed to load issues: %v", err)
	}

	opts := []store.Option{store.WithChangeHook(mirror.Hook()), store.Restore(issues, found)}
	if found {
		return opts, closeFn
	}

	if err := mirror.Save(ctx, store.SeedIssues()); err != nil {
		sugar.Warnw("Failed to write seed issues", "error", err)
	}
	return opts, closeFn
}
