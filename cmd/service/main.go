package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muss3ab/tsh/config"
	"github.com/muss3ab/tsh/internal/cache"
	"github.com/muss3ab/tsh/internal/hashing"
	"github.com/muss3ab/tsh/internal/producer"
	"github.com/muss3ab/tsh/internal/repository"
	"github.com/muss3ab/tsh/internal/router"
	"github.com/muss3ab/tsh/internal/service"
	"github.com/muss3ab/tsh/internal/token"
	"github.com/muss3ab/tsh/pkg/database"
	"github.com/muss3ab/tsh/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title TSH Storefront API
// @version 1.0
// @description REST API for the TSH e-commerce storefront.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	var cacheClient service.CacheClient
	if cfg.Redis.Enabled {
		rc, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rc.Close()
		cacheClient = rc
		log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}

	var events service.EventBus
	if cfg.Kafka.Enabled {
		op := producer.NewOrderProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer op.Close()
		events = service.NewKafkaEventBus(op)
		log.Info("kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	hasher := hashing.NewBcrypt(0)

	authSvc := service.NewAuthService(repos.Users, hasher, tokens, cacheClient, cfg.JWT.AccessTTL, log)
	catalogSvc := service.NewCatalogService(repos.Products, repos.Categories, cacheClient, log)
	cartSvc := service.NewCartService(repos.Orders, repos.OrderItems, repos.Products)
	orderSvc := service.NewOrderService(repos.Orders, events, log)
	wishlistSvc := service.NewWishlistService(repos.Wishlists, repos.Products)

	r := router.Router(router.Deps{
		Auth:     authSvc,
		Catalog:  catalogSvc,
		Cart:     cartSvc,
		Orders:   orderSvc,
		Wishlist: wishlistSvc,
		Tokens:   tokens,
		Log:      log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
	log.Info("HTTP server stopped gracefully")
}
