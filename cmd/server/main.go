package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"knoxtech-api/internal/auth"
	"knoxtech-api/internal/config"
	"knoxtech-api/internal/domain"
	apphttp "knoxtech-api/internal/http"
	"knoxtech-api/internal/repository/sqlite"
	"knoxtech-api/internal/service"
	"knoxtech-api/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}
	if strings.TrimSpace(cfg.Database.Path) == "" {
		logger.Fatalf("database path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	postRepo := sqlite.NewPostRepository(db)
	catalogRepo := sqlite.NewCatalogRepository(db)
	billingRepo := sqlite.NewBillingRepository(db)
	siteRepo := sqlite.NewSiteRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := postRepo.Init(ctx); err != nil {
		logger.Fatalf("init post repository: %v", err)
	}
	if err := catalogRepo.Init(ctx); err != nil {
		logger.Fatalf("init catalog repository: %v", err)
	}
	if err := billingRepo.Init(ctx); err != nil {
		logger.Fatalf("init billing repository: %v", err)
	}
	if err := siteRepo.Init(ctx); err != nil {
		logger.Fatalf("init site repository: %v", err)
	}

	userService := service.NewUserService(userRepo)
	contentService := service.NewContentService(postRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	billingService := service.NewBillingService(billingRepo)
	siteService := service.NewSiteService(siteRepo)

	if cfg.Auth.AdminEmail != "" && cfg.Auth.AdminPassword != "" {
		if _, err := userService.Provision(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, domain.RoleAdmin); err != nil {
			logger.Fatalf("provision admin account: %v", err)
		}
		logger.Infof("admin account %s provisioned", strings.ToLower(cfg.Auth.AdminEmail))
	}

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	tokens := auth.NewTokens(
		[]byte(cfg.Auth.JWTSecret),
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
	)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		userService,
		contentService,
		catalogService,
		billingService,
		siteService,
		tokens,
		storageSvc,
		cfg.Storage.Bucket,
		logger,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

// buildStorage returns nil when no bucket is configured; document upload
// routes then report storage as unavailable instead of failing startup.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Warn("storage bucket not configured; document uploads disabled")
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
