package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/assetsvc/domain"
	"github.com/you/assetsvc/internal/config"
	httpx "github.com/you/assetsvc/internal/http"
	"github.com/you/assetsvc/internal/http/handlers"
	"github.com/you/assetsvc/internal/http/middleware"
	"github.com/you/assetsvc/internal/infrastructure/auth"
	"github.com/you/assetsvc/internal/infrastructure/database"
	"github.com/you/assetsvc/internal/infrastructure/mediahost"
	"github.com/you/assetsvc/internal/infrastructure/notifications"
	"github.com/you/assetsvc/internal/infrastructure/repositories"
	"github.com/you/assetsvc/internal/infrastructure/storage"
	"github.com/you/assetsvc/internal/logging"
	"github.com/you/assetsvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Enforcer    domain.CasbinEnforcer

	// Repositories
	UserRepo  domain.UserRepository
	AssetRepo domain.AssetRepository

	// Collaborators
	PasswordSvc    domain.PasswordService
	TokenSvc       domain.TokenService
	EmailTransport domain.EmailTransport
	MediaHost      domain.MediaHost
	Storage        domain.LocalStorage
	Audit          domain.AuditLogger

	// Services
	OTPSvc          domain.OTPService
	Dispatcher      domain.NotificationDispatcher
	RegistrationSvc domain.RegistrationService
	Classifier      domain.AssetClassifier
	AssetSvc        domain.AssetService
	PolicySvc       domain.PolicyService
}

// NewContainer connects to Postgres and Redis, then builds every service
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if cfg.Migrate {
		if err := database.Migrate(ctx, cfg.DSN); err != nil {
			return nil, err
		}
	}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if !cfg.Migrate {
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(ctx); err != nil {
		return nil, err
	}

	return newContainer(ctx, cfg, logger, db, rdb.Client)
}

// newContainer wires services over already opened connections
func newContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *gorm.DB, rdb *redis.Client) (*Container, error) {
	c := &Container{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		RedisClient: rdb,
		Audit:       logging.NewAuditLogger(logger),
	}

	if err := c.initAuthorization(); err != nil {
		return nil, err
	}
	c.initRepositories()
	if err := c.initCollaborators(ctx); err != nil {
		return nil, err
	}
	c.initServices()

	return c, nil
}

func (c *Container) initAuthorization() error {
	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("casbin: %w", err)
	}
	c.Enforcer = services.NewCasbinEnforcerWrapper(cas.E)
	c.PolicySvc = services.NewPolicyServiceWithEnforcer(c.Enforcer)

	seeded, err := services.SeedDefaultPolicies(c.PolicySvc)
	if err != nil {
		return fmt.Errorf("seed policies: %w", err)
	}
	if seeded {
		c.Logger.Info("casbin: seeded default policies", "count", len(services.DefaultPolicies))
	}
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.AssetRepo = repositories.NewAssetRepository(c.DB)
}

func (c *Container) initCollaborators(ctx context.Context) error {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.VerificationTTL,
	)
	c.EmailTransport = notifications.NewSMTPService(c.Config.SMTP, c.Logger)

	if c.Config.MediaHost.Enabled() {
		host, err := mediahost.NewS3Host(ctx, c.Config.MediaHost)
		if err != nil {
			return fmt.Errorf("media host: %w", err)
		}
		c.MediaHost = host
	} else {
		c.Logger.Warn("media host not configured; cloud references fall back to extension classification")
		c.MediaHost = mediahost.NewDisabledHost()
	}

	local, err := storage.NewLocalStorage(c.Config.UploadDir, c.Config.UploadPublicPrefix, c.Config.MaxUploadBytes)
	if err != nil {
		return err
	}
	c.Storage = local
	return nil
}

func (c *Container) initServices() {
	c.OTPSvc = services.NewOTPService(
		c.RedisClient,
		services.NewPasscodeGenerator(c.Config.OTP_Length),
		services.OTPConfig{TTL: c.Config.OTP_TTL},
	)
	c.Dispatcher = services.NewNotificationDispatcher(c.EmailTransport, c.Config.OTP_TTL, c.Logger)
	c.RegistrationSvc = services.NewRegistrationService(
		c.UserRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.Dispatcher,
		c.Audit,
		services.RegistrationConfig{RequireVerification: c.Config.RequireVerification},
	)

	c.Classifier = services.NewAssetClassifier(c.MediaHost, c.Logger)
	c.AssetSvc = services.NewAssetService(c.AssetRepo, c.Classifier, c.Audit)
}

// Router builds the HTTP handler tree over the container's services
func (c *Container) Router() *gin.Engine {
	authH := handlers.NewAuthHandlers(c.RegistrationSvc)
	assetH := handlers.NewAssetHandlers(c.AssetSvc, c.MediaHost, c.Storage, c.Audit, c.Config.MaxUploadBytes)
	polH := handlers.NewPolicyHandlers(c.PolicySvc)

	return httpx.BuildRouter(httpx.RouterConfig{
		CORSOrigins:  c.Config.CORSOrigins,
		UploadDir:    c.Config.UploadDir,
		UploadPrefix: c.Config.UploadPublicPrefix,
		RequestLog:   gin.Mode() != gin.TestMode,
	}, authH, assetH, polH, middleware.NewAuthMW(c.TokenSvc), middleware.NewCasbinMW(c.Enforcer))
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
