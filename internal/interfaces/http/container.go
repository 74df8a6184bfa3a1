package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"servicedesk/internal/application/servicerequest/services"
	"servicedesk/internal/application/servicerequest/usecases"
	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/infrastructure/auth"
	"servicedesk/internal/infrastructure/config"
	"servicedesk/internal/infrastructure/email"
	"servicedesk/internal/infrastructure/permission"
	"servicedesk/internal/infrastructure/ratelimit"
	"servicedesk/internal/infrastructure/storage"
	"servicedesk/internal/interfaces/http/middleware"
	"servicedesk/internal/shared/db"
	"servicedesk/internal/shared/logger"
	"servicedesk/internal/shared/services/markdown"
)

// Container holds the infrastructure components, repositories, use cases
// and handlers of the HTTP server and wires them together.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter

	// Infrastructure services
	jwtSvc      *auth.JWTService
	hasher      *auth.BcryptPasswordHasher
	enforcer    *permission.Enforcer
	blobs       servicerequest.BlobStorage
	attachments *services.AttachmentStore
	txMgr       *db.TransactionManager
	renderer    markdown.Renderer
	notifier    usecases.AssignmentNotifier
}

// NewContainer builds every component the router needs. ctx bounds the
// startup checks against external services.
func NewContainer(ctx context.Context, database *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     database,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}
	c.repos = newRepositories(database, log)
	c.attachments = services.NewAttachmentStore(c.repos.attachmentRepo, c.blobs, log)
	c.ucs = c.newUseCases()
	c.hdlrs = c.newHandlers()

	return c, nil
}

// initInfrastructure sets up Redis, blob storage, auth services, the role
// policy and the early middlewares.
func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.cfg
	log := c.log

	var limiter ratelimit.Limiter
	if cfg.Redis.Enabled {
		client, err := initRedis(ctx, cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
		limiter = ratelimit.NewRedisLimiter(client)
	} else {
		log.Infow("redis disabled, rate limiting is per process")
		limiter = ratelimit.NewMemoryLimiter()
	}

	blobs, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize %s storage: %w", cfg.Storage.Driver, err)
	}
	c.blobs = blobs
	log.Infow("attachment storage ready", "driver", cfg.Storage.Driver)

	enforcer, err := permission.NewEnforcer(c.db, log)
	if err != nil {
		return err
	}
	c.enforcer = enforcer
	if err := c.seedPoliciesIfEmpty(); err != nil {
		return err
	}

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	c.txMgr = db.NewTransactionManager(c.db)
	c.renderer = markdown.NewRenderer()

	if cfg.Email.Enabled() {
		c.notifier = email.NewSMTPNotifier(cfg.Email, cfg.Server.BaseURL, log)
	} else {
		log.Infow("smtp host not configured, assignment emails are disabled")
	}

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)
	c.rateLimiter = middleware.NewRateLimiter(
		limiter,
		cfg.Auth.LoginRateLimit,
		time.Duration(cfg.Auth.LoginRateWindowSeconds)*time.Second,
		log,
	)

	return nil
}

// seedPoliciesIfEmpty loads the policy file into an empty casbin_rule
// table so a fresh install is usable without running seed-policies.
func (c *Container) seedPoliciesIfEmpty() error {
	existing, err := c.enforcer.Policies()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	file, err := permission.LoadPolicyFile(c.cfg.Permission.PolicyFile)
	if err != nil {
		c.log.Warnw("no role policy stored and policy file unavailable, every request will be denied",
			"policy_file", c.cfg.Permission.PolicyFile, "error", err)
		return nil
	}
	return permission.Seed(c.enforcer, file, c.log)
}

// initRedis creates and tests the Redis client connection.
func initRedis(ctx context.Context, cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.GetAddr(), err)
	}
	log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())

	return client, nil
}

// Shutdown releases the connections the container opened. The database is
// owned by the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
