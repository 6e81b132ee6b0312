package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fluxur/backend/internal/client"
	"github.com/fluxur/backend/internal/config"
	"github.com/fluxur/backend/internal/db"
	"github.com/fluxur/backend/internal/events"
	"github.com/fluxur/backend/internal/handler"
	"github.com/fluxur/backend/internal/secret"
	"github.com/fluxur/backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// @title Fluxur Backend API
// @version 1.0
// @description Wallet sign-in, vanity mint reservation and token launch API.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := fx.New(
		fx.Provide(
			config.Load,
			newLogger,
			newStore,
			newSecretBox,
			newPublisher,
			newPumpPortal,
			newSolanaRPC,
			newDexscreener,
			client.NewOffChainMetadataClient,
			newImageStore,
			newAuthService,
			newVanityService,
			newLaunchService,
			newCreatorService,
			newCommitmentService,
			newAdminAuth,
			handler.NewAuthHandler,
			handler.NewVanityHandler,
			handler.NewLaunchHandler,
			handler.NewTokenHandler,
			handler.NewRouter,
		),
		fx.Invoke(startSweeper, startHTTPServer),
	)

	app.Run()
}

// store is everything the services persist through.
type store interface {
	service.AuthStore
	service.VanityStore
	service.CommitmentStore
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Server.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newStore(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (store, error) {
	if cfg.Postgres.Driver == "memory" {
		log.Warn("using in-memory store; data is lost on restart")
		return db.NewMemory(), nil
	}
	if cfg.Postgres.Driver != "postgres" {
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Postgres.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})
	return db.NewPostgres(pool), nil
}

func newSecretBox(cfg config.Config, log *zap.Logger) (*secret.Box, error) {
	box, err := secret.New(cfg.Vanity.SealingKey)
	if err != nil {
		return nil, fmt.Errorf("%w: VANITY_SEALING_KEY: %v", service.ErrMisconfigured, err)
	}
	if !box.Enabled() {
		log.Warn("VANITY_SEALING_KEY not set; vanity secrets are stored unsealed")
	}
	return box, nil
}

// newPublisher streams events to Redis when REDIS_URL is set and drops them
// otherwise.
func newPublisher(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (events.Publisher, error) {
	if cfg.Redis.URL == "" {
		return events.Nop{}, nil
	}

	rdb, err := events.NewRedisClient(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	stream, err := events.NewRedisStreamPublisher(rdb, events.NewZapLogger(log))
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}
	pub := events.NewWatermillPublisher(stream, cfg.Redis.Stream)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.Join(pub.Close(), rdb.Close())
		},
	})
	return pub, nil
}

func newPumpPortal(cfg config.Config) *client.PumpPortalClient {
	return client.NewPumpPortalClient(cfg.Pump)
}

func newSolanaRPC(cfg config.Config) *client.SolanaRPC {
	return client.NewSolanaRPC(cfg.Solana)
}

func newDexscreener(cfg config.Config) *client.DexscreenerClient {
	return client.NewDexscreenerClient(cfg.Solana)
}

// newImageStore returns a nil interface when S3 is not configured so the
// launch service skips archiving.
func newImageStore(cfg config.Config) (service.ImageStore, error) {
	if !cfg.S3.Enabled() {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s3c, err := client.NewS3Client(ctx, cfg.S3)
	if err != nil {
		return nil, err
	}
	return client.NewS3ImageStore(s3c, cfg.S3), nil
}

func newAuthService(repo store, pub events.Publisher, log *zap.Logger, cfg config.Config) (*service.AuthService, error) {
	return service.NewAuthService(repo, pub, log, cfg.Auth)
}

func newVanityService(repo store, box *secret.Box, pub events.Publisher, log *zap.Logger, cfg config.Config) (*service.VanityService, error) {
	return service.NewVanityService(repo, box, pub, log, cfg.Vanity)
}

func newLaunchService(
	vanity *service.VanityService,
	pump *client.PumpPortalClient,
	images service.ImageStore,
	repo store,
	pub events.Publisher,
	log *zap.Logger,
) *service.LaunchService {
	return service.NewLaunchService(vanity, pump, pump, images, repo, pub, log)
}

func newCreatorService(rpc *client.SolanaRPC, dex *client.DexscreenerClient, offchain *client.OffChainMetadataClient, log *zap.Logger) *service.CreatorService {
	return service.NewCreatorService(rpc, dex, offchain, log)
}

func newCommitmentService(repo store) *service.CommitmentService {
	return service.NewCommitmentService(repo)
}

func newAdminAuth(cfg config.Config, log *zap.Logger) *service.AdminAuth {
	admin := service.NewAdminAuth(cfg.Admin)
	if !admin.Enabled() {
		log.Warn("ADMIN_JWT_SECRET not set; admin routes reject every request")
	}
	return admin
}

func startSweeper(lc fx.Lifecycle, vanity *service.VanityService) {
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})
			go func() {
				defer close(done)
				vanity.RunSweeper(ctx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func startHTTPServer(lc fx.Lifecycle, router *gin.Engine, cfg config.Config, log *zap.Logger, shutdowner fx.Shutdowner) {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
