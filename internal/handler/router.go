package handler

import (
	"github.com/fluxur/backend/internal/config"
	"github.com/fluxur/backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires middleware and routes.
func NewRouter(
	cfg config.Config,
	log *zap.Logger,
	authService *service.AuthService,
	admin *service.AdminAuth,
	authHandler *AuthHandler,
	vanityHandler *VanityHandler,
	launchHandler *LaunchHandler,
	tokenHandler *TokenHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = maxImageBytes * 2
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	r.GET("/", Root)
	r.GET("/ping", Ping)
	r.GET("/openapi.json", OpenAPIDoc)

	api := r.Group("/api/v1")
	api.Use(SessionMiddleware(authService, log))
	{
		limiter := NewRateLimiter(authService.RateLimitPerMinute())
		auth := api.Group("/auth")
		{
			auth.POST("/nonce", limiter.Handler(), authHandler.Nonce)
			auth.POST("/verify", limiter.Handler(), authHandler.Verify)
			auth.GET("/me", authHandler.Me)
			auth.POST("/logout", authHandler.Logout)
		}

		vanity := api.Group("/vanity", RequireSession())
		{
			vanity.POST("/reserve", vanityHandler.Reserve)
			vanity.POST("/release", vanityHandler.Release)
			vanity.POST("/confirm", vanityHandler.Confirm)
		}

		pump := api.Group("/pump")
		{
			pump.POST("/create-tx", RequireSession(), launchHandler.CreateTx)
			pump.POST("/ipfs", launchHandler.UploadIPFS)
		}

		api.POST("/token/verify-creator", tokenHandler.VerifyCreator)
		api.GET("/commitments/:mint", tokenHandler.Commitment)

		adminGroup := api.Group("/admin", AdminMiddleware(admin))
		{
			adminGroup.POST("/vanity-mints", vanityHandler.Import)
			adminGroup.GET("/vanity-mints/stats", vanityHandler.Stats)
		}
	}

	return r
}
