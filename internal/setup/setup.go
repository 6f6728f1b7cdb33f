package setup

import (
	"github.com/shashankb2004/edublog/internal/config"
	"github.com/shashankb2004/edublog/internal/handler"
	"github.com/shashankb2004/edublog/internal/jwt"
	"github.com/shashankb2004/edublog/internal/logger"
	"github.com/shashankb2004/edublog/internal/markdown"
	"github.com/shashankb2004/edublog/internal/middleware"
	"github.com/shashankb2004/edublog/internal/service"
	"github.com/shashankb2004/edublog/internal/storage/pg"
	"github.com/shashankb2004/edublog/internal/utils"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtKey := cfg.JwtKey()
	if jwtKey == "" {
		// Tokens signed with an ephemeral key do not survive a restart
		jwtKey = utils.GenerateEphemeralKey()
		logger.Log.Warn("jwt_key is not set, using an ephemeral key; issued tokens will be invalidated on restart")
	}
	jwtService := jwt.New(jwtKey, cfg.JwtTTL())

	auth := service.NewAuth(storage, jwtService)
	blog := service.NewBlog(storage, cfg.Public.ExcerptLength)

	h := handler.New(auth, blog, markdown.New(), storage, cfg)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(jwtService),
		Config:         cfg,
	}, nil
}
