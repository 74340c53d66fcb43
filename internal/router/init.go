package router

import (
	"github.com/soundem/soundem/internal/application"
	"github.com/soundem/soundem/internal/container"
	pginfra "github.com/soundem/soundem/internal/infrastructure/postgres"
	handlers "github.com/soundem/soundem/internal/interface/http"
	"github.com/soundem/soundem/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	pool := container.GetPGPool()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(pool)
	catalogRepo := pginfra.NewCatalogRepository(pool)
	favoriteRepo := pginfra.NewFavoriteRepository(pool)

	userSvc := application.NewUserService(
		userRepo,
		container.GetTokenCodec(),
		container.GetRabbitPub(),
		logger,
		cfg.MailSendEnabled,
	)
	catalogSvc := application.NewCatalogService(
		catalogRepo,
		container.GetRedis(),
		logger,
		container.GetES(),
		cfg.ESSongsIndex,
		container.GetGCS(),
		cfg.GCSBucket,
		cfg.StatsCacheTTL,
	)
	favoriteSvc := application.NewFavoriteService(favoriteRepo, catalogRepo)

	userHandler := handlers.NewUserHandler(userSvc, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogSvc, favoriteSvc, logger)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteSvc, logger)

	r.Add(modules.NewUserModule(userHandler, userSvc))
	r.Add(modules.NewCatalogModule(catalogHandler, userSvc))
	r.Add(modules.NewFavoriteModule(favoriteHandler, userSvc))
	r.Add(modules.NewDebugModule())
}
