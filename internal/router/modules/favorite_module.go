package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soundem/soundem/internal/container"
	handlers "github.com/soundem/soundem/internal/interface/http"
	"github.com/soundem/soundem/internal/interface/middleware"
)

// FavoriteModule wires the favorite ledger routes, all protected:
// PUT /api/songs/:id/favorite, GET /api/favorites
type FavoriteModule struct {
	Handler  *handlers.FavoriteHandler
	Resolver middleware.TokenResolver
}

func NewFavoriteModule(h *handlers.FavoriteHandler, resolver middleware.TokenResolver) *FavoriteModule {
	return &FavoriteModule{Handler: h, Resolver: resolver}
}

func (m *FavoriteModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Resolver))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.PUT("/songs/:id/favorite", m.Handler.SetFavorite)
		auth.GET("/favorites", m.Handler.ListFavorites)
	}
}
