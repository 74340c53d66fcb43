package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soundem/soundem/internal/container"
	handlers "github.com/soundem/soundem/internal/interface/http"
	"github.com/soundem/soundem/internal/interface/middleware"
)

// CatalogModule wires the artist/album/song browse surface. Reads are
// public; song listings pick up per-user favorite flags when a token is
// presented. Artwork upload requires auth.
type CatalogModule struct {
	Handler  *handlers.CatalogHandler
	Resolver middleware.TokenResolver
}

func NewCatalogModule(h *handlers.CatalogHandler, resolver middleware.TokenResolver) *CatalogModule {
	return &CatalogModule{Handler: h, Resolver: resolver}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	public := rg.Group("/")
	public.Use(browseLimiter, middleware.OptionalAuth(m.Resolver))
	{
		public.GET("/artists", m.Handler.ListArtists)
		public.GET("/artists/:id", m.Handler.GetArtist)
		public.GET("/albums", m.Handler.ListAlbums)
		public.GET("/albums/:id", m.Handler.GetAlbum)
		public.GET("/songs", m.Handler.ListSongs)
		public.GET("/songs/:id", m.Handler.GetSong)
		public.GET("/stats", m.Handler.Stats)
	}

	// /songs/search would collide with /songs/:id in gin's route tree.
	rg.GET("/search", searchLimiter, m.Handler.SearchSongs)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Resolver))
	auth.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.PUT("/albums/:id/artwork", m.Handler.UploadArtwork)
	}
}
