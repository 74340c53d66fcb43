package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soundem/soundem/internal/container"
	handlers "github.com/soundem/soundem/internal/interface/http"
	"github.com/soundem/soundem/internal/interface/middleware"
)

// UserModule wires registration, login and profile routes.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/profile, PUT /api/profile/password
type UserModule struct {
	Handler  *handlers.UserHandler
	Resolver middleware.TokenResolver
}

func NewUserModule(h *handlers.UserHandler, resolver middleware.TokenResolver) *UserModule {
	return &UserModule{Handler: h, Resolver: resolver}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Resolver))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile/password", m.Handler.ChangePassword)
	}
}
