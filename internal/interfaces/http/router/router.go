package router

import (
	"github.com/gestock/backend/internal/infrastructure/auth"
	"github.com/gestock/backend/internal/infrastructure/config"
	"github.com/gestock/backend/internal/infrastructure/logger"
	"github.com/gestock/backend/internal/interfaces/http/handler"
	"github.com/gestock/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System   *handler.SystemHandler
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Stock    *handler.StockHandler
	Order    *handler.OrderHandler
	Report   *handler.ReportHandler
}

// New builds the gin engine with the full middleware chain and all routes
// mounted under /api/v1
func New(cfg *config.Config, log *zap.Logger, tokens *auth.JWTManager, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS(middleware.CORSFromConfig(cfg.HTTP)))

	public := engine.Group("/api/v1")
	authed := engine.Group("/api/v1", middleware.Authenticate(tokens))

	h.System.Register(public)
	h.Auth.Register(public, authed)
	h.User.Register(authed)
	h.Product.Register(authed)
	h.Category.Register(authed)
	h.Stock.Register(authed)
	h.Order.Register(authed)
	h.Report.Register(authed)

	return engine
}
