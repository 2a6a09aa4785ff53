package router

import (
	"github.com/gin-gonic/gin"
	"github.com/scart/backend/internal/infrastructure/auth"
	"github.com/scart/backend/internal/infrastructure/config"
	"github.com/scart/backend/internal/interfaces/http/handler"
	"github.com/scart/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles the handlers the router wires up
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	Customer  *handler.CustomerHandler
	Product   *handler.ProductHandler
	Quotation *handler.QuotationHandler
}

// New builds the gin engine with all middleware and routes registered
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) (*gin.Engine, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
	)

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")

	// Public routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.JWTAuth(jwtService))
	{
		authed.GET("/system/info", h.System.Info)

		customers := authed.Group("/customers")
		{
			customers.POST("", h.Customer.Create)
			customers.GET("", h.Customer.List)
			customers.GET("/:id", h.Customer.Get)
			customers.PUT("/:id", h.Customer.Update)
			customers.DELETE("/:id", middleware.RequireAdmin(), h.Customer.Delete)
			customers.POST("/:id/approve", middleware.RequireAdmin(), h.Customer.Approve)
			customers.POST("/:id/reject", middleware.RequireAdmin(), h.Customer.Reject)
			customers.GET("/:id/approval-history", middleware.RequireAdmin(), h.Customer.ApprovalHistory)
		}

		products := authed.Group("/products")
		{
			products.POST("", h.Product.Create)
			products.GET("", h.Product.List)
			products.GET("/:id", h.Product.Get)
			products.PUT("/:id", h.Product.Update)
			products.DELETE("/:id", h.Product.Delete)
		}

		quotations := authed.Group("/quotations")
		{
			quotations.POST("", h.Quotation.Create)
			quotations.GET("", h.Quotation.List)
			quotations.GET("/:id", h.Quotation.Get)
			quotations.PUT("/:id", h.Quotation.Update)
			quotations.DELETE("/:id", h.Quotation.Delete)
			quotations.POST("/:id/revisions", h.Quotation.CreateRevision)
		}

		settings := authed.Group("/settings")
		{
			settings.GET("/rates", h.Quotation.GetRates)
			settings.PUT("/rates", middleware.RequireAdmin(), h.Quotation.UpdateRates)
		}
	}

	return engine, nil
}
