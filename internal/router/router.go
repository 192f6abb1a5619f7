package router

import (
	"net/http"

	"github.com/deannos/solutions-company-website/internal/auth"
	"github.com/deannos/solutions-company-website/internal/config"
	"github.com/deannos/solutions-company-website/internal/handler"
	"github.com/deannos/solutions-company-website/internal/middleware"
	"github.com/deannos/solutions-company-website/internal/session"
	"github.com/deannos/solutions-company-website/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, routes and static resources.
func SetupRouter(cfg *config.Config, db *gorm.DB, sessions session.Repository) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// built frontend assets
	r.Static("/static", "./web/static")

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authn := auth.New(db, sessions, cfg.Session.TTL())
	contactStore := store.NewContactStore(db)

	authHandler := handler.NewAuthHandler(authn, cfg.Session.CookieName, cfg.Session.CookieSecure)
	contactHandler := handler.NewContactHandler(contactStore)
	auditHandler := handler.NewAuditHandler(db)

	// ====== API ======
	api := r.Group("/api")

	// public endpoints
	api.POST("/contact", contactHandler.Submit)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/user", authHandler.Me)

	// admin-only endpoints
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(authn, cfg.Session.CookieName),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/contact-messages", contactHandler.List)
	protected.GET("/contact-messages/stats", contactHandler.Stats)
	protected.GET("/admin/audit", auditHandler.List)

	return r
}
