package routes

import (
	"github.com/ASS429/ma-tontine-backend/internal/handlers"
	"github.com/ASS429/ma-tontine-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tontineHandler *handlers.TontineHandler,
	memberHandler *handlers.MemberHandler,
	contributionHandler *handlers.ContributionHandler,
	drawHandler *handlers.DrawHandler,
	paymentHandler *handlers.PaymentHandler,
	accountHandler *handlers.AccountHandler,
	revenueHandler *handlers.RevenueHandler,
	alertHandler *handlers.AlertHandler,
	statsHandler *handlers.StatsHandler,
	adminHandler *handlers.AdminHandler,
) {
	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/init-2fa", authHandler.Init2FA)
		auth.POST("/verify-2fa", authHandler.Verify2FA)
		auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
	}

	users := v1.Group("/users")
	users.Use(middleware.AuthRequired())
	{
		users.GET("/me", userHandler.GetProfile)
		users.PUT("/me", userHandler.UpdateProfile)
		users.DELETE("/me", userHandler.DeleteProfile)
		users.POST("/upgrade", userHandler.Upgrade)
	}

	tontines := v1.Group("/tontines")
	tontines.Use(middleware.AuthRequired())
	{
		tontines.GET("", tontineHandler.List)
		tontines.POST("", tontineHandler.Create)
		tontines.GET("/:id", tontineHandler.Get)
		tontines.PUT("/:id", tontineHandler.Update)
		tontines.DELETE("/:id", tontineHandler.Delete)
	}

	members := v1.Group("/members")
	members.Use(middleware.AuthRequired())
	{
		members.POST("", memberHandler.Add)
		members.GET("/:tontineId", memberHandler.List)
	}

	contributions := v1.Group("/contributions")
	contributions.Use(middleware.AuthRequired())
	{
		contributions.GET("/:tontineId", contributionHandler.List)
		contributions.GET("/status/:tontineId", contributionHandler.Status)
		contributions.POST("", contributionHandler.Create)
	}

	draws := v1.Group("/draws")
	draws.Use(middleware.AuthRequired())
	{
		draws.GET("/:tontineId", drawHandler.List)
		draws.POST("/run/:tontineId", drawHandler.Run)
	}

	payments := v1.Group("/payments")
	payments.Use(middleware.AuthRequired())
	{
		payments.GET("/:tontineId", paymentHandler.List)
		payments.POST("", paymentHandler.Create)
		payments.PUT("/:id", paymentHandler.Update)
		payments.DELETE("/:id", paymentHandler.Delete)
	}

	accounts := v1.Group("/accounts")
	accounts.Use(middleware.AuthRequired())
	{
		accounts.GET("", accountHandler.List)
		accounts.POST("", accountHandler.Create)
		accounts.PUT("/:id", accountHandler.UpdateBalance)
	}

	revenues := v1.Group("/revenues")
	revenues.Use(middleware.AuthRequired())
	{
		revenues.GET("", revenueHandler.List)
		revenues.POST("", revenueHandler.Create)
	}

	alerts := v1.Group("/alerts")
	alerts.Use(middleware.AuthRequired())
	{
		alerts.GET("", alertHandler.List)
		alerts.DELETE("/:id", alertHandler.Delete)
	}

	stats := v1.Group("/stats")
	stats.Use(middleware.AuthRequired())
	{
		stats.GET("/overview", statsHandler.Overview)
	}

	// Admin routes (require admin role)
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/settings", adminHandler.GetSettings)
		admin.PUT("/settings", adminHandler.UpdateSettings)
		admin.GET("/alerts", adminHandler.ListAlerts)
	}
}
