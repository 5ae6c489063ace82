package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ASS429/ma-tontine-backend/internal/config"
	"github.com/ASS429/ma-tontine-backend/internal/database"
	"github.com/ASS429/ma-tontine-backend/internal/handlers"
	"github.com/ASS429/ma-tontine-backend/internal/middleware"
	"github.com/ASS429/ma-tontine-backend/internal/routes"
	"github.com/ASS429/ma-tontine-backend/internal/service"
	"github.com/ASS429/ma-tontine-backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, nil)))

	if err := config.LoadConfig(); err != nil {
		slog.Warn("failed to load YAML config, using defaults", "error", err)
	}
	appConfig := config.GetConfig()

	db, err := database.InitDB()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Email providers: Resend primary, MailerSend fallback
	providers := []service.EmailProvider{}
	if appConfig.Email.ResendAPIKey != "" {
		providers = append(providers, service.NewResendService(
			appConfig.Email.ResendAPIKey, appConfig.Email.FromEmail, appConfig.Email.FromName))
	}
	if appConfig.Email.MailerSendAPIKey != "" {
		providers = append(providers, service.NewMailerSendService(
			appConfig.Email.MailerSendAPIKey, appConfig.Email.FromEmail, appConfig.Email.FromName))
	}
	emailSvc := service.NewMultiProviderEmailService(providers)
	otpSvc := services.NewOTPService(db, emailSvc)

	var alertEmails service.EmailProvider
	if emailSvc.ProviderCount() > 0 {
		alertEmails = emailSvc
	}
	alertSvc := services.NewAlertService(db, alertEmails)

	authHandler := handlers.NewAuthHandler(db, otpSvc, alertSvc)
	userHandler := handlers.NewUserHandler(db, alertSvc)
	tontineHandler := handlers.NewTontineHandler(db, alertSvc)
	memberHandler := handlers.NewMemberHandler(db)
	contributionHandler := handlers.NewContributionHandler(db)
	drawHandler := handlers.NewDrawHandler(db, alertSvc)
	paymentHandler := handlers.NewPaymentHandler(db)
	accountHandler := handlers.NewAccountHandler(db)
	revenueHandler := handlers.NewRevenueHandler(db)
	alertHandler := handlers.NewAlertHandler(alertSvc)
	statsHandler := handlers.NewStatsHandler(db)
	adminHandler := handlers.NewAdminHandler(db, alertSvc)

	routes.SetupRoutes(r, authHandler, userHandler, tontineHandler, memberHandler,
		contributionHandler, drawHandler, paymentHandler, accountHandler,
		revenueHandler, alertHandler, statsHandler, adminHandler)

	addr := fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.Port)
	slog.Info("API started", "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
