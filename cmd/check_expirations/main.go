// Command check_expirations downgrades Premium accounts whose subscription
// has lapsed. Run it from cron once a day.
package main

import (
	"log/slog"
	"os"

	"github.com/ASS429/ma-tontine-backend/internal/config"
	"github.com/ASS429/ma-tontine-backend/internal/database"
	"github.com/ASS429/ma-tontine-backend/internal/models"
	"github.com/ASS429/ma-tontine-backend/internal/services"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

func main() {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, nil)))

	if err := config.LoadConfig(); err != nil {
		slog.Warn("failed to load YAML config, using defaults", "error", err)
	}

	db, err := database.InitDB()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	alertSvc := services.NewAlertService(db, nil)

	rows, err := db.Query(`
		UPDATE users
		SET plan = $1, payment_status = 'pending', expiration = NULL
		WHERE plan = $2 AND expiration IS NOT NULL AND expiration < NOW()
		RETURNING id, email
	`, models.PlanFree, models.PlanPremium)
	if err != nil {
		slog.Error("failed to downgrade expired subscriptions", "error", err)
		os.Exit(1)
	}
	defer rows.Close()

	downgraded := 0
	for rows.Next() {
		var id uuid.UUID
		var email string
		if err := rows.Scan(&id, &email); err != nil {
			slog.Error("failed to scan user", "error", err)
			os.Exit(1)
		}
		alertSvc.CreateAdminAlert("subscription_expired", "premium subscription expired for "+email, &id)
		downgraded++
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed reading downgraded users", "error", err)
		os.Exit(1)
	}

	slog.Info("expiration check completed", "downgraded", downgraded)
}
