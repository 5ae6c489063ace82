package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ASS429/ma-tontine-backend/internal/config"

	_ "github.com/lib/pq"
)

func InitDB() (*sql.DB, error) {
	cfg := config.GetConfig().Database

	host := config.GetEnv("DB_HOST", cfg.Host)
	port := config.GetEnv("DB_PORT", strconv.Itoa(cfg.Port))
	user := config.GetEnv("DB_USER", cfg.User)
	password := config.GetEnv("DB_PASSWORD", cfg.Password)
	dbname := config.GetEnv("DB_NAME", cfg.Name)
	sslmode := config.GetEnv("DB_SSLMODE", cfg.SSLMode)

	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	slog.Info("database connected", "host", host, "name", dbname)
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	usersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		full_name VARCHAR(255) NOT NULL,
		role VARCHAR(20) DEFAULT 'user' CHECK (role IN ('user', 'admin')),
		plan VARCHAR(20) DEFAULT 'Free' CHECK (plan IN ('Free', 'Premium')),
		payment_status VARCHAR(20) DEFAULT 'pending',
		expiration TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	tontinesTable := `
	CREATE TABLE IF NOT EXISTS tontines (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(255) NOT NULL,
		type VARCHAR(50),
		contribution_amount DECIMAL(12,2) NOT NULL,
		contribution_frequency VARCHAR(20) NOT NULL CHECK (contribution_frequency IN ('daily', 'weekly', 'monthly')),
		contribution_day VARCHAR(20),
		draw_frequency VARCHAR(20),
		member_target INTEGER NOT NULL,
		description TEXT,
		status VARCHAR(20) DEFAULT 'active' CHECK (status IN ('active', 'terminated')),
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	membersTable := `
	CREATE TABLE IF NOT EXISTS members (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		tontine_id UUID NOT NULL REFERENCES tontines(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(50),
		email VARCHAR(255),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	cyclesTable := `
	CREATE TABLE IF NOT EXISTS cycles (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		tontine_id UUID NOT NULL REFERENCES tontines(id) ON DELETE CASCADE,
		number INTEGER NOT NULL,
		closed BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(tontine_id, number)
	);`

	contributionsTable := `
	CREATE TABLE IF NOT EXISTS contributions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		tontine_id UUID NOT NULL REFERENCES tontines(id) ON DELETE CASCADE,
		member_id UUID NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		cycle_id UUID NOT NULL REFERENCES cycles(id) ON DELETE CASCADE,
		amount DECIMAL(12,2) NOT NULL,
		contribution_date DATE NOT NULL DEFAULT CURRENT_DATE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(member_id, cycle_id)
	);`

	drawsTable := `
	CREATE TABLE IF NOT EXISTS draws (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		tontine_id UUID NOT NULL REFERENCES tontines(id) ON DELETE CASCADE,
		member_id UUID NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		cycle_id UUID NOT NULL REFERENCES cycles(id) ON DELETE CASCADE,
		amount_won DECIMAL(12,2) NOT NULL,
		drawn_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(tontine_id, cycle_id),
		UNIQUE(tontine_id, member_id)
	);`

	paymentsTable := `
	CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		tontine_id UUID NOT NULL REFERENCES tontines(id) ON DELETE CASCADE,
		member_id UUID NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		type VARCHAR(20) NOT NULL CHECK (type IN ('contribution', 'payout')),
		amount DECIMAL(12,2) NOT NULL,
		method VARCHAR(30) NOT NULL,
		status VARCHAR(20) DEFAULT 'pending' CHECK (status IN ('pending', 'completed', 'failed')),
		payment_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	accountsTable := `
	CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type VARCHAR(30) NOT NULL,
		balance DECIMAL(12,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, type)
	);`

	revenuesTable := `
	CREATE TABLE IF NOT EXISTS revenues (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		source VARCHAR(100) NOT NULL,
		amount DECIMAL(12,2) NOT NULL,
		method VARCHAR(30) DEFAULT 'other',
		status VARCHAR(20) DEFAULT 'completed',
		description TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	alertsTable := `
	CREATE TABLE IF NOT EXISTS alerts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		tontine_id UUID REFERENCES tontines(id) ON DELETE CASCADE,
		type VARCHAR(30) NOT NULL,
		message TEXT NOT NULL,
		urgency VARCHAR(20) DEFAULT 'medium',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, tontine_id, type, message)
	);`

	adminAlertsTable := `
	CREATE TABLE IF NOT EXISTS admin_alerts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		type VARCHAR(50) NOT NULL,
		message TEXT NOT NULL,
		user_id UUID REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	adminSettingsTable := `
	CREATE TABLE IF NOT EXISTS admin_settings (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		admin_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		two_fa BOOLEAN NOT NULL DEFAULT false,
		email_contact VARCHAR(255),
		premium_plan_price DECIMAL(12,2),
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	otpCodesTable := `
	CREATE TABLE IF NOT EXISTS otp_codes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		code VARCHAR(6) NOT NULL,
		used BOOLEAN NOT NULL DEFAULT false,
		expires_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	indexes := `
	CREATE INDEX IF NOT EXISTS idx_cycles_active ON cycles(tontine_id) WHERE closed = false;
	CREATE INDEX IF NOT EXISTS idx_contributions_cycle ON contributions(cycle_id);
	CREATE INDEX IF NOT EXISTS idx_members_tontine ON members(tontine_id);
	CREATE INDEX IF NOT EXISTS idx_draws_tontine ON draws(tontine_id);
	CREATE INDEX IF NOT EXISTS idx_alerts_user ON alerts(user_id);`

	tables := []string{
		usersTable,
		tontinesTable,
		membersTable,
		cyclesTable,
		contributionsTable,
		drawsTable,
		paymentsTable,
		accountsTable,
		revenuesTable,
		alertsTable,
		adminAlertsTable,
		adminSettingsTable,
		otpCodesTable,
		indexes,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return fmt.Errorf("failed to run migration: %v", err)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
