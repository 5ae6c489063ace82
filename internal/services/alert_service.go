package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ASS429/ma-tontine-backend/internal/config"
	"github.com/ASS429/ma-tontine-backend/internal/models"
	"github.com/ASS429/ma-tontine-backend/internal/service"

	"github.com/google/uuid"
)

// adminAlertTypes is the allow-list of admin alert types; unknown types are
// dropped instead of polluting the table with typos.
var adminAlertTypes = map[string]bool{
	"late_payment":          true,
	"payment_completed":     true,
	"low_account_balance":   true,
	"revenue_recorded":      true,
	"new_user":              true,
	"premium_requested":     true,
	"premium_validated":     true,
	"subscription_expired":  true,
	"user_suspended":        true,
	"user_reactivated":      true,
	"new_tontine":           true,
	"tontine_terminated":    true,
	"late_contribution":     true,
	"draw_completed":        true,
	"cycle_completed":       true,
	"cycle_late":            true,
	"server_error":          true,
	"report_available":      true,
	"admin_account_created": true,
}

// AlertService derives user alerts from the current tontine state and
// records admin alerts. When an email provider is configured, each admin
// alert is also mailed to the contact address from admin settings.
type AlertService struct {
	db       *sql.DB
	cycles   *CycleService
	settings *SettingsService
	emails   service.EmailProvider
}

func NewAlertService(db *sql.DB, emails service.EmailProvider) *AlertService {
	return &AlertService{
		db:       db,
		cycles:   NewCycleService(db),
		settings: NewSettingsService(db),
		emails:   emails,
	}
}

// RefreshForUser scans the user's active tontines, inserts any newly derived
// alerts (late contributors, draw available) and returns the full alert list,
// newest first. Duplicate derivations are absorbed by ON CONFLICT DO NOTHING.
func (s *AlertService) RefreshForUser(userID uuid.UUID) ([]models.Alert, error) {
	rows, err := s.db.Query(`
		SELECT id, name, member_target FROM tontines
		WHERE owner_id = $1 AND status = $2
	`, userID, models.TontineStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to load tontines: %v", err)
	}
	defer rows.Close()

	type tontineRow struct {
		ID     uuid.UUID
		Name   string
		Target int
	}
	tontines := []tontineRow{}
	for rows.Next() {
		var t tontineRow
		if err := rows.Scan(&t.ID, &t.Name, &t.Target); err != nil {
			return nil, err
		}
		tontines = append(tontines, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range tontines {
		cycle, err := s.cycles.ActiveCycle(s.db, t.ID)
		if err != nil {
			return nil, err
		}
		if cycle == nil {
			continue
		}

		missing, err := s.missingMemberNames(t.ID, cycle.ID)
		if err != nil {
			return nil, err
		}

		for _, name := range missing {
			if err := s.insertAlert(userID, t.ID, models.AlertTypeLate,
				fmt.Sprintf("%s is late in %q", name, t.Name), models.UrgencyMedium); err != nil {
				return nil, err
			}
		}

		if len(missing) == 0 {
			var memberCount, drawCount int
			err := s.db.QueryRow(`
				SELECT
					(SELECT COUNT(*) FROM members WHERE tontine_id = $1),
					(SELECT COUNT(*) FROM draws WHERE tontine_id = $1)
			`, t.ID).Scan(&memberCount, &drawCount)
			if err != nil {
				return nil, fmt.Errorf("failed to count members and draws: %v", err)
			}
			if memberCount > 0 && drawCount < memberCount {
				if err := s.insertAlert(userID, t.ID, models.AlertTypeDrawAvailable,
					fmt.Sprintf("draw available for %q", t.Name), models.UrgencyHigh); err != nil {
					return nil, err
				}
			}
		}
	}

	return s.listForUser(userID)
}

// Delete removes one of the user's alerts.
func (s *AlertService) Delete(userID, alertID uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM alerts WHERE id = $1 AND user_id = $2`, alertID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %v", err)
	}
	return nil
}

// CreateAdminAlert records an operational alert for the admin dashboard.
// Unknown types are logged and ignored.
func (s *AlertService) CreateAdminAlert(alertType, message string, userID *uuid.UUID) {
	if !adminAlertTypes[alertType] {
		slog.Warn("ignoring unknown admin alert type", "type", alertType)
		return
	}

	_, err := s.db.Exec(`
		INSERT INTO admin_alerts (type, message, user_id)
		VALUES ($1, $2, $3)
	`, alertType, message, userID)
	if err != nil {
		slog.Error("failed to create admin alert", "type", alertType, "error", err)
		return
	}
	slog.Info("admin alert created", "type", alertType, "message", message)

	if s.emails != nil {
		to := s.settings.EmailContact(config.GetConfig().Email.FromEmail)
		subject, body := adminAlertEmail(alertType, message)
		if err := s.emails.SendAlertEmail(context.Background(), to, subject, body); err != nil {
			slog.Warn("failed to email admin alert", "type", alertType, "error", err)
		}
	}
}

// ListAdminAlerts returns the most recent operational alerts, newest first.
func (s *AlertService) ListAdminAlerts(limit int) ([]models.AdminAlert, error) {
	rows, err := s.db.Query(`
		SELECT id, type, message, user_id, created_at
		FROM admin_alerts
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin alerts: %v", err)
	}
	defer rows.Close()

	alerts := []models.AdminAlert{}
	for rows.Next() {
		var a models.AdminAlert
		if err := rows.Scan(&a.ID, &a.Type, &a.Message, &a.UserID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan admin alert: %v", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// adminAlertEmail renders the notification mail for an admin alert.
func adminAlertEmail(alertType, message string) (subject, body string) {
	subject = fmt.Sprintf("[Ma Tontine] Alerte admin : %s", alertType)
	body = fmt.Sprintf(`Bonjour,

Une nouvelle alerte administrateur vient d'être enregistrée.

Type : %s
Détail : %s

— Ma Tontine`, alertType, message)
	return subject, body
}

func (s *AlertService) insertAlert(userID, tontineID uuid.UUID, alertType, message, urgency string) error {
	_, err := s.db.Exec(`
		INSERT INTO alerts (user_id, tontine_id, type, message, urgency)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
	`, userID, tontineID, alertType, message, urgency)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %v", err)
	}
	return nil
}

func (s *AlertService) listForUser(userID uuid.UUID) ([]models.Alert, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, tontine_id, type, message, urgency, created_at
		FROM alerts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %v", err)
	}
	defer rows.Close()

	alerts := []models.Alert{}
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(&a.ID, &a.UserID, &a.TontineID, &a.Type, &a.Message, &a.Urgency, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %v", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (s *AlertService) missingMemberNames(tontineID, cycleID uuid.UUID) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT m.name
		FROM members m
		WHERE m.tontine_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM contributions c
			WHERE c.member_id = m.id AND c.cycle_id = $2
		  )
	`, tontineID, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find late members: %v", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
