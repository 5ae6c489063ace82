package services

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/ASS429/ma-tontine-backend/internal/models"

	"github.com/google/uuid"
)

const settingsCacheTTL = 5 * time.Minute

// SettingsService loads admin settings with a short in-process cache, the
// same way the admin dashboard reads them.
type SettingsService struct {
	db *sql.DB

	mu       sync.Mutex
	cached   *models.AdminSettings
	loadedAt time.Time
}

func NewSettingsService(db *sql.DB) *SettingsService {
	return &SettingsService{db: db}
}

// GetSettings returns the most recent admin settings row. Results are cached
// for five minutes unless forceReload is set. Returns nil when no settings
// row exists yet.
func (s *SettingsService) GetSettings(forceReload bool) (*models.AdminSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !forceReload && s.cached != nil && time.Since(s.loadedAt) < settingsCacheTTL {
		return s.cached, nil
	}

	var settings models.AdminSettings
	err := s.db.QueryRow(`
		SELECT id, admin_id, two_fa, email_contact, premium_plan_price, updated_at
		FROM admin_settings
		ORDER BY updated_at DESC
		LIMIT 1
	`).Scan(&settings.ID, &settings.AdminID, &settings.TwoFA,
		&settings.EmailContact, &settings.PremiumPlanPrice, &settings.UpdatedAt)

	if err == sql.ErrNoRows {
		s.cached = nil
		s.loadedAt = time.Now()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load admin settings: %v", err)
	}

	s.cached = &settings
	s.loadedAt = time.Now()
	return &settings, nil
}

// EmailContact returns the configured contact address or the fallback.
func (s *SettingsService) EmailContact(fallback string) string {
	settings, err := s.GetSettings(false)
	if err != nil || settings == nil || settings.EmailContact == nil || *settings.EmailContact == "" {
		return fallback
	}
	return *settings.EmailContact
}

// UpdateSettings writes the admin's settings row, creating it on first use,
// and refreshes the cache so the change is visible immediately.
func (s *SettingsService) UpdateSettings(adminID uuid.UUID, req models.AdminSettingsUpdateRequest) (*models.AdminSettings, error) {
	var settings models.AdminSettings
	err := s.db.QueryRow(`
		UPDATE admin_settings
		SET two_fa = $1, email_contact = $2, premium_plan_price = $3, updated_at = NOW()
		WHERE admin_id = $4
		RETURNING id, admin_id, two_fa, email_contact, premium_plan_price, updated_at
	`, req.TwoFA, req.EmailContact, req.PremiumPlanPrice, adminID).Scan(
		&settings.ID, &settings.AdminID, &settings.TwoFA,
		&settings.EmailContact, &settings.PremiumPlanPrice, &settings.UpdatedAt)

	if err == sql.ErrNoRows {
		err = s.db.QueryRow(`
			INSERT INTO admin_settings (admin_id, two_fa, email_contact, premium_plan_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id, admin_id, two_fa, email_contact, premium_plan_price, updated_at
		`, adminID, req.TwoFA, req.EmailContact, req.PremiumPlanPrice).Scan(
			&settings.ID, &settings.AdminID, &settings.TwoFA,
			&settings.EmailContact, &settings.PremiumPlanPrice, &settings.UpdatedAt)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update admin settings: %v", err)
	}

	s.mu.Lock()
	s.cached = &settings
	s.loadedAt = time.Now()
	s.mu.Unlock()
	return &settings, nil
}

// TwoFAEnabled reports whether the given admin has two-factor auth turned on.
func (s *SettingsService) TwoFAEnabled(adminID uuid.UUID) (bool, error) {
	var twoFA bool
	err := s.db.QueryRow(`
		SELECT two_fa FROM admin_settings
		WHERE admin_id = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`, adminID).Scan(&twoFA)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load 2FA setting: %v", err)
	}
	return twoFA, nil
}
