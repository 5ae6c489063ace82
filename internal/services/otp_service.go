package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"
	"time"

	"github.com/ASS429/ma-tontine-backend/internal/config"
	"github.com/ASS429/ma-tontine-backend/internal/models"
	"github.com/ASS429/ma-tontine-backend/internal/service"

	"github.com/google/uuid"
)

// OTPService issues and verifies the 6-digit email codes used for admin 2FA.
type OTPService struct {
	db     *sql.DB
	emails service.EmailProvider
}

func NewOTPService(db *sql.DB, emails service.EmailProvider) *OTPService {
	return &OTPService{db: db, emails: emails}
}

// GenerateCode returns a random 6-digit code, uniform over 100000-999999.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// SendOTP stores a fresh code for the user and emails it. Codes expire after
// the configured number of minutes (default 5).
func (s *OTPService) SendOTP(ctx context.Context, user models.User) error {
	code, err := GenerateCode()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %v", err)
	}

	expiryMinutes := config.GetConfig().Email.OTPExpiryMinutes
	expiresAt := time.Now().Add(time.Duration(expiryMinutes) * time.Minute)

	_, err = s.db.Exec(`
		INSERT INTO otp_codes (user_id, code, expires_at)
		VALUES ($1, $2, $3)
	`, user.ID, code, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to store OTP: %v", err)
	}

	return s.emails.SendOTPEmail(ctx, service.OTPEmailData{
		Email:     user.Email,
		Name:      user.FullName,
		OTPCode:   code,
		ExpiresIn: expiryMinutes,
	})
}

// VerifyOTP checks the most recent unused, unexpired code for the user and
// consumes it on success.
func (s *OTPService) VerifyOTP(userID uuid.UUID, code string) (bool, error) {
	var otpID uuid.UUID
	err := s.db.QueryRow(`
		SELECT id FROM otp_codes
		WHERE user_id = $1 AND code = $2 AND used = false AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`, userID, code).Scan(&otpID)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to verify OTP: %v", err)
	}

	if _, err := s.db.Exec(`UPDATE otp_codes SET used = true WHERE id = $1`, otpID); err != nil {
		return false, fmt.Errorf("failed to consume OTP: %v", err)
	}
	return true, nil
}
