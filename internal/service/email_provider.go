package service

import (
	"context"
	"fmt"
	"log/slog"
)

// OTPEmailData carries what an OTP email needs to render.
type OTPEmailData struct {
	Email     string
	Name      string
	OTPCode   string
	ExpiresIn int // in minutes
}

// EmailProvider abstracts a transactional email service.
type EmailProvider interface {
	SendOTPEmail(ctx context.Context, data OTPEmailData) error
	SendAlertEmail(ctx context.Context, email, subject, body string) error
}

// MultiProviderEmailService tries each configured provider in order and
// returns the first success.
type MultiProviderEmailService struct {
	providers []EmailProvider
}

func NewMultiProviderEmailService(providers []EmailProvider) *MultiProviderEmailService {
	return &MultiProviderEmailService{providers: providers}
}

func (m *MultiProviderEmailService) SendOTPEmail(ctx context.Context, data OTPEmailData) error {
	if len(m.providers) == 0 {
		return fmt.Errorf("no email providers configured")
	}

	var lastErr error
	for i, provider := range m.providers {
		err := provider.SendOTPEmail(ctx, data)
		if err == nil {
			slog.Info("OTP email sent", "provider", i+1, "to", data.Email)
			return nil
		}
		slog.Warn("email provider failed", "provider", i+1, "error", err)
		lastErr = err
	}

	return fmt.Errorf("all email providers failed: %w", lastErr)
}

func (m *MultiProviderEmailService) SendAlertEmail(ctx context.Context, email, subject, body string) error {
	if len(m.providers) == 0 {
		return fmt.Errorf("no email providers configured")
	}

	var lastErr error
	for i, provider := range m.providers {
		err := provider.SendAlertEmail(ctx, email, subject, body)
		if err == nil {
			return nil
		}
		slog.Warn("email provider failed", "provider", i+1, "error", err)
		lastErr = err
	}

	return fmt.Errorf("all email providers failed: %w", lastErr)
}

// ProviderCount returns the number of configured providers.
func (m *MultiProviderEmailService) ProviderCount() int {
	return len(m.providers)
}
