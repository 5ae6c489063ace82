package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendService sends transactional email through Resend.
type ResendService struct {
	client   *resend.Client
	from     string
	fromName string
}

func NewResendService(apiKey, fromEmail, fromName string) *ResendService {
	return &ResendService{
		client:   resend.NewClient(apiKey),
		from:     fromEmail,
		fromName: fromName,
	}
}

func (rs *ResendService) SendOTPEmail(ctx context.Context, data OTPEmailData) error {
	subject := "Code de vérification (2FA)"
	text := otpEmailText(data)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", rs.fromName, rs.from),
		To:      []string{data.Email},
		Subject: subject,
		Text:    text,
	}

	_, err := rs.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}

func (rs *ResendService) SendAlertEmail(ctx context.Context, email, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", rs.fromName, rs.from),
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := rs.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	return nil
}

// otpEmailText renders the plain-text OTP message.
func otpEmailText(data OTPEmailData) string {
	name := data.Name
	if name == "" {
		name = data.Email
	}
	return fmt.Sprintf(`Bonjour %s,

Votre code de vérification est : %s

Ce code expire dans %d minutes.
— L'équipe Ma Tontine`, name, data.OTPCode, data.ExpiresIn)
}
