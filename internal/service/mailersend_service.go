package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"
)

// MailerSendService is the fallback email provider.
type MailerSendService struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSendService(apiKey, fromEmail, fromName string) *MailerSendService {
	return &MailerSendService{
		client: mailersend.NewMailersend(apiKey),
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
}

func (ms *MailerSendService) SendOTPEmail(ctx context.Context, data OTPEmailData) error {
	return ms.send(ctx, data.Email, data.Name, "Code de vérification (2FA)", otpEmailText(data))
}

func (ms *MailerSendService) SendAlertEmail(ctx context.Context, email, subject, body string) error {
	return ms.send(ctx, email, "", subject, body)
}

func (ms *MailerSendService) send(ctx context.Context, email, name, subject, text string) error {
	message := ms.client.Email.NewMessage()
	message.SetFrom(ms.from)
	message.SetRecipients([]mailersend.Recipient{{Name: name, Email: email}})
	message.SetSubject(subject)
	message.SetText(text)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := ms.client.Email.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send email via MailerSend: %w", err)
	}
	return nil
}
