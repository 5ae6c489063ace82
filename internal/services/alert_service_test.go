package services

import (
	"context"
	"testing"

	"github.com/ASS429/ma-tontine-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

type recordingEmailer struct {
	sent int
}

func (r *recordingEmailer) SendOTPEmail(ctx context.Context, data service.OTPEmailData) error {
	r.sent++
	return nil
}

func (r *recordingEmailer) SendAlertEmail(ctx context.Context, email, subject, body string) error {
	r.sent++
	return nil
}

func TestAdminAlertEmailRendering(t *testing.T) {
	subject, body := adminAlertEmail("new_tontine", "tontine created: Famille Diop")

	assert.Contains(t, subject, "new_tontine")
	assert.Contains(t, body, "new_tontine")
	assert.Contains(t, body, "tontine created: Famille Diop")
}

func TestCreateAdminAlertRejectsUnknownType(t *testing.T) {
	emailer := &recordingEmailer{}
	svc := NewAlertService(nil, emailer)

	// Unknown types are dropped before any write or notification happens.
	svc.CreateAdminAlert("not_a_real_type", "should be ignored", nil)

	assert.Equal(t, 0, emailer.sent)
}
