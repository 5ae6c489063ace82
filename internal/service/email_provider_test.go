package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	fail  bool
	calls int
}

func (f *fakeProvider) SendOTPEmail(ctx context.Context, data OTPEmailData) error {
	f.calls++
	if f.fail {
		return errors.New("provider down")
	}
	return nil
}

func (f *fakeProvider) SendAlertEmail(ctx context.Context, email, subject, body string) error {
	f.calls++
	if f.fail {
		return errors.New("provider down")
	}
	return nil
}

func TestMultiProviderNoProviders(t *testing.T) {
	svc := NewMultiProviderEmailService(nil)

	err := svc.SendOTPEmail(context.Background(), OTPEmailData{Email: "a@b.c"})
	assert.Error(t, err)
}

func TestMultiProviderPrimarySucceeds(t *testing.T) {
	primary := &fakeProvider{}
	fallback := &fakeProvider{}
	svc := NewMultiProviderEmailService([]EmailProvider{primary, fallback})

	err := svc.SendOTPEmail(context.Background(), OTPEmailData{Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls)
}

func TestMultiProviderFallsBack(t *testing.T) {
	primary := &fakeProvider{fail: true}
	fallback := &fakeProvider{}
	svc := NewMultiProviderEmailService([]EmailProvider{primary, fallback})

	err := svc.SendOTPEmail(context.Background(), OTPEmailData{Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestMultiProviderAllFail(t *testing.T) {
	svc := NewMultiProviderEmailService([]EmailProvider{
		&fakeProvider{fail: true},
		&fakeProvider{fail: true},
	})

	err := svc.SendAlertEmail(context.Background(), "a@b.c", "subject", "body")
	assert.ErrorContains(t, err, "all email providers failed")
}

func TestOTPEmailText(t *testing.T) {
	text := otpEmailText(OTPEmailData{
		Email:     "owner@example.com",
		Name:      "Awa",
		OTPCode:   "123456",
		ExpiresIn: 5,
	})

	assert.Contains(t, text, "Awa")
	assert.Contains(t, text, "123456")
	assert.Contains(t, text, "5 minutes")

	// Falls back to the email when the name is empty.
	text = otpEmailText(OTPEmailData{Email: "owner@example.com", OTPCode: "654321", ExpiresIn: 5})
	assert.Contains(t, text, "owner@example.com")
}
