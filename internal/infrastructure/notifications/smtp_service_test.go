package notifications

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/assetsvc/internal/config"
)

func TestSMTPService_MockWhenUnconfigured(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	svc := NewSMTPService(config.SMTP{}, logger)
	err := svc.SendEmail(context.Background(), "a@x.com", "Your OTP for Verification", "<p>123456</p>")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[MOCK EMAIL]")
	assert.Contains(t, buf.String(), "to=a@x.com")
	assert.NotContains(t, buf.String(), "123456")
}

func TestSMTPService_BuildMessage(t *testing.T) {
	svc := &SMTPServiceImpl{
		cfg:    config.SMTP{From: "noreply@example.com"},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	msg, err := svc.buildMessage("ada@example.com", "Your OTP for Verification", "<h2>OTP Verification</h2>")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	rendered := buf.String()
	assert.Contains(t, rendered, "Subject: Your OTP for Verification")
	assert.Contains(t, rendered, "<ada@example.com>")
	assert.Contains(t, rendered, "text/html")
}

func TestSMTPService_InvalidAddresses(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
	}{
		{name: "bad sender", from: "not an address", to: "ada@example.com"},
		{name: "bad recipient", from: "noreply@example.com", to: "not an address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &SMTPServiceImpl{cfg: config.SMTP{From: tt.from}}
			_, err := svc.buildMessage(tt.to, "s", "b")
			assert.Error(t, err)
		})
	}
}

func TestSMTPService_UnreachableRelay(t *testing.T) {
	svc := NewSMTPService(config.SMTP{
		Host:    "127.0.0.1",
		Port:    1,
		From:    "noreply@example.com",
		Timeout: time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := svc.SendEmail(context.Background(), "ada@example.com", "s", "b")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to send email"))
}
