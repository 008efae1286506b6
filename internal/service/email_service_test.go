package service

import (
	"errors"
	"testing"

	"github.com/botanical-decor/shop-api/internal/config"
)

func TestVerifySMTP(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.EmailConfig
		want error
	}{
		{
			name: "disabled",
			cfg:  &config.EmailConfig{Enabled: false},
			want: ErrEmailServiceDisabled,
		},
		{
			name: "enabled_but_incomplete",
			cfg:  &config.EmailConfig{Enabled: true, Host: "smtp.example.com"},
			want: ErrEmailServiceNotConfigured,
		},
		{
			name: "complete",
			cfg: &config.EmailConfig{
				Enabled: true,
				Host:    "smtp.example.com",
				Port:    587,
				From:    "no-reply@botanicaldecor.shop",
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEmailService(tt.cfg)
			got := svc.VerifySMTP()
			if tt.want == nil {
				if got != nil {
					t.Fatalf("VerifySMTP() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("VerifySMTP() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "smtp_550_no_such_recipient",
			err:  errors.New("550 No such recipient here"),
			want: true,
		},
		{
			name: "smtp_user_unknown",
			err:  errors.New("SMTP 5.1.1 user unknown"),
			want: true,
		},
		{
			name: "smtp_550_mailbox_unavailable",
			err:  errors.New("550 mailbox unavailable"),
			want: true,
		},
		{
			name: "network_timeout",
			err:  errors.New("dial tcp timeout"),
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmailRecipientRejected(tt.err); got != tt.want {
				t.Fatalf("isEmailRecipientRejected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailSendError(t *testing.T) {
	rejected := errors.New("550 No such recipient here")
	if got := normalizeEmailSendError(rejected); !errors.Is(got, ErrEmailRecipientRejected) {
		t.Fatalf("normalizeEmailSendError() expected ErrEmailRecipientRejected, got %v", got)
	}

	networkErr := errors.New("dial tcp timeout")
	if got := normalizeEmailSendError(networkErr); !errors.Is(got, networkErr) {
		t.Fatalf("normalizeEmailSendError() should keep original error, got %v", got)
	}

	if got := normalizeEmailSendError(nil); got != nil {
		t.Fatalf("normalizeEmailSendError(nil) should be nil, got %v", got)
	}
}
