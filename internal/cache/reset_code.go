package cache

import (
	"context"
	"fmt"
	"time"
)

func resetCodeKey(email string) string {
	return fmt.Sprintf("auth:reset_code:%s", email)
}

// SetResetCode stores a password reset code for an email, replacing any
// earlier one so only the latest code is redeemable.
func SetResetCode(ctx context.Context, email, code string, ttl time.Duration) error {
	if email == "" || code == "" {
		return nil
	}
	return SetString(ctx, resetCodeKey(email), code, ttl)
}

// GetResetCode returns the outstanding reset code. The bool reports whether
// one exists and has not expired.
func GetResetCode(ctx context.Context, email string) (string, bool, error) {
	if email == "" {
		return "", false, nil
	}
	return GetString(ctx, resetCodeKey(email))
}

// DelResetCode consumes a reset code after a successful reset.
func DelResetCode(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}
	return Del(ctx, resetCodeKey(email))
}
