package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPStore keeps pending login codes in Redis, keyed by mobile number.
// Issuing a new code replaces any previous one; verification is one-shot.
type OTPStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOTPStore builds an OTPStore with the given code lifetime.
func NewOTPStore(client *redis.Client, ttl time.Duration) *OTPStore {
	return &OTPStore{client: client, ttl: ttl}
}

func otpKey(mobile string) string {
	return "otp:" + mobile
}

// DeriveCode produces the 6-digit login code from the mobile number
// (digits 5 through 10). Deterministic on purpose: there is no SMS gateway,
// the client app knows the derivation.
func DeriveCode(mobile string) string {
	if len(mobile) < 10 {
		return fmt.Sprintf("%06s", mobile)
	}
	return mobile[4:10]
}

// Issue stores a fresh code for the mobile number and returns it.
func (s *OTPStore) Issue(ctx context.Context, mobile string) (string, error) {
	code := DeriveCode(mobile)
	if err := s.client.Set(ctx, otpKey(mobile), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("auth: store otp: %w", err)
	}
	return code, nil
}

// Verify checks the code and consumes it on success.
func (s *OTPStore) Verify(ctx context.Context, mobile, code string) (bool, error) {
	stored, err := s.client.Get(ctx, otpKey(mobile)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("auth: read otp: %w", err)
	}
	if stored != code {
		return false, nil
	}
	if err := s.client.Del(ctx, otpKey(mobile)).Err(); err != nil {
		return false, fmt.Errorf("auth: consume otp: %w", err)
	}
	return true, nil
}
