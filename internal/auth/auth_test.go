package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/khata-app/khata-server/internal/shared"
)

func newOTPStore(t *testing.T, ttl time.Duration) (*OTPStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewOTPStore(client, ttl), mr
}

func TestDeriveCode(t *testing.T) {
	require.Equal(t, "567890", DeriveCode("1234567890"))
	require.Equal(t, "543210", DeriveCode("9876543210"))
}

func TestOTPIssueVerifyConsumes(t *testing.T) {
	store, _ := newOTPStore(t, 5*time.Minute)
	ctx := context.Background()

	code, err := store.Issue(ctx, "1234567890")
	require.NoError(t, err)
	require.Equal(t, "567890", code)

	ok, err := store.Verify(ctx, "1234567890", code)
	require.NoError(t, err)
	require.True(t, ok)

	// one-shot: the code is gone after a successful verify
	ok, err = store.Verify(ctx, "1234567890", code)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOTPWrongCodeFails(t *testing.T) {
	store, _ := newOTPStore(t, 5*time.Minute)
	ctx := context.Background()

	_, err := store.Issue(ctx, "1234567890")
	require.NoError(t, err)

	ok, err := store.Verify(ctx, "1234567890", "000000")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOTPExpires(t *testing.T) {
	store, mr := newOTPStore(t, 5*time.Minute)
	ctx := context.Background()

	code, err := store.Issue(ctx, "1234567890")
	require.NoError(t, err)

	mr.FastForward(6 * time.Minute)

	ok, err := store.Verify(ctx, "1234567890", code)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Mint(42)
	require.NoError(t, err)

	ownerID, err := issuer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), ownerID)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	token, err := issuer.Mint(42)
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestTokenExpiredRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Mint(42)
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestTokenGarbageRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	_, err := issuer.Verify("not-a-token")
	require.ErrorIs(t, err, shared.ErrUnauthorized)
}
