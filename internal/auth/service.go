package auth

import (
	"context"
	"fmt"

	"github.com/khata-app/khata-server/internal/shared"
)

// Service handles the OTP login flow and owner profile access.
type Service struct {
	repo   Repository
	otp    *OTPStore
	tokens *TokenIssuer
}

// NewService builds a Service instance.
func NewService(repo Repository, otp *OTPStore, tokens *TokenIssuer) *Service {
	return &Service{repo: repo, otp: otp, tokens: tokens}
}

// SendOTP issues a fresh code for the mobile number.
func (s *Service) SendOTP(ctx context.Context, mobile string) (string, error) {
	return s.otp.Issue(ctx, mobile)
}

// VerifyOTP consumes the code, upserts the owner account and mints a token.
func (s *Service) VerifyOTP(ctx context.Context, mobile, code string) (*TokenResponse, error) {
	ok, err := s.otp.Verify(ctx, mobile, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: invalid or expired otp", shared.ErrUnauthorized)
	}
	owner, err := s.repo.UpsertByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Mint(owner.ID)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: token, Owner: *owner}, nil
}

// Me returns the authenticated owner's profile.
func (s *Service) Me(ctx context.Context, ownerID int64) (*Owner, error) {
	return s.repo.Get(ctx, ownerID)
}

// UpdateMe changes profile fields on the authenticated owner.
func (s *Service) UpdateMe(ctx context.Context, ownerID int64, req UpdateProfileRequest) (*Owner, error) {
	existing, err := s.repo.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		existing.Name = req.Name
	}
	if req.ShopName != nil {
		existing.ShopName = req.ShopName
	}
	if err := s.repo.Update(ctx, ownerID, *existing); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, ownerID)
}
