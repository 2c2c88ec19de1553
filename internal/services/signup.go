package services

import (
	"context"
	"fmt"

	"campus-market-service/internal/domain"
	"campus-market-service/internal/platform/obs"
	"campus-market-service/internal/ports"

	"go.uber.org/zap"
)

// SignupService runs the two-step sign-up wizard: request a sign-in link for
// an institutional email, then redeem an invite code for starting tokens.
type SignupService struct {
	api            ports.MarketAPI
	allowedDomains []string
	logger         *zap.Logger
}

func NewSignupService(api ports.MarketAPI, allowedDomains []string, logger *zap.Logger) *SignupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SignupService{api: api, allowedDomains: allowedDomains, logger: logger}
}

// Start validates email and asks the market API to send a sign-in link.
// It returns the normalised address.
func (s *SignupService) Start(ctx context.Context, email string) (_ string, err error) {
	defer obs.Time(ctx, s.logger, "signup.Start")(&err)

	normalized, err := domain.RequireInstitutionalEmail(email, s.allowedDomains)
	if err != nil {
		return "", fmt.Errorf("start sign-up: %w", err)
	}

	if err := s.api.RequestLogin(ctx, normalized); err != nil {
		return "", fmt.Errorf("start sign-up: %w", err)
	}

	return normalized, nil
}

// Complete redeems inviteCode for the signed-in user and returns the
// refreshed session.
func (s *SignupService) Complete(ctx context.Context, token, inviteCode string) (_ *domain.Session, err error) {
	defer obs.Time(ctx, s.logger, "signup.Complete")(&err)

	code, err := domain.NormalizeInviteCode(inviteCode)
	if err != nil {
		return nil, fmt.Errorf("complete sign-up: %w", err)
	}

	session, err := s.api.RedeemInvite(ctx, token, code)
	if err != nil {
		return nil, fmt.Errorf("complete sign-up: %w", err)
	}

	return session, nil
}
