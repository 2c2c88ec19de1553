package services

import (
	"context"
	"testing"

	"campus-market-service/internal/domain"
	"campus-market-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupStart(t *testing.T) {
	api := newTestAPI(t)
	svc := NewSignupService(api, []string{".edu"}, nil)

	email, err := svc.Start(context.Background(), "  Lin@CS.Berkeley.EDU ")
	require.NoError(t, err)
	assert.Equal(t, "lin@cs.berkeley.edu", email)
	assert.Equal(t, []string{"lin@cs.berkeley.edu"}, api.Logins)
}

func TestSignupStartRejectsPersonalMail(t *testing.T) {
	api := newTestAPI(t)
	svc := NewSignupService(api, []string{".edu"}, nil)

	_, err := svc.Start(context.Background(), "lin@gmail.com")
	assert.ErrorIs(t, err, domain.ErrNonInstitutionalMail)
	assert.Zero(t, api.CallCount("RequestLogin"))
}

func TestSignupComplete(t *testing.T) {
	api := newTestAPI(t)
	api.AddInvite("WELCOME1", 500)
	svc := NewSignupService(api, []string{".edu"}, nil)

	s, err := svc.Complete(context.Background(), "ada-token", " welcome1 ")
	require.NoError(t, err)
	assert.Equal(t, int64(600), s.Balance)

	_, err = svc.Complete(context.Background(), "ada-token", "WELCOME1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSignupCompleteValidatesCode(t *testing.T) {
	api := newTestAPI(t)
	svc := NewSignupService(api, []string{".edu"}, nil)

	_, err := svc.Complete(context.Background(), "ada-token", "no!")
	assert.ErrorIs(t, err, domain.ErrInvalidInviteCode)
	assert.Zero(t, api.CallCount("RedeemInvite"))
}
