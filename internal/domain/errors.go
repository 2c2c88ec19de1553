package domain

import "errors"

// Validation failures. Handlers map these to 400, ErrMarketNotFound to 404.
var (
	ErrInvalidSide          = errors.New("side must be yes or no")
	ErrInvalidStake         = errors.New("stake must be a positive number of tokens")
	ErrInsufficientBalance  = errors.New("stake exceeds token balance")
	ErrMarketNotFound       = errors.New("market not found")
	ErrMarketClosed         = errors.New("market is not open for trading")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrNonInstitutionalMail = errors.New("email is not from an allowed institution")
	ErrInvalidInviteCode    = errors.New("invalid invite code")
)
