package auth

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials is returned on a failed login without revealing
// whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Account is a staff login able to operate the lending desk or read
// reports, depending on its role.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccountRepository defines the contract for staff account storage.
type AccountRepository interface {
	GetByUsername(ctx context.Context, username string) (Account, error)
	Create(ctx context.Context, a Account) error
}

// Service authenticates staff accounts and issues tokens.
type Service struct {
	accounts AccountRepository
	secret   string
	tokenTTL time.Duration
}

func NewService(accounts AccountRepository, secret string, tokenTTL time.Duration) *Service {
	return &Service{accounts: accounts, secret: secret, tokenTTL: tokenTTL}
}

// Login verifies the credentials and returns a signed token carrying the
// account's role.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !CheckPassword(account.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	return GenerateToken(s.secret, account.ID, account.Role, s.tokenTTL)
}
