package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"go-invoice-dashboard/internal/domain"
	"go-invoice-dashboard/pkg/utils"
)

const minPasswordLen = 6

var ErrEmailTaken = errors.New("email already registered")

type Service struct {
	users domain.UserRepository
	log   *zap.Logger
}

func NewService(users domain.UserRepository, log *zap.Logger) *Service {
	return &Service{users: users, log: log}
}

// Authenticate runs the credentials check: well-formed email, password
// of at least 6 chars, user lookup, bcrypt compare. It returns
// (nil, nil) on any credential failure — unknown email and wrong
// password are indistinguishable to the caller, so login responses
// cannot be used to enumerate users. Only a lookup failure produces an
// error, logged here and surfaced generically.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if !validCredentialsShape(email, password) {
		return nil, nil
	}
	u, err := s.users.FindCredentials(ctx, email)
	if err != nil {
		s.log.Error("failed to fetch user", zap.Error(err))
		return nil, errors.New("failed to fetch user")
	}
	if u == nil {
		return nil, nil
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		s.log.Info("invalid credentials", zap.String("email", email))
		return nil, nil
	}
	return u, nil
}

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if !validCredentialsShape(email, password) {
		return nil, errors.New("invalid email or password")
	}
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("failed to fetch user", zap.Error(err))
		return nil, errors.New("failed to fetch user")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: utils.HashPassword(password),
	}
	if err := s.users.Create(ctx, u); err != nil {
		s.log.Error("failed to create user", zap.Error(err))
		return nil, errors.New("failed to create user")
	}
	return u, nil
}

func validCredentialsShape(email, password string) bool {
	if len(password) < minPasswordLen {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
