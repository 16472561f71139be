package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/twitter-api/internal/model"
	"github.com/iliyamo/twitter-api/internal/repository"
	"github.com/iliyamo/twitter-api/internal/utils"
)

// AuthService exchanges credentials for access tokens and resolves tokens
// back to users.  Tokens carry the username as subject.
type AuthService struct {
	users  *UserService
	tokens *utils.TokenManager
	log    *zap.Logger
}

func NewAuthService(users *UserService, tokens *utils.TokenManager, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Signup registers a new account.
func (s *AuthService) Signup(ctx context.Context, in model.UserCreate) (*model.User, error) {
	return s.users.Create(ctx, in)
}

// Login checks username and password and issues a bearer token.  An
// unknown username and a wrong password fail the same way and take about
// the same time.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Token, error) {
	u, err := s.users.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		utils.BurnPasswordCheck(password)
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		s.log.Info("login failed", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(u.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &model.Token{
		AccessToken: tok.Token,
		TokenType:   model.TokenTypeBearer,
		ExpiresAt:   tok.Exp,
	}, nil
}

// CurrentUser resolves a bearer token to its user.  Every token problem
// and a subject that no longer exists yield ErrCouldNotValidate; only store
// failures come back as other errors.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	username, err := s.tokens.Verify(token)
	if err != nil {
		s.log.Debug("token rejected", zap.Error(err))
		return nil, ErrCouldNotValidate
	}
	u, err := s.users.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrCouldNotValidate
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}
