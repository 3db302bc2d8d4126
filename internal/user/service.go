package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"turfbook/internal/auth"
)

var (
	ErrEmailExists        = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, error)
	GetByID(ctx context.Context, userID int) (*User, error)
}

type service struct {
	repo       Repository
	jwtSecret  string
	sessionTTL time.Duration
}

func NewService(repo Repository, jwtSecret string, sessionTTL time.Duration) Service {
	return &service{
		repo:       repo,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, email, passwordHash, false)
}

// Login checks credentials and returns the user with a signed session token.
func (s *service) Login(ctx context.Context, req LoginRequest) (*User, string, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateSessionToken(user.ID, user.Email, user.IsAdmin, s.jwtSecret, s.sessionTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *service) GetByID(ctx context.Context, userID int) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}
