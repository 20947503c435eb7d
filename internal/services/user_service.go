package services

import (
	"context"
	"errors"
	"strings"

	"github.com/devkartikrathi/ncfo/internal/auth"
	"github.com/devkartikrathi/ncfo/internal/models"
	repo "github.com/devkartikrathi/ncfo/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	users repo.Users
	tm    *auth.TokenManager
}

func NewUserService(users repo.Users, tm *auth.TokenManager) *UserService {
	return &UserService{users: users, tm: tm}
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	u := models.User{Name: strings.TrimSpace(name), Email: strings.ToLower(strings.TrimSpace(email))}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if len(password) < 8 {
		return models.User{}, errors.New("password too short")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = hash
	return s.users.Create(ctx, u)
}

// Login verifies the password and issues a token pair.
func (s *UserService) Login(ctx context.Context, email, password string) (access, refresh string, err error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repo.ErrNotFound) {
		return "", "", ErrInvalidCredentials
	}
	if err != nil {
		return "", "", err
	}
	if auth.VerifyPassword(password, u.PasswordHash) != nil {
		return "", "", ErrInvalidCredentials
	}
	access, refresh, _, err = s.tm.GeneratePair(u.ID)
	return access, refresh, err
}

// Refresh rotates a refresh token into a new pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (access, refresh string, err error) {
	claims, isRefresh, err := s.tm.ParseAny(refreshToken)
	if err != nil || !isRefresh {
		return "", "", ErrInvalidCredentials
	}
	if _, err := s.users.GetByID(ctx, claims.UserID); err != nil {
		return "", "", ErrInvalidCredentials
	}
	access, refresh, _, err = s.tm.GeneratePair(claims.UserID)
	return access, refresh, err
}
