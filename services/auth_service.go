package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminRole     = "admin"
	adminSubject  = "admin"
	tokenLifetime = 24 * time.Hour
)

type AuthService interface {
	Login(ctx context.Context, password string) (token string, expiresAt time.Time, err error)
	ParseToken(token string) (jwt.MapClaims, error)
}

type authService struct {
	passwordHash []byte
	secret       []byte
	now          func() time.Time
}

func NewAuthService(adminPasswordHash, jwtSecret string) AuthService {
	return &authService{
		passwordHash: []byte(adminPasswordHash),
		secret:       []byte(jwtSecret),
		now:          time.Now,
	}
}

func (s *authService) Login(_ context.Context, password string) (string, time.Time, error) {
	if password == "" {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, fmt.Errorf("failed to verify admin password: %w", err)
	}

	now := s.now()
	expiresAt := now.Add(tokenLifetime)
	claims := jwt.MapClaims{
		"sub":  adminSubject,
		"role": AdminRole,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *authService) ParseToken(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
