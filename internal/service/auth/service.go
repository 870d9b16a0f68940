package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/talenthub-hr/hr-backend-go/internal/domain/auth"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/employee"
	"github.com/talenthub-hr/hr-backend-go/internal/pkg/jwt"
	"github.com/talenthub-hr/hr-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	employees     employee.Repository
	jwtService    jwt.Service
	refreshTokens postgresql.RefreshTokenRepository
}

func NewAuthService(
	employees employee.Repository,
	jwtService jwt.Service,
	refreshTokens postgresql.RefreshTokenRepository,
) *Service {
	return &Service{
		employees:     employees,
		jwtService:    jwtService,
		refreshTokens: refreshTokens,
	}
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := s.employees.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, emp)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		EmployeeID: emp.ID,
		FullName:   emp.FullName,
		Email:      emp.Email,
		Level:      string(emp.Level),
		TokenPair:  pair,
	}, nil
}

// Refresh rotates a refresh token: the old token is revoked and a new
// pair is issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	employeeID, err := s.jwtService.DecodeRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}

	revoked, err := s.refreshTokens.IsRevoked(ctx, refreshToken)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.TokenPair{}, auth.ErrRefreshTokenRevoked
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenPair{}, auth.ErrInvalidToken
		}
		return auth.TokenPair{}, err
	}

	if err := s.refreshTokens.Revoke(ctx, refreshToken); err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.issueTokens(ctx, emp)
}

// Logout revokes the presented refresh token.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.refreshTokens.Revoke(ctx, refreshToken)
}

func (s *Service) issueTokens(ctx context.Context, emp employee.Employee) (auth.TokenPair, error) {
	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.Level)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(emp.ID)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.refreshTokens.Create(ctx, emp.ID, refreshToken, refreshExp); err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.TokenPair{
		AccessToken:  accessToken,
		ExpiresAt:    accessExp,
		RefreshToken: refreshToken,
		RefreshExp:   refreshExp,
	}, nil
}
