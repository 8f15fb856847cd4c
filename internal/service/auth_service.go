package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/manyinyire/Outleads-sub001/internal/auth"
	"github.com/manyinyire/Outleads-sub001/internal/config"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
	"github.com/manyinyire/Outleads-sub001/internal/events"
	"github.com/manyinyire/Outleads-sub001/internal/repository"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// TokenPair bundles the credentials issued on login. The refresh token must
// only ever travel in the HTTP-only cookie.
type TokenPair struct {
	AccessToken    string
	AccessExpires  time.Time
	RefreshToken   string
	RefreshExpires time.Time
}

// AuthService coordinates login, refresh and the onboarding flow.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users: users,
		tokenMgr: auth.NewTokenManager(
			cfg.Auth.AccessSecret,
			cfg.Auth.RefreshSecret,
			cfg.Auth.AccessTTLMinutes,
			cfg.Auth.RefreshTTLHours,
		),
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login authenticates an operator and issues an access/refresh pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, apperrors.MapError(err)
	}
	if user.Status != domain.UserStatusActive {
		return nil, nil, apperrors.NewForbidden("account is not active")
	}
	if user.PasswordHash == nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(*user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh validates the refresh cookie and issues a new access token.
// Verification failures are forbidden rather than unauthorized so clients can
// distinguish a missing cookie from a bad one.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokenMgr.ParseRefresh(refreshToken)
	if err != nil {
		return "", time.Time{}, apperrors.NewForbidden("invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewUnauthorized("user not found")
		}
		return "", time.Time{}, apperrors.MapError(err)
	}
	if user.Status != domain.UserStatusActive {
		return "", time.Time{}, apperrors.NewForbidden("account is not active")
	}

	token, exp, err := s.tokenMgr.GenerateAccess(user.ID, user.Role)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, exp, nil
}

// OnboardInput carries the signup request.
type OnboardInput struct {
	FullName string
	Email    string
	Role     domain.Role
	SBU      *string
}

// Onboard creates a PENDING account awaiting admin approval.
func (s *AuthService) Onboard(ctx context.Context, in OnboardInput) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		FullName: in.FullName,
		Email:    in.Email,
		Role:     in.Role,
		Status:   domain.UserStatusPending,
		SBU:      in.SBU,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishLifecycle(ctx, events.EventUserPending, user)
	return user, nil
}

// CompleteRegistration consumes an approval token, stores the credential and
// activates the account, logging the user in.
func (s *AuthService) CompleteRegistration(ctx context.Context, token, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByRegistrationToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewValidationError("invalid registration token", nil)
		}
		return nil, nil, apperrors.MapError(err)
	}
	if user.Status != domain.UserStatusApproved {
		return nil, nil, apperrors.NewValidationError("account is not awaiting registration", nil)
	}
	if user.RegistrationExpires == nil || time.Now().After(*user.RegistrationExpires) {
		return nil, nil, apperrors.NewValidationError("registration token expired", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}

	user.PasswordHash = &hash
	user.Status = domain.UserStatusActive
	user.RegistrationToken = nil
	user.RegistrationExpires = nil
	if err := s.users.Save(ctx, user); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout is a no-op for the stateless JWT approach; the handler clears the
// refresh cookie.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueTokens(user *domain.User) (*TokenPair, error) {
	access, accessExp, err := s.tokenMgr.GenerateAccess(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	refresh, refreshExp, err := s.tokenMgr.GenerateRefresh(user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &TokenPair{
		AccessToken:    access,
		AccessExpires:  accessExp,
		RefreshToken:   refresh,
		RefreshExpires: refreshExp,
	}, nil
}

func (s *AuthService) publishLifecycle(ctx context.Context, eventType events.EventType, user *domain.User) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Payload: events.UserLifecyclePayload{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
			Status: user.Status,
		},
	})
}
