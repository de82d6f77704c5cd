package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"token-shop/internal/core/domain"
	"token-shop/internal/core/ports"
	"token-shop/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const minPasswordLength = 6

// DemoAccounts are seeded when auth.seed_demo_users is set.
var DemoAccounts = []struct{ Email, Password string }{
	{"user1@example.com", "password123"},
	{"test@test.com", "test123"},
}

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	userRepo ports.UserRepository
	hashSvc  ports.HashService
	tokenSvc ports.TokenService
	now      func() time.Time
	log      zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	userRepo ports.UserRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo: userRepo,
		hashSvc:  hashSvc,
		tokenSvc: tokenSvc,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

// Signup registers an account and opens a session for it.
func (s *AuthServiceImpl) Signup(ctx context.Context, email, password string) (*ports.Session, error) {
	email = domain.NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.Validation("a valid email address is required")
	}
	if len(password) < minPasswordLength {
		return nil, apperror.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check email: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrEmailExists()
	}

	hash, err := s.hashSvc.Hash(password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	user := domain.NewUser(email, hash, s.now())
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, apperror.ErrEmailExists()
		}
		return nil, apperror.InternalError(fmt.Errorf("create user: %w", err))
	}

	reqLog(ctx, s.log).Info().
		Str("user_id", user.ID.String()).
		Str("email", user.Email).
		Msg("user signed up")

	return s.session(user)
}

// Login verifies credentials. Unknown email and wrong password both return
// AUTH_001.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials()
	}

	ok, err := s.hashSvc.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !ok {
		reqLog(ctx, s.log).Warn().Str("user_id", user.ID.String()).Msg("login failed: password mismatch")
		return nil, apperror.ErrInvalidCredentials()
	}

	return s.session(user)
}

// ResetPassword only records the request; no mail is sent.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get user: %w", err))
	}
	if user == nil {
		return apperror.ErrUnknownEmail()
	}

	reqLog(ctx, s.log).Info().Str("user_id", user.ID.String()).Msg("password reset requested")
	return nil
}

func (s *AuthServiceImpl) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken()
	}
	return user, nil
}

// VerifyAge marks the account as age verified, unlocking restricted products.
func (s *AuthServiceImpl) VerifyAge(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.AgeVerified {
		return user, nil
	}

	if err := s.userRepo.SetAgeVerified(ctx, userID, true); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("set age verified: %w", err))
	}
	user.AgeVerified = true

	reqLog(ctx, s.log).Info().Str("user_id", userID.String()).Msg("age verified")
	return user, nil
}

// SeedDemoUsers creates the demo accounts, skipping any that already exist.
func (s *AuthServiceImpl) SeedDemoUsers(ctx context.Context) error {
	for _, acc := range DemoAccounts {
		hash, err := s.hashSvc.Hash(acc.Password)
		if err != nil {
			return fmt.Errorf("hash demo password: %w", err)
		}
		err = s.userRepo.Create(ctx, domain.NewUser(acc.Email, hash, s.now()))
		if err != nil && !errors.Is(err, domain.ErrEmailTaken) {
			return fmt.Errorf("create demo user %s: %w", acc.Email, err)
		}
	}
	reqLog(ctx, s.log).Info().Int("count", len(DemoAccounts)).Msg("demo users seeded")
	return nil
}

func (s *AuthServiceImpl) session(user *domain.User) (*ports.Session, error) {
	token, expiresAt, err := s.tokenSvc.Generate(user.ID, user.Email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}
	return &ports.Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
