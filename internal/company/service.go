package company

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/hiredeck/recruiter-api/internal/auth"
	"github.com/hiredeck/recruiter-api/internal/logging"
)

var (
	ErrNameRequired          = errors.New("company name is required")
	ErrEmailRequired         = errors.New("email is required")
	ErrInvalidEmailFormat    = errors.New("invalid email format")
	ErrPasswordRequired      = errors.New("password is required")
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters")
	ErrMobileRequired        = errors.New("mobile contact is required")
	ErrNotVerified           = errors.New("email not verified, please check your inbox")
	ErrInvalidCredential     = errors.New("invalid password")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired verification token")
)

// Store defines the persistence operations the lifecycle service needs
type Store interface {
	Create(ctx context.Context, name, email, passwordHash, mobile, verificationToken string) (*Company, error)
	GetByEmail(ctx context.Context, email string) (*Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	GetByVerificationToken(ctx context.Context, token string) (*Company, error)
	MarkVerified(ctx context.Context, companyID uuid.UUID) error
	UpdateVerificationToken(ctx context.Context, companyID uuid.UUID, token string) error
}

// Sender defines the outbound email operations the lifecycle service needs
type Sender interface {
	SendVerificationEmail(ctx context.Context, toEmail, token string) error
}

// AuthToken is the credential returned by a successful login
type AuthToken struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// Service handles the company registration, verification and login lifecycle
type Service struct {
	store                Store
	tokenService         auth.TokenService
	sender               Sender
	logger               *logging.Logger
	tokenDuration        time.Duration
	verificationTokenTTL time.Duration
}

func NewService(
	store Store,
	tokenService auth.TokenService,
	sender Sender,
	logger *logging.Logger,
	tokenDuration time.Duration,
	verificationTokenTTL time.Duration,
) *Service {
	return &Service{
		store:                store,
		tokenService:         tokenService,
		sender:               sender,
		logger:               logger,
		tokenDuration:        tokenDuration,
		verificationTokenTTL: verificationTokenTTL,
	}
}

// Register creates a new unverified company account and sends a verification email.
// The email is dispatched asynchronously: a delivery failure is logged but does not
// fail the registration, and the account stays recoverable via ResendVerification.
func (s *Service) Register(ctx context.Context, name, email, password, mobile string) (*Company, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(email) > 254 {
		return nil, ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmailFormat
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}
	if mobile == "" {
		return nil, ErrMobileRequired
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken, err := generateRandomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	// The store's unique-email constraint makes duplicate detection race-safe
	newCompany, err := s.store.Create(ctx, name, email, passwordHash, mobile, verificationToken)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	go func() {
		// New context: the request context is gone once the response is written
		emailCtx := context.Background()
		if err := s.sender.SendVerificationEmail(emailCtx, email, verificationToken); err != nil {
			s.logger.Warn("failed to send verification email", "email", email, "error", err)
		}
	}()

	return newCompany, nil
}

// Verify consumes a verification token and marks the company as verified.
// Unknown, already-consumed and out-of-window tokens all surface as a single
// ErrInvalidOrExpiredToken.
func (s *Service) Verify(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidOrExpiredToken
	}

	existing, err := s.store.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("failed to find company by token: %w", err)
	}

	if existing.VerificationTokenSentAt == nil ||
		time.Now().After(existing.VerificationTokenSentAt.Add(s.verificationTokenTTL)) {
		s.logger.Warn("verification token outside validity window", "company_id", existing.ID)
		return ErrInvalidOrExpiredToken
	}

	if err := s.store.MarkVerified(ctx, existing.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			// Consumed concurrently between lookup and update
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("failed to mark company as verified: %w", err)
	}

	return nil
}

// Login authenticates a company and issues a bearer token
func (s *Service) Login(ctx context.Context, email, password string) (*AuthToken, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	existing, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	if !existing.Verified {
		return nil, ErrNotVerified
	}

	if !verifyPassword(existing.PasswordHash, password) {
		return nil, ErrInvalidCredential
	}

	token, err := s.tokenService.CreateToken(existing.ID, existing.Email, s.tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	return &AuthToken{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokenDuration.Seconds()),
	}, nil
}

// ResendVerification rotates the verification token and re-sends the email.
// Always returns nil to prevent email enumeration.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	existing, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		s.logger.Warn("failed to get company for resend verification", "error", err)
		return nil
	}

	if existing.Verified {
		return nil
	}

	token, err := generateRandomToken()
	if err != nil {
		s.logger.Warn("failed to generate verification token", "error", err)
		return nil
	}

	if err := s.store.UpdateVerificationToken(ctx, existing.ID, token); err != nil {
		s.logger.Warn("failed to update verification token", "error", err)
		return nil
	}

	go func() {
		emailCtx := context.Background()
		if err := s.sender.SendVerificationEmail(emailCtx, email, token); err != nil {
			s.logger.Warn("failed to resend verification email", "email", email, "error", err)
		}
	}()

	return nil
}
