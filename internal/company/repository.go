package company

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/hiredeck/recruiter-api/internal/database"
)

var (
	ErrNotFound       = errors.New("company not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository handles company data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new unverified company into the database
func (r *Repository) Create(ctx context.Context, name, email, passwordHash, mobile, verificationToken string) (*Company, error) {
	now := time.Now()
	dbCompany := &database.Company{
		Name:                    name,
		Email:                   email,
		PasswordHash:            passwordHash,
		Mobile:                  mobile,
		Verified:                false,
		VerificationToken:       &verificationToken,
		VerificationTokenSentAt: &now,
	}

	_, err := r.db.NewInsert().
		Model(dbCompany).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	return mapDBCompanyToModel(dbCompany), nil
}

// GetByEmail retrieves a company by email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Company, error) {
	dbCompany := new(database.Company)
	err := r.db.NewSelect().
		Model(dbCompany).
		Where("email = ?", email).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company by email: %w", err)
	}

	return mapDBCompanyToModel(dbCompany), nil
}

// GetByID retrieves a company by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	dbCompany := new(database.Company)
	err := r.db.NewSelect().
		Model(dbCompany).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company by id: %w", err)
	}

	return mapDBCompanyToModel(dbCompany), nil
}

// GetByVerificationToken retrieves an unverified company by verification token
func (r *Repository) GetByVerificationToken(ctx context.Context, token string) (*Company, error) {
	dbCompany := new(database.Company)
	err := r.db.NewSelect().
		Model(dbCompany).
		Where("verification_token = ?", token).
		Where("verified = ?", false).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company by verification token: %w", err)
	}

	return mapDBCompanyToModel(dbCompany), nil
}

// MarkVerified marks a company as verified and clears the verification token.
// The token is single-use: once consumed it can never match again.
func (r *Repository) MarkVerified(ctx context.Context, companyID uuid.UUID) error {
	result, err := r.db.NewUpdate().
		Model((*database.Company)(nil)).
		Set("verified = ?", true).
		Set("verification_token = ?", nil).
		Set("verification_token_sent_at = ?", nil).
		Set("updated_at = NOW()").
		Where("id = ?", companyID).
		Where("verified = ?", false).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to mark company as verified: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateVerificationToken rotates the verification token for resend
func (r *Repository) UpdateVerificationToken(ctx context.Context, companyID uuid.UUID, token string) error {
	now := time.Now()
	result, err := r.db.NewUpdate().
		Model((*database.Company)(nil)).
		Set("verification_token = ?", token).
		Set("verification_token_sent_at = ?", now).
		Set("updated_at = NOW()").
		Where("id = ?", companyID).
		Where("verified = ?", false).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to update verification token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// mapDBCompanyToModel converts database model to domain model
func mapDBCompanyToModel(dbc *database.Company) *Company {
	return &Company{
		ID:                      dbc.ID,
		Name:                    dbc.Name,
		Email:                   dbc.Email,
		PasswordHash:            dbc.PasswordHash,
		Mobile:                  dbc.Mobile,
		Verified:                dbc.Verified,
		VerificationToken:       dbc.VerificationToken,
		VerificationTokenSentAt: dbc.VerificationTokenSentAt,
		CreatedAt:               dbc.CreatedAt,
		UpdatedAt:               dbc.UpdatedAt,
	}
}
