package company

import (
	"time"

	"github.com/google/uuid"
)

// Company is an employer account.
type Company struct {
	ID                      uuid.UUID  `json:"id"`
	Name                    string     `json:"name"`
	Email                   string     `json:"email"`
	PasswordHash            string     `json:"-"` // Never expose password hash in JSON
	Mobile                  string     `json:"mobile"`
	Verified                bool       `json:"verified"`
	VerificationToken       *string    `json:"-"`
	VerificationTokenSentAt *time.Time `json:"-"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}
