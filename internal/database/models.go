package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Company is the database model for an employer account.
type Company struct {
	bun.BaseModel `bun:"table:companies"`

	ID                      uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name                    string     `bun:"name,notnull"`
	Email                   string     `bun:"email,notnull,unique"`
	PasswordHash            string     `bun:"password_hash,notnull"`
	Mobile                  string     `bun:"mobile,notnull"`
	Verified                bool       `bun:"verified,notnull,default:false"`
	VerificationToken       *string    `bun:"verification_token"`
	VerificationTokenSentAt *time.Time `bun:"verification_token_sent_at"`
	CreatedAt               time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt               time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

// Job is the database model for a job posting.
type Job struct {
	bun.BaseModel `bun:"table:jobs"`

	ID              uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	CompanyID       uuid.UUID `bun:"company_id,notnull,type:uuid"`
	Title           string    `bun:"title,notnull"`
	Description     string    `bun:"description,notnull"`
	ExperienceLevel string    `bun:"experience_level,notnull"`
	Candidates      []string  `bun:"candidates,array"`
	EndDate         time.Time `bun:"end_date,notnull"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
