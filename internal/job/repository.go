package job

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/hiredeck/recruiter-api/internal/database"
)

// Repository handles job data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new job into the database
func (r *Repository) Create(ctx context.Context, companyID uuid.UUID, title, description, experienceLevel string, candidates []string, endDate time.Time) (*Job, error) {
	if candidates == nil {
		candidates = []string{}
	}

	dbJob := &database.Job{
		CompanyID:       companyID,
		Title:           title,
		Description:     description,
		ExperienceLevel: experienceLevel,
		Candidates:      candidates,
		EndDate:         endDate,
	}

	_, err := r.db.NewInsert().
		Model(dbJob).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return mapDBJobToModel(dbJob), nil
}

// ListByCompany retrieves all jobs owned by a company in insertion order
func (r *Repository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*Job, error) {
	var dbJobs []*database.Job
	err := r.db.NewSelect().
		Model(&dbJobs).
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs := make([]*Job, 0, len(dbJobs))
	for _, dbJob := range dbJobs {
		jobs = append(jobs, mapDBJobToModel(dbJob))
	}

	return jobs, nil
}

// mapDBJobToModel converts database model to domain model
func mapDBJobToModel(dbj *database.Job) *Job {
	candidates := dbj.Candidates
	if candidates == nil {
		candidates = []string{}
	}

	return &Job{
		ID:              dbj.ID,
		CompanyID:       dbj.CompanyID,
		Title:           dbj.Title,
		Description:     dbj.Description,
		ExperienceLevel: dbj.ExperienceLevel,
		Candidates:      candidates,
		EndDate:         dbj.EndDate,
		CreatedAt:       dbj.CreatedAt,
	}
}
