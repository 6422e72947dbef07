package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hiredeck/recruiter-api/internal/email"
	"github.com/hiredeck/recruiter-api/internal/logging"
)

var (
	ErrTitleRequired           = errors.New("title is required")
	ErrDescriptionRequired     = errors.New("description is required")
	ErrExperienceLevelRequired = errors.New("experience level is required")
	ErrEndDateRequired         = errors.New("application end date is required")
)

// Store defines the persistence operations the job service needs
type Store interface {
	Create(ctx context.Context, companyID uuid.UUID, title, description, experienceLevel string, candidates []string, endDate time.Time) (*Job, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*Job, error)
}

// Sender defines the outbound email operations the job service needs
type Sender interface {
	SendJobAlert(ctx context.Context, toEmail string, alert email.JobAlert) error
}

// CreateInput carries the fields of a job-post request
type CreateInput struct {
	Title           string
	Description     string
	ExperienceLevel string
	Candidates      []string
	EndDate         time.Time
}

// Service handles job creation and listing for authenticated companies
type Service struct {
	store  Store
	sender Sender
	logger *logging.Logger
}

func NewService(store Store, sender Sender, logger *logging.Logger) *Service {
	return &Service{
		store:  store,
		sender: sender,
		logger: logger,
	}
}

// Create persists a job and notifies every candidate on the list.
// Notification is best-effort: candidate emails are dispatched asynchronously
// after the job is persisted, and a delivery failure is logged without
// failing the create. Candidates are notified one by one in list order.
func (s *Service) Create(ctx context.Context, companyID uuid.UUID, input CreateInput) (*Job, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.Description == "" {
		return nil, ErrDescriptionRequired
	}
	if input.ExperienceLevel == "" {
		return nil, ErrExperienceLevelRequired
	}
	if input.EndDate.IsZero() {
		return nil, ErrEndDateRequired
	}

	newJob, err := s.store.Create(ctx, companyID, input.Title, input.Description, input.ExperienceLevel, input.Candidates, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if len(newJob.Candidates) > 0 {
		go s.notifyCandidates(newJob)
	}

	return newJob, nil
}

// ListByCompany returns the jobs owned by the given company in insertion order
func (s *Service) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*Job, error) {
	jobs, err := s.store.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

// notifyCandidates sends one alert per candidate address, in list order.
// Runs outside the request lifetime; each failure is logged and the loop
// continues so one bad address does not starve the rest of the list.
func (s *Service) notifyCandidates(j *Job) {
	ctx := context.Background()

	alert := email.JobAlert{
		Title:           j.Title,
		Description:     j.Description,
		ExperienceLevel: j.ExperienceLevel,
		EndDate:         j.EndDate,
	}

	for _, candidate := range j.Candidates {
		if err := s.sender.SendJobAlert(ctx, candidate, alert); err != nil {
			s.logger.Warn("failed to send job alert",
				"job_id", j.ID,
				"candidate", candidate,
				"error", err,
			)
		}
	}
}
