package job

import (
	"time"

	"github.com/google/uuid"
)

// Job is a posting created by a company. Candidates is the ordered list of
// email addresses notified when the posting is created; duplicates are kept.
type Job struct {
	ID              uuid.UUID `json:"id"`
	CompanyID       uuid.UUID `json:"companyId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ExperienceLevel string    `json:"experienceLevel"`
	Candidates      []string  `json:"candidates"`
	EndDate         time.Time `json:"endDate"`
	CreatedAt       time.Time `json:"createdAt"`
}
