package job

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hiredeck/recruiter-api/internal/auth"
	"github.com/hiredeck/recruiter-api/internal/httputil"
	"github.com/hiredeck/recruiter-api/internal/logging"
)

// Handler contains HTTP handlers for the job endpoints
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CreateRequest represents the job creation request body
type CreateRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	ExperienceLevel string   `json:"experienceLevel"`
	Candidates      []string `json:"candidates"`
	EndDate         string   `json:"endDate"`
}

// Create handles job creation
// @Summary      Create a job posting
// @Description  Persist a job owned by the authenticated company and notify the candidate list by email
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRequest true "Job details"
// @Success      201 {object} Job
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Missing authentication"
// @Failure      403 {object} httputil.ErrorResponse "Invalid or expired token"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /jobs [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	companyID, ok := auth.GetCompanyIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid job creation request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	endDate, err := parseEndDate(req.EndDate)
	if err != nil {
		logger.Warn("invalid end date", "end_date", req.EndDate)
		httputil.RespondErrorWithCode(w, "endDate must be a date in YYYY-MM-DD format", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	newJob, err := h.service.Create(r.Context(), companyID, CreateInput{
		Title:           req.Title,
		Description:     req.Description,
		ExperienceLevel: req.ExperienceLevel,
		Candidates:      req.Candidates,
		EndDate:         endDate,
	})
	if err != nil {
		if isValidationError(err) {
			logger.Warn("job creation failed: validation error", "error", err.Error())
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
			return
		}
		logger.Error("job creation failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to create job", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("job created successfully",
		"job_id", newJob.ID,
		"company_id", companyID,
		"candidates", len(newJob.Candidates),
	)

	httputil.RespondJSON(w, newJob, http.StatusCreated)
}

// List handles listing the caller's jobs
// @Summary      List job postings
// @Description  Return the jobs owned by the authenticated company
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Job
// @Failure      401 {object} httputil.ErrorResponse "Missing authentication"
// @Failure      403 {object} httputil.ErrorResponse "Invalid or expired token"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /jobs [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	companyID, ok := auth.GetCompanyIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	jobs, err := h.service.ListByCompany(r.Context(), companyID)
	if err != nil {
		logger.Error("failed to list jobs", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list jobs", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, jobs, http.StatusOK)
}

// parseEndDate accepts a plain date (the form the portal sends) or a full
// RFC 3339 timestamp.
func parseEndDate(value string) (time.Time, error) {
	if value == "" {
		// Zero value, the service reports the missing field
		return time.Time{}, nil
	}

	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.Time{}, errors.New("unrecognized date format")
}

// isValidationError reports whether err is one of the input validation sentinels
func isValidationError(err error) bool {
	return errors.Is(err, ErrTitleRequired) ||
		errors.Is(err, ErrDescriptionRequired) ||
		errors.Is(err, ErrExperienceLevelRequired) ||
		errors.Is(err, ErrEndDateRequired)
}
