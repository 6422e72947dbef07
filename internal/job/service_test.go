package job

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hiredeck/recruiter-api/internal/email"
	"github.com/hiredeck/recruiter-api/internal/logging"
)

// --- mocks ---

// memStore is an in-memory Store keeping jobs in insertion order.
type memStore struct {
	mu   sync.Mutex
	jobs []*Job
}

func (m *memStore) Create(ctx context.Context, companyID uuid.UUID, title, description, experienceLevel string, candidates []string, endDate time.Time) (*Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if candidates == nil {
		candidates = []string{}
	}
	j := &Job{
		ID:              uuid.New(),
		CompanyID:       companyID,
		Title:           title,
		Description:     description,
		ExperienceLevel: experienceLevel,
		Candidates:      candidates,
		EndDate:         endDate,
		CreatedAt:       time.Now(),
	}
	m.jobs = append(m.jobs, j)
	return j, nil
}

func (m *memStore) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var owned []*Job
	for _, j := range m.jobs {
		if j.CompanyID == companyID {
			owned = append(owned, j)
		}
	}
	return owned, nil
}

type mockAlertSender struct {
	sent chan string // candidate addresses in dispatch order
	err  error
}

func newMockAlertSender() *mockAlertSender {
	return &mockAlertSender{sent: make(chan string, 20)}
}

func (m *mockAlertSender) SendJobAlert(ctx context.Context, toEmail string, alert email.JobAlert) error {
	m.sent <- toEmail
	return m.err
}

func (m *mockAlertSender) waitForAlerts(t *testing.T, n int) []string {
	t.Helper()
	var got []string
	for len(got) < n {
		select {
		case addr := <-m.sent:
			got = append(got, addr)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for alerts, got %d of %d", len(got), n)
		}
	}
	return got
}

func newTestService(store Store, sender Sender) *Service {
	return NewService(store, sender, logging.NewLogger(true))
}

// --- tests ---

func TestService_Create(t *testing.T) {
	store := &memStore{}
	sender := newMockAlertSender()
	svc := newTestService(store, sender)
	companyID := uuid.New()

	endDate := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	j, err := svc.Create(context.Background(), companyID, CreateInput{
		Title:           "Engineer",
		Description:     "Build things",
		ExperienceLevel: "Senior",
		Candidates:      []string{"x@y.com"},
		EndDate:         endDate,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if j.CompanyID != companyID {
		t.Errorf("job owned by wrong company: %s", j.CompanyID)
	}
	if j.Title != "Engineer" {
		t.Errorf("unexpected title: %s", j.Title)
	}
	if !j.EndDate.Equal(endDate) {
		t.Errorf("unexpected end date: %v", j.EndDate)
	}

	alerts := sender.waitForAlerts(t, 1)
	if alerts[0] != "x@y.com" {
		t.Errorf("alert sent to %s", alerts[0])
	}
}

func TestService_Create_NotifiesCandidatesInOrder(t *testing.T) {
	store := &memStore{}
	sender := newMockAlertSender()
	svc := newTestService(store, sender)

	// Duplicates are kept and order is preserved
	candidates := []string{"a@x.com", "b@x.com", "a@x.com", "c@x.com"}
	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		Title:           "Engineer",
		Description:     "Build things",
		ExperienceLevel: "Mid",
		Candidates:      candidates,
		EndDate:         time.Now().AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got := sender.waitForAlerts(t, len(candidates))
	for i, want := range candidates {
		if got[i] != want {
			t.Errorf("alert %d sent to %s, want %s", i, got[i], want)
		}
	}
}

func TestService_Create_DeliveryFailureDoesNotFailCreate(t *testing.T) {
	store := &memStore{}
	sender := newMockAlertSender()
	sender.err = errors.New("smtp unreachable")
	svc := newTestService(store, sender)
	companyID := uuid.New()

	j, err := svc.Create(context.Background(), companyID, CreateInput{
		Title:           "Engineer",
		Description:     "Build things",
		ExperienceLevel: "Senior",
		Candidates:      []string{"x@y.com", "z@y.com"},
		EndDate:         time.Now().AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("Create must not fail on delivery errors, got: %v", err)
	}

	// Every candidate is still attempted
	sender.waitForAlerts(t, 2)

	jobs, err := svc.ListByCompany(context.Background(), companyID)
	if err != nil {
		t.Fatalf("ListByCompany returned error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != j.ID {
		t.Error("created job not found in the store")
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := newTestService(&memStore{}, newMockAlertSender())
	endDate := time.Now().AddDate(0, 1, 0)

	cases := []struct {
		name  string
		input CreateInput
		want  error
	}{
		{"missing title", CreateInput{Description: "d", ExperienceLevel: "Senior", EndDate: endDate}, ErrTitleRequired},
		{"missing description", CreateInput{Title: "t", ExperienceLevel: "Senior", EndDate: endDate}, ErrDescriptionRequired},
		{"missing experience level", CreateInput{Title: "t", Description: "d", EndDate: endDate}, ErrExperienceLevelRequired},
		{"missing end date", CreateInput{Title: "t", Description: "d", ExperienceLevel: "Senior"}, ErrEndDateRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uuid.New(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestService_ListByCompany_OwnershipIsolation(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, newMockAlertSender())

	companyA := uuid.New()
	companyB := uuid.New()
	endDate := time.Now().AddDate(0, 1, 0)

	// Interleave creates across both companies
	titles := []struct {
		company uuid.UUID
		title   string
	}{
		{companyA, "A1"},
		{companyB, "B1"},
		{companyA, "A2"},
		{companyB, "B2"},
		{companyA, "A3"},
	}
	for _, tt := range titles {
		_, err := svc.Create(context.Background(), tt.company, CreateInput{
			Title:           tt.title,
			Description:     "d",
			ExperienceLevel: "Junior",
			EndDate:         endDate,
		})
		if err != nil {
			t.Fatalf("Create(%s) returned error: %v", tt.title, err)
		}
	}

	jobsA, err := svc.ListByCompany(context.Background(), companyA)
	if err != nil {
		t.Fatalf("ListByCompany returned error: %v", err)
	}

	if len(jobsA) != 3 {
		t.Fatalf("expected 3 jobs for company A, got %d", len(jobsA))
	}
	for i, want := range []string{"A1", "A2", "A3"} {
		if jobsA[i].Title != want {
			t.Errorf("job %d has title %s, want %s", i, jobsA[i].Title, want)
		}
		if jobsA[i].CompanyID != companyA {
			t.Errorf("job %s leaked from another company", jobsA[i].Title)
		}
	}
}
