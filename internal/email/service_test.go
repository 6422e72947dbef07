package email

import (
	"strings"
	"testing"
	"time"
)

func TestRenderVerificationEmailTemplate(t *testing.T) {
	svc := NewService("smtp.example.com", "587", "noreply@example.com", "secret", "https://portal.example.com")

	body, err := svc.renderVerificationEmailTemplate("https://portal.example.com/verify?token=abc123")
	if err != nil {
		t.Fatalf("render returned error: %v", err)
	}

	if !strings.Contains(body, "https://portal.example.com/verify?token=abc123") {
		t.Error("body does not contain the verification link")
	}
	if !strings.Contains(body, "Verify your email address") {
		t.Error("body does not contain the heading")
	}
}

func TestRenderJobAlertTemplate(t *testing.T) {
	svc := NewService("smtp.example.com", "587", "noreply@example.com", "secret", "https://portal.example.com")

	body, err := svc.renderJobAlertTemplate(JobAlert{
		Title:           "Engineer",
		Description:     "Build the hiring pipeline",
		ExperienceLevel: "Senior",
		EndDate:         time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("render returned error: %v", err)
	}

	for _, want := range []string{"Engineer", "Build the hiring pipeline", "Senior", "December 31, 2025"} {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q", want)
		}
	}
}

func TestRenderJobAlertTemplate_EscapesHTML(t *testing.T) {
	svc := NewService("smtp.example.com", "587", "noreply@example.com", "secret", "https://portal.example.com")

	body, err := svc.renderJobAlertTemplate(JobAlert{
		Title:           "<script>alert(1)</script>",
		Description:     "d",
		ExperienceLevel: "Junior",
		EndDate:         time.Now(),
	})
	if err != nil {
		t.Fatalf("render returned error: %v", err)
	}

	if strings.Contains(body, "<script>") {
		t.Error("title was not HTML-escaped")
	}
}
