package job

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseEndDate(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{"plain date", "2025-12-31", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339", "2025-12-31T10:30:00Z", time.Date(2025, 12, 31, 10, 30, 0, 0, time.UTC), false},
		{"empty is zero", "", time.Time{}, false},
		{"garbage", "next friday", time.Time{}, true},
		{"wrong order", "31-12-2025", time.Time{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseEndDate(tc.value)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tc.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseEndDate(%q) returned error: %v", tc.value, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("parseEndDate(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

// Handlers must refuse requests whose context carries no authenticated
// company, even if the middleware was somehow bypassed.
func TestHandler_RequiresAuthenticatedContext(t *testing.T) {
	h := NewHandler(newTestService(&memStore{}, newMockAlertSender()), nil)

	t.Run("create", func(t *testing.T) {
		body := strings.NewReader(`{"title":"Engineer"}`)
		req := httptest.NewRequest(http.MethodPost, "/jobs", body)
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		rec := httptest.NewRecorder()

		h.List(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}
