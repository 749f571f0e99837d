package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hangang-korean/admin-service/internal/adapters/handler"
	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/services"
	"github.com/hangang-korean/admin-service/test/mocks"
)

func newEnrollmentMux(repo *mocks.MockEnrollmentRepository) *http.ServeMux {
	h := handler.NewEnrollmentHandler(services.NewEnrollmentService(repo))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /enrollments", h.List)
	mux.HandleFunc("POST /enrollments", h.Create)
	mux.HandleFunc("GET /enrollments/{id}", h.Get)
	mux.HandleFunc("PUT /enrollments/{id}", h.Update)
	mux.HandleFunc("POST /enrollments/{id}/approve", h.Approve)
	mux.HandleFunc("POST /enrollments/{id}/cancel", h.Cancel)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func doJSONWithAuth(t *testing.T, mux *http.ServeMux, method, target, body, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", authorization)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeErrorKind(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not an error envelope: %v (%s)", err, rec.Body.String())
	}
	return body.Error.Kind
}

func TestEnrollmentHandlerCreate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(*mocks.MockEnrollmentRepository)
		wantStatus int
		wantKind   string
	}{
		{
			name: "created",
			body: `{"userEmail":"student@example.com","courseId":1}`,
			setupMock: func(m *mocks.MockEnrollmentRepository) {
				m.SeedCourse(1, 10, true)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed_json",
			body:       `{"userEmail":`,
			setupMock:  func(m *mocks.MockEnrollmentRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad_email",
			body:       `{"userEmail":"nope","courseId":1}`,
			setupMock:  func(m *mocks.MockEnrollmentRepository) {},
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation",
		},
		{
			name:       "unknown_course",
			body:       `{"userEmail":"student@example.com","courseId":7}`,
			setupMock:  func(m *mocks.MockEnrollmentRepository) {},
			wantStatus: http.StatusNotFound,
			wantKind:   "not_found",
		},
		{
			name: "schedule_full",
			body: `{"userEmail":"late@example.com","courseId":1,"scheduleId":5}`,
			setupMock: func(m *mocks.MockEnrollmentRepository) {
				m.SeedCourse(1, 10, true)
				capacity := 1
				m.SeedSchedule(5, 1, &capacity)
				scheduleID := int64(5)
				m.SeedEnrollment(domain.Enrollment{
					UserID:     1,
					CourseID:   1,
					ScheduleID: &scheduleID,
					Status:     domain.EnrollmentPending,
				})
			},
			wantStatus: http.StatusConflict,
			wantKind:   "capacity_exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockEnrollmentRepository()
			tt.setupMock(mockRepo)
			mux := newEnrollmentMux(mockRepo)

			rec := doJSON(t, mux, http.MethodPost, "/enrollments", tt.body)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantKind != "" {
				if kind := decodeErrorKind(t, rec); kind != tt.wantKind {
					t.Errorf("expected error kind %q, got %q", tt.wantKind, kind)
				}
			}
			if tt.wantStatus == http.StatusCreated {
				var enrollment domain.Enrollment
				if err := json.Unmarshal(rec.Body.Bytes(), &enrollment); err != nil {
					t.Fatalf("invalid response body: %v", err)
				}
				if enrollment.Status != domain.EnrollmentPending {
					t.Errorf("expected pending, got %s", enrollment.Status)
				}
			}
		})
	}
}

func TestEnrollmentHandlerApprove(t *testing.T) {
	mockRepo := mocks.NewMockEnrollmentRepository()
	seeded := mockRepo.SeedEnrollment(domain.Enrollment{
		UserID:   1,
		CourseID: 1,
		Status:   domain.EnrollmentPending,
	})
	mux := newEnrollmentMux(mockRepo)

	rec := doJSON(t, mux, http.MethodPost, "/enrollments/1/approve", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var enrollment domain.Enrollment
	if err := json.Unmarshal(rec.Body.Bytes(), &enrollment); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if enrollment.ID != seeded.ID || enrollment.Status != domain.EnrollmentApproved {
		t.Errorf("unexpected enrollment: %+v", enrollment)
	}

	// A second approve is rejected as an invalid state change.
	rec = doJSON(t, mux, http.MethodPost, "/enrollments/1/approve", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second approve, got %d", rec.Code)
	}
	if kind := decodeErrorKind(t, rec); kind != "invalid_state" {
		t.Errorf("expected kind invalid_state, got %q", kind)
	}
}

func TestEnrollmentHandlerCancel(t *testing.T) {
	mockRepo := mocks.NewMockEnrollmentRepository()
	mockRepo.SeedEnrollment(domain.Enrollment{
		UserID:   1,
		CourseID: 1,
		Status:   domain.EnrollmentActive,
	})
	mux := newEnrollmentMux(mockRepo)

	rec := doJSON(t, mux, http.MethodPost, "/enrollments/1/cancel", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var enrollment domain.Enrollment
	if err := json.Unmarshal(rec.Body.Bytes(), &enrollment); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if enrollment.Status != domain.EnrollmentCancelled {
		t.Errorf("expected cancelled, got %s", enrollment.Status)
	}

	// Cancelled is terminal; a second cancel is rejected.
	rec = doJSON(t, mux, http.MethodPost, "/enrollments/1/cancel", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second cancel, got %d", rec.Code)
	}
}

func TestEnrollmentHandlerUpdate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantKind   string
	}{
		{"status_change", `{"status":"approved"}`, http.StatusOK, ""},
		{"payment_change", `{"paymentStatus":"paid"}`, http.StatusOK, ""},
		{"both_axes", `{"status":"approved","paymentStatus":"paid"}`, http.StatusOK, ""},
		{"empty_body", `{}`, http.StatusBadRequest, "validation"},
		{"illegal_transition", `{"status":"completed"}`, http.StatusConflict, "invalid_state"},
		{"unknown_status", `{"status":"archived"}`, http.StatusBadRequest, "validation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockEnrollmentRepository()
			mockRepo.SeedEnrollment(domain.Enrollment{
				UserID:   1,
				CourseID: 1,
				Status:   domain.EnrollmentPending,
			})
			mux := newEnrollmentMux(mockRepo)

			rec := doJSON(t, mux, http.MethodPut, "/enrollments/1", tt.body)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantKind != "" {
				if kind := decodeErrorKind(t, rec); kind != tt.wantKind {
					t.Errorf("expected error kind %q, got %q", tt.wantKind, kind)
				}
			}
		})
	}
}

func TestEnrollmentHandlerGet(t *testing.T) {
	mockRepo := mocks.NewMockEnrollmentRepository()
	mockRepo.SeedEnrollment(domain.Enrollment{UserID: 1, CourseID: 1, Status: domain.EnrollmentPending})
	mux := newEnrollmentMux(mockRepo)

	rec := doJSON(t, mux, http.MethodGet, "/enrollments/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodGet, "/enrollments/999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodGet, "/enrollments/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}

func TestEnrollmentHandlerList(t *testing.T) {
	mockRepo := mocks.NewMockEnrollmentRepository()
	for i := 0; i < 3; i++ {
		mockRepo.SeedEnrollment(domain.Enrollment{UserID: int64(i + 1), CourseID: 1, Status: domain.EnrollmentPending})
	}
	mockRepo.SeedEnrollment(domain.Enrollment{UserID: 9, CourseID: 2, Status: domain.EnrollmentCancelled})
	mux := newEnrollmentMux(mockRepo)

	rec := doJSON(t, mux, http.MethodGet, "/enrollments?status=pending&course_id=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var body struct {
		Data    []domain.Enrollment `json:"data"`
		Page    int                 `json:"page"`
		PerPage int                 `json:"per_page"`
		Total   int                 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Total != 3 || len(body.Data) != 3 {
		t.Errorf("expected 3 pending enrollments for course 1, got total=%d len=%d", body.Total, len(body.Data))
	}
	if body.Page != 1 || body.PerPage != 20 {
		t.Errorf("expected default pagination 1/20, got %d/%d", body.Page, body.PerPage)
	}
}
