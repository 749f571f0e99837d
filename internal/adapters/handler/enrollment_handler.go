package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

var enrollmentDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "admin_enrollment_decisions_total",
		Help: "Enrollment intake and lifecycle decisions by outcome.",
	},
	[]string{"outcome"},
)

type EnrollmentHandler struct {
	enrollmentService ports.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

type CreateEnrollmentRequest struct {
	UserEmail  string `json:"userEmail"`
	UserName   string `json:"userName,omitempty"`
	CourseID   int64  `json:"courseId"`
	ScheduleID *int64 `json:"scheduleId,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Source     string `json:"source,omitempty"`
}

type UpdateEnrollmentRequest struct {
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`
}

func (h *EnrollmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEnrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	enrollment, err := h.enrollmentService.Create(r.Context(), ports.CreateEnrollmentParams{
		Email:      req.UserEmail,
		Name:       req.UserName,
		CourseID:   req.CourseID,
		ScheduleID: req.ScheduleID,
		Notes:      req.Notes,
		Source:     domain.EnrollmentSource(req.Source),
	})
	if err != nil {
		var capacityErr *domain.CapacityExceededError
		if errors.As(err, &capacityErr) {
			enrollmentDecisions.WithLabelValues("capacity_rejected").Inc()
		}
		writeError(w, err)
		return
	}

	enrollmentDecisions.WithLabelValues("created").Inc()
	writeJSON(w, http.StatusCreated, enrollment)
}

func (h *EnrollmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	enrollment, err := h.enrollmentService.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, enrollment)
}

// Update handles PUT with a partial body: either status, paymentStatus
// or both. The status change is applied first; if it is rejected the
// payment status stays untouched.
func (h *EnrollmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateEnrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Status == nil && req.PaymentStatus == nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "status or paymentStatus is required"})
		return
	}

	var enrollment *domain.Enrollment
	var err error

	if req.Status != nil {
		enrollment, err = h.enrollmentService.UpdateStatus(r.Context(), id, domain.EnrollmentStatus(*req.Status))
		if err != nil {
			writeError(w, err)
			return
		}
	}
	if req.PaymentStatus != nil {
		enrollment, err = h.enrollmentService.UpdatePaymentStatus(r.Context(), id, domain.PaymentStatus(*req.PaymentStatus))
		if err != nil {
			writeError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	enrollment, err := h.enrollmentService.Approve(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	enrollmentDecisions.WithLabelValues("approved").Inc()
	writeJSON(w, http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	enrollment, err := h.enrollmentService.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	enrollmentDecisions.WithLabelValues("cancelled").Inc()
	writeJSON(w, http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := ports.EnrollmentFilter{
		CourseID:   queryInt64(r, "course_id"),
		ScheduleID: queryInt64(r, "schedule_id"),
		Page:       queryInt(r, "page"),
		PerPage:    queryInt(r, "per_page"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.EnrollmentStatus(raw)
		filter.Status = &status
	}

	enrollments, total, err := h.enrollmentService.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if enrollments == nil {
		enrollments = []domain.Enrollment{}
	}

	page, perPage := filter.Page, filter.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	writeJSON(w, http.StatusOK, listResponse{Data: enrollments, Page: page, PerPage: perPage, Total: total})
}
