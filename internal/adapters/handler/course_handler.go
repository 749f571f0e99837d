package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

type CourseHandler struct {
	courseService ports.CourseService
}

func NewCourseHandler(courseService ports.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

type CourseRequest struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Level      string `json:"level"`
	Capacity   int    `json:"capacity"`
	PriceCents int64  `json:"priceCents"`
	Currency   string `json:"currency"`
	Active     *bool  `json:"active,omitempty"`
}

func (req *CourseRequest) params() ports.CourseParams {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	currency := req.Currency
	if currency == "" {
		currency = "KRW"
	}
	return ports.CourseParams{
		Title:      req.Title,
		Slug:       req.Slug,
		Level:      domain.CourseLevel(req.Level),
		Capacity:   req.Capacity,
		PriceCents: req.PriceCents,
		Currency:   currency,
		Active:     active,
	}
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	course, err := h.courseService.Create(r.Context(), req.params())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, course)
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	course, err := h.courseService.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req CourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	course, err := h.courseService.Update(r.Context(), id, req.params())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.courseService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := ports.CourseFilter{
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "per_page"),
	}
	if raw := r.URL.Query().Get("level"); raw != "" {
		level := domain.CourseLevel(raw)
		filter.Level = &level
	}
	if raw := r.URL.Query().Get("active"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}

	courses, total, err := h.courseService.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if courses == nil {
		courses = []domain.Course{}
	}

	page, perPage := filter.Page, filter.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	writeJSON(w, http.StatusOK, listResponse{Data: courses, Page: page, PerPage: perPage, Total: total})
}
