package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

type GalleryHandler struct {
	galleryService ports.GalleryService
}

func NewGalleryHandler(galleryService ports.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

type CreateGalleryItemRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	Caption  string `json:"caption,omitempty"`
}

type UpdateGalleryItemRequest struct {
	Title    *string `json:"title,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
	Caption  *string `json:"caption,omitempty"`
}

type ReorderGalleryRequest struct {
	IDs []int64 `json:"ids"`
}

func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.galleryService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.GalleryItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": items})
}

func (h *GalleryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGalleryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.galleryService.Create(r.Context(), ports.CreateGalleryItemParams{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Caption:  req.Caption,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *GalleryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req UpdateGalleryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.galleryService.Update(r.Context(), id, ports.UpdateGalleryItemParams{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Caption:  req.Caption,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.galleryService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder replaces the display order of the whole gallery in one shot.
// The ids must be exactly the current item set, in the new order.
func (h *GalleryHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderGalleryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.galleryService.Reorder(r.Context(), req.IDs); err != nil {
		writeError(w, err)
		return
	}

	items, err := h.galleryService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": items})
}
