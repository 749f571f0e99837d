package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/hangang-korean/admin-service/internal/adapters/handler"
	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/services"
	"github.com/hangang-korean/admin-service/test/mocks"
)

func newGalleryMux(repo *mocks.MockGalleryRepository) *http.ServeMux {
	h := handler.NewGalleryHandler(services.NewGalleryService(repo))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /gallery", h.List)
	mux.HandleFunc("POST /gallery", h.Create)
	mux.HandleFunc("PUT /gallery/reorder", h.Reorder)
	mux.HandleFunc("PATCH /gallery/{id}", h.Update)
	mux.HandleFunc("DELETE /gallery/{id}", h.Delete)
	return mux
}

func decodeGalleryData(t *testing.T, body []byte) []domain.GalleryItem {
	t.Helper()

	var envelope struct {
		Data []domain.GalleryItem `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return envelope.Data
}

func TestGalleryHandlerCreateAndList(t *testing.T) {
	mockRepo := mocks.NewMockGalleryRepository()
	mux := newGalleryMux(mockRepo)

	rec := doJSON(t, mux, http.MethodPost, "/gallery", `{"title":"Open day","imageUrl":"https://img.example.com/1.jpg"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, http.MethodPost, "/gallery", `{"title":"","imageUrl":"https://img.example.com/2.jpg"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing title, got %d", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodGet, "/gallery", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	items := decodeGalleryData(t, rec.Body.Bytes())
	if len(items) != 1 || items[0].SortOrder != 1 {
		t.Errorf("unexpected gallery contents: %+v", items)
	}
}

func TestGalleryHandlerReorder(t *testing.T) {
	mockRepo := mocks.NewMockGalleryRepository()
	var ids []int64
	for i := 1; i <= 3; i++ {
		item := mockRepo.SeedItem(domain.GalleryItem{
			Title:    fmt.Sprintf("Item %d", i),
			ImageURL: fmt.Sprintf("https://img.example.com/%d.jpg", i),
		})
		ids = append(ids, item.ID)
	}
	mux := newGalleryMux(mockRepo)

	body := fmt.Sprintf(`{"ids":[%d,%d,%d]}`, ids[2], ids[0], ids[1])
	rec := doJSON(t, mux, http.MethodPut, "/gallery/reorder", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	items := decodeGalleryData(t, rec.Body.Bytes())
	want := []int64{ids[2], ids[0], ids[1]}
	for i, item := range items {
		if item.ID != want[i] {
			t.Errorf("position %d: expected item %d, got %d", i+1, want[i], item.ID)
		}
		if item.SortOrder != i+1 {
			t.Errorf("item %d: expected sort_order %d, got %d", item.ID, i+1, item.SortOrder)
		}
	}
}

func TestGalleryHandlerReorderRejectsMismatch(t *testing.T) {
	mockRepo := mocks.NewMockGalleryRepository()
	for i := 1; i <= 3; i++ {
		mockRepo.SeedItem(domain.GalleryItem{
			Title:    fmt.Sprintf("Item %d", i),
			ImageURL: fmt.Sprintf("https://img.example.com/%d.jpg", i),
		})
	}
	mux := newGalleryMux(mockRepo)

	tests := []struct {
		name string
		body string
	}{
		{"subset", `{"ids":[1,2]}`},
		{"unknown_id", `{"ids":[1,2,999]}`},
		{"duplicates", `{"ids":[1,1,2]}`},
		{"empty", `{"ids":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, mux, http.MethodPut, "/gallery/reorder", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
			}
			if kind := decodeErrorKind(t, rec); kind != "validation" {
				t.Errorf("expected kind validation, got %q", kind)
			}
		})
	}
}

func TestGalleryHandlerDelete(t *testing.T) {
	mockRepo := mocks.NewMockGalleryRepository()
	item := mockRepo.SeedItem(domain.GalleryItem{Title: "A", ImageURL: "https://img.example.com/a.jpg"})
	mux := newGalleryMux(mockRepo)

	rec := doJSON(t, mux, http.MethodDelete, fmt.Sprintf("/gallery/%d", item.ID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodDelete, fmt.Sprintf("/gallery/%d", item.ID), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}
