package services

import (
	"context"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

type GalleryService struct {
	galleryRepo ports.GalleryRepository
}

var _ ports.GalleryService = (*GalleryService)(nil)

func NewGalleryService(galleryRepo ports.GalleryRepository) *GalleryService {
	return &GalleryService{galleryRepo: galleryRepo}
}

func (s *GalleryService) List(ctx context.Context) ([]domain.GalleryItem, error) {
	return s.galleryRepo.List(ctx)
}

func (s *GalleryService) Create(ctx context.Context, params ports.CreateGalleryItemParams) (*domain.GalleryItem, error) {
	if params.Title == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "required"}
	}
	if params.ImageURL == "" {
		return nil, &domain.ValidationError{Field: "image_url", Reason: "required"}
	}
	return s.galleryRepo.Create(ctx, domain.GalleryItem{
		Title:    params.Title,
		ImageURL: params.ImageURL,
		Caption:  params.Caption,
	})
}

func (s *GalleryService) Update(ctx context.Context, id int64, params ports.UpdateGalleryItemParams) (*domain.GalleryItem, error) {
	item, err := s.galleryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		if *params.Title == "" {
			return nil, &domain.ValidationError{Field: "title", Reason: "required"}
		}
		item.Title = *params.Title
	}
	if params.ImageURL != nil {
		if *params.ImageURL == "" {
			return nil, &domain.ValidationError{Field: "image_url", Reason: "required"}
		}
		item.ImageURL = *params.ImageURL
	}
	if params.Caption != nil {
		item.Caption = *params.Caption
	}

	return s.galleryRepo.Update(ctx, *item)
}

func (s *GalleryService) Delete(ctx context.Context, id int64) error {
	return s.galleryRepo.Delete(ctx, id)
}

// Reorder rewrites the display order to match ids. The repository
// rejects the call unless ids is an exact permutation of the stored
// item set, so a stale client cannot shrink or corrupt the order.
func (s *GalleryService) Reorder(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return &domain.ValidationError{Field: "ids", Reason: "required"}
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return &domain.ValidationError{Field: "ids", Reason: "duplicate id"}
		}
		seen[id] = struct{}{}
	}
	return s.galleryRepo.Reorder(ctx, ids)
}
