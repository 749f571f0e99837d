package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

// MockGalleryRepository implements ports.GalleryRepository in memory.
// It keeps sort_order dense (1..N) through create, delete and reorder,
// matching the SQL implementation.
type MockGalleryRepository struct {
	mu     sync.Mutex
	items  map[int64]*domain.GalleryItem
	nextID int64

	ReorderCalls [][]int64

	ListError    error
	CreateError  error
	UpdateError  error
	DeleteError  error
	ReorderError error
}

var _ ports.GalleryRepository = (*MockGalleryRepository)(nil)

func NewMockGalleryRepository() *MockGalleryRepository {
	return &MockGalleryRepository{items: make(map[int64]*domain.GalleryItem)}
}

// SeedItem appends an item at the end of the current order.
func (m *MockGalleryRepository) SeedItem(item domain.GalleryItem) *domain.GalleryItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	item.ID = m.nextID
	item.SortOrder = len(m.items) + 1
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	m.items[item.ID] = &item
	return &item
}

func (m *MockGalleryRepository) List(ctx context.Context) ([]domain.GalleryItem, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]domain.GalleryItem, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })
	return items, nil
}

func (m *MockGalleryRepository) Create(ctx context.Context, item domain.GalleryItem) (*domain.GalleryItem, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	item.ID = m.nextID
	item.SortOrder = len(m.items) + 1
	item.CreatedAt = time.Now()
	m.items[item.ID] = &item
	copied := item
	return &copied, nil
}

func (m *MockGalleryRepository) Update(ctx context.Context, item domain.GalleryItem) (*domain.GalleryItem, error) {
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.items[item.ID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "gallery item", ID: item.ID}
	}
	item.SortOrder = existing.SortOrder
	item.CreatedAt = existing.CreatedAt
	m.items[item.ID] = &item
	copied := item
	return &copied, nil
}

func (m *MockGalleryRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed, ok := m.items[id]
	if !ok {
		return &domain.NotFoundError{Resource: "gallery item", ID: id}
	}
	delete(m.items, id)

	// Compact the remaining order.
	for _, item := range m.items {
		if item.SortOrder > removed.SortOrder {
			item.SortOrder--
		}
	}
	return nil
}

func (m *MockGalleryRepository) Reorder(ctx context.Context, ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReorderCalls = append(m.ReorderCalls, ids)

	if m.ReorderError != nil {
		return m.ReorderError
	}

	if len(ids) != len(m.items) {
		return &domain.ValidationError{Field: "ids", Reason: "must contain every gallery item exactly once"}
	}
	for _, id := range ids {
		if _, ok := m.items[id]; !ok {
			return &domain.ValidationError{Field: "ids", Reason: "must contain every gallery item exactly once"}
		}
	}

	for position, id := range ids {
		m.items[id].SortOrder = position + 1
	}
	return nil
}

func (m *MockGalleryRepository) FindByID(ctx context.Context, id int64) (*domain.GalleryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "gallery item", ID: id}
	}
	copied := *item
	return &copied, nil
}
