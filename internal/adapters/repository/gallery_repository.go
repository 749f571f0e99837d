package repository

import (
	"context"
	"database/sql"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

type GallerySQLRepository struct {
	db *sql.DB
}

var _ ports.GalleryRepository = (*GallerySQLRepository)(nil)

func NewGallerySQLRepository(db *sql.DB) *GallerySQLRepository {
	return &GallerySQLRepository{db: db}
}

const galleryColumns = "id, title, image_url, COALESCE(caption, ''), sort_order, created_at"

func scanGalleryItem(row rowScanner) (*domain.GalleryItem, error) {
	var g domain.GalleryItem
	err := row.Scan(&g.ID, &g.Title, &g.ImageURL, &g.Caption, &g.SortOrder, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GallerySQLRepository) List(ctx context.Context) ([]domain.GalleryItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+galleryColumns+" FROM gallery_items ORDER BY sort_order ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.GalleryItem
	for rows.Next() {
		item, err := scanGalleryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *GallerySQLRepository) FindByID(ctx context.Context, id int64) (*domain.GalleryItem, error) {
	item, err := scanGalleryItem(r.db.QueryRowContext(ctx,
		"SELECT "+galleryColumns+" FROM gallery_items WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, "gallery item", id)
	}
	return item, nil
}

// Create appends the item at the end of the current order. The
// INSERT..SELECT computes MAX(sort_order)+1 in the same statement so
// two concurrent creates cannot pick the same slot.
func (r *GallerySQLRepository) Create(ctx context.Context, item domain.GalleryItem) (*domain.GalleryItem, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO gallery_items (title, image_url, caption, sort_order)
         SELECT $1, $2, NULLIF($3, ''), COALESCE(MAX(sort_order), 0) + 1 FROM gallery_items
         RETURNING id, sort_order, created_at`,
		item.Title, item.ImageURL, item.Caption,
	).Scan(&item.ID, &item.SortOrder, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GallerySQLRepository) Update(ctx context.Context, item domain.GalleryItem) (*domain.GalleryItem, error) {
	err := r.db.QueryRowContext(ctx,
		`UPDATE gallery_items SET title = $2, image_url = $3, caption = NULLIF($4, '')
         WHERE id = $1
         RETURNING sort_order, created_at`,
		item.ID, item.Title, item.ImageURL, item.Caption,
	).Scan(&item.SortOrder, &item.CreatedAt)
	if err != nil {
		return nil, notFound(err, "gallery item", item.ID)
	}
	return &item, nil
}

// Delete removes the item and closes the gap it leaves, keeping
// sort_order dense 1..N.
func (r *GallerySQLRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var removed int
	err = tx.QueryRowContext(ctx,
		"DELETE FROM gallery_items WHERE id = $1 RETURNING sort_order", id,
	).Scan(&removed)
	if err != nil {
		return notFound(err, "gallery item", id)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE gallery_items SET sort_order = sort_order - 1 WHERE sort_order > $1", removed)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Reorder rewrites sort_order to the 1-based position of each id. The
// FOR UPDATE scan locks every row first, which both serializes
// concurrent reorders and pins the set we compare against. An id set
// that does not exactly match the stored items aborts untouched.
func (r *GallerySQLRepository) Reorder(ctx context.Context, ids []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, "SELECT id FROM gallery_items ORDER BY id FOR UPDATE")
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		existing[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(ids) != len(existing) {
		return &domain.ValidationError{Field: "ids", Reason: "must contain every gallery item exactly once"}
	}
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			return &domain.ValidationError{Field: "ids", Reason: "unknown gallery item id"}
		}
	}

	for position, id := range ids {
		if _, err := tx.ExecContext(ctx,
			"UPDATE gallery_items SET sort_order = $2 WHERE id = $1", id, position+1); err != nil {
			return err
		}
	}

	return tx.Commit()
}
