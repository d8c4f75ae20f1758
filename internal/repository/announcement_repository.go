package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
)

// AnnouncementRepo provides CRUD for staff announcements.
type AnnouncementRepo struct {
	db *sql.DB
}

func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo { return &AnnouncementRepo{db: db} }

const announcementCols = "id, title, body, image_url, author_id, published, created_at, updated_at"

func (r *AnnouncementRepo) Create(ctx context.Context, a *model.Announcement) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO announcements (id, title, body, image_url, author_id, published)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		id, a.Title, a.Body, a.ImageURL, a.AuthorID, a.Published)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *AnnouncementRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Announcement, error) {
	var a model.Announcement
	err := r.db.QueryRowContext(ctx,
		"SELECT "+announcementCols+" FROM announcements WHERE id=$1 LIMIT 1", id).
		Scan(&a.ID, &a.Title, &a.Body, &a.ImageURL, &a.AuthorID, &a.Published, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// List returns announcements, optionally restricted to published rows.
func (r *AnnouncementRepo) List(ctx context.Context, publishedOnly bool) ([]model.Announcement, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+announcementCols+" FROM announcements WHERE ($1 = false OR published = true) ORDER BY created_at DESC",
		publishedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Announcement{}
	for rows.Next() {
		var a model.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.ImageURL, &a.AuthorID, &a.Published, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnnouncementRepo) Update(ctx context.Context, id uuid.UUID, a *model.Announcement) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE announcements SET title=$2, body=$3, image_url=$4, published=$5, updated_at=now()
		 WHERE id=$1`,
		id, a.Title, a.Body, a.ImageURL, a.Published)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *AnnouncementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM announcements WHERE id=$1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
