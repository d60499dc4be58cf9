package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/woodora/woodora-backend/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.BlogPost) error {
	query := `
        INSERT INTO blog_posts (id, slug, title, content, cover_image_url, published, created_at, updated_at)
        VALUES (:id, :slug, :title, :content, :cover_image_url, :published, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.DB.GetContext(ctx, &post, `SELECT * FROM blog_posts WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.DB.GetContext(ctx, &post, `SELECT * FROM blog_posts WHERE slug = $1 LIMIT 1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *PGRepository) FindAll(ctx context.Context, publishedOnly bool, page, pageSize int) ([]model.BlogPost, int, error) {
	var posts []model.BlogPost
	var count int

	where := ""
	if publishedOnly {
		where = " WHERE published = true"
	}

	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM blog_posts"+where); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM blog_posts" + where + " ORDER BY created_at DESC"
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, offset)
	}

	if err := r.DB.SelectContext(ctx, &posts, query); err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.BlogPost) error {
	query := `
        UPDATE blog_posts
        SET slug = :slug, title = :title, content = :content,
            cover_image_url = :cover_image_url, published = :published, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	return err
}
