package blog

import (
	"context"
	"errors"

	"github.com/woodora/woodora-backend/internal/model"
)

var (
	ErrNotFound     = errors.New("blog post not found")
	ErrSlugExists   = errors.New("slug already exists")
	ErrInvalidInput = errors.New("invalid input")
)

type CreateInput struct {
	Slug          string
	Title         string
	Content       string
	CoverImageURL string
	Published     bool
}

type UpdateInput struct {
	ID            string
	Slug          string
	Title         string
	Content       string
	CoverImageURL string
	Published     bool
}

type Repository interface {
	Create(ctx context.Context, post *model.BlogPost) error
	FindByID(ctx context.Context, id string) (*model.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	FindAll(ctx context.Context, publishedOnly bool, page, pageSize int) ([]model.BlogPost, int, error)
	Update(ctx context.Context, post *model.BlogPost) error
	Delete(ctx context.Context, id string) error
}

type UseCase interface {
	CreatePost(ctx context.Context, input *CreateInput) (*model.BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	ListPosts(ctx context.Context, publishedOnly bool, page, pageSize int) ([]model.BlogPost, int, error)
	UpdatePost(ctx context.Context, input *UpdateInput) (*model.BlogPost, error)
	DeletePost(ctx context.Context, id string) error
}
