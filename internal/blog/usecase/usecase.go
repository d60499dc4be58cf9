package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/woodora/woodora-backend/internal/blog"
	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type blogUseCase struct {
	repo   blog.Repository
	logger logger.ZapLogger
}

func NewBlogUseCase(repo blog.Repository, log logger.ZapLogger) blog.UseCase {
	return &blogUseCase{repo: repo, logger: log}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func (uc *blogUseCase) CreatePost(ctx context.Context, input *blog.CreateInput) (*model.BlogPost, error) {
	if input.Title == "" || input.Content == "" {
		return nil, blog.ErrInvalidInput
	}

	slug := input.Slug
	if slug == "" {
		slug = slugify(input.Title)
	}
	existing, err := uc.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, blog.ErrSlugExists
	}

	now := time.Now()
	post := &model.BlogPost{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Slug:      slug,
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
	}
	if input.CoverImageURL != "" {
		post.CoverImageURL = &input.CoverImageURL
	}

	if err := uc.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (uc *blogUseCase) GetPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	post, err := uc.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, blog.ErrNotFound
	}
	return post, nil
}

func (uc *blogUseCase) ListPosts(ctx context.Context, publishedOnly bool, page, pageSize int) ([]model.BlogPost, int, error) {
	return uc.repo.FindAll(ctx, publishedOnly, page, pageSize)
}

func (uc *blogUseCase) UpdatePost(ctx context.Context, input *blog.UpdateInput) (*model.BlogPost, error) {
	post, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, blog.ErrNotFound
	}

	slug := input.Slug
	if slug == "" {
		slug = slugify(input.Title)
	}
	if slug != post.Slug {
		existing, err := uc.repo.FindBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != post.ID {
			return nil, blog.ErrSlugExists
		}
	}

	post.Slug = slug
	post.Title = input.Title
	post.Content = input.Content
	post.Published = input.Published
	if input.CoverImageURL != "" {
		post.CoverImageURL = &input.CoverImageURL
	} else {
		post.CoverImageURL = nil
	}
	post.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (uc *blogUseCase) DeletePost(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
