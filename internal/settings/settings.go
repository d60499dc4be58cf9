package settings

import (
	"context"
	"errors"

	"github.com/woodora/woodora-backend/internal/model"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Repository interface {
	Get(ctx context.Context) (*model.SiteSettings, error)
	Upsert(ctx context.Context, s *model.SiteSettings) error

	ListImages(ctx context.Context) ([]model.SiteImage, error)
	UpsertImage(ctx context.Context, img *model.SiteImage) error
	DeleteImage(ctx context.Context, id string) error

	ListNavLinks(ctx context.Context, activeOnly bool) ([]model.NavLink, error)
	CreateNavLink(ctx context.Context, link *model.NavLink) error
	UpdateNavLink(ctx context.Context, link *model.NavLink) error
	DeleteNavLink(ctx context.Context, id string) error
}

// UseCase is the single read path for the settings singleton. Get serves
// from cache; Update writes through and drops the cached copy.
type UseCase interface {
	Get(ctx context.Context) (*model.SiteSettings, error)
	Update(ctx context.Context, s *model.SiteSettings) (*model.SiteSettings, error)

	ListImages(ctx context.Context) ([]model.SiteImage, error)
	SaveImage(ctx context.Context, key, url, altText string) (*model.SiteImage, error)
	DeleteImage(ctx context.Context, id string) error

	ListNavLinks(ctx context.Context, activeOnly bool) ([]model.NavLink, error)
	SaveNavLink(ctx context.Context, link *model.NavLink) (*model.NavLink, error)
	DeleteNavLink(ctx context.Context, id string) error
}
