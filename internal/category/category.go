package category

import (
	"context"
	"errors"

	"github.com/woodora/woodora-backend/internal/model"
)

var (
	ErrNotFound     = errors.New("category not found")
	ErrNameExists   = errors.New("category name already exists")
	ErrInvalidInput = errors.New("invalid input")
)

type CreateInput struct {
	Name        string
	Description string
	ImageURL    string
	SortOrder   int
}

type UpdateInput struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	SortOrder   int
	IsActive    bool
}

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	FindAll(ctx context.Context, activeOnly bool) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id string) error
}

type UseCase interface {
	CreateCategory(ctx context.Context, input *CreateInput) (*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]model.Category, error)
	UpdateCategory(ctx context.Context, input *UpdateInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}
