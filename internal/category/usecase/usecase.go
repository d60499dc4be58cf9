package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/woodora/woodora-backend/internal/category"
	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{repo: repo, logger: log}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *category.CreateInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, category.ErrInvalidInput
	}

	// products reference categories by name, so names must be unique
	existing, err := uc.repo.FindByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, category.ErrNameExists
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      input.Name,
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if input.Description != "" {
		cat.Description = &input.Description
	}
	if input.ImageURL != "" {
		cat.ImageURL = &input.ImageURL
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, category.ErrNotFound
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, activeOnly bool) ([]model.Category, error) {
	return uc.repo.FindAll(ctx, activeOnly)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *category.UpdateInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, category.ErrNotFound
	}

	if input.Name != cat.Name {
		existing, err := uc.repo.FindByName(ctx, input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != cat.ID {
			return nil, category.ErrNameExists
		}
	}

	cat.Name = input.Name
	cat.SortOrder = input.SortOrder
	cat.IsActive = input.IsActive
	if input.Description != "" {
		cat.Description = &input.Description
	} else {
		cat.Description = nil
	}
	if input.ImageURL != "" {
		cat.ImageURL = &input.ImageURL
	} else {
		cat.ImageURL = nil
	}
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
