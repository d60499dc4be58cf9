package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/internal/settings"
	"github.com/woodora/woodora-backend/pkg/cache"
	"github.com/woodora/woodora-backend/pkg/logger"
)

const (
	settingsCacheKey = "settings:site"
	settingsCacheTTL = 5 * time.Minute
)

type settingsUseCase struct {
	repo   settings.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

// NewSettingsUseCase builds the cached settings provider. cache may be nil.
func NewSettingsUseCase(repo settings.Repository, c *cache.RedisClient, log logger.ZapLogger) settings.UseCase {
	return &settingsUseCase{repo: repo, cache: c, logger: log}
}

func (uc *settingsUseCase) Get(ctx context.Context) (*model.SiteSettings, error) {
	if uc.cache != nil {
		if val, err := uc.cache.Client.Get(ctx, settingsCacheKey).Result(); err == nil {
			var s model.SiteSettings
			if err := json.Unmarshal([]byte(val), &s); err == nil {
				return &s, nil
			}
		}
	}

	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		// no row yet: serve defaults until the admin saves once
		s = model.DefaultSiteSettings()
	}

	if uc.cache != nil {
		if data, err := json.Marshal(s); err == nil {
			uc.cache.Client.Set(ctx, settingsCacheKey, data, settingsCacheTTL)
		}
	}
	return s, nil
}

func (uc *settingsUseCase) Update(ctx context.Context, s *model.SiteSettings) (*model.SiteSettings, error) {
	if s.FreeShippingThreshold < 0 || s.ShippingFee < 0 || s.TaxPercent < 0 {
		return nil, settings.ErrInvalidInput
	}
	if s.AdvancePercent <= 0 || s.AdvancePercent > 100 {
		return nil, settings.ErrInvalidInput
	}

	s.ID = model.SiteSettingsID
	s.UpdatedAt = time.Now()
	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Client.Del(ctx, settingsCacheKey).Err(); err != nil {
			uc.logger.Warn("failed to invalidate settings cache", zap.Error(err))
		}
	}
	return s, nil
}

func (uc *settingsUseCase) ListImages(ctx context.Context) ([]model.SiteImage, error) {
	return uc.repo.ListImages(ctx)
}

func (uc *settingsUseCase) SaveImage(ctx context.Context, key, url, altText string) (*model.SiteImage, error) {
	if key == "" || url == "" {
		return nil, settings.ErrInvalidInput
	}
	now := time.Now()
	img := &model.SiteImage{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Key:       key,
		URL:       url,
		AltText:   altText,
	}
	if err := uc.repo.UpsertImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (uc *settingsUseCase) DeleteImage(ctx context.Context, id string) error {
	return uc.repo.DeleteImage(ctx, id)
}

func (uc *settingsUseCase) ListNavLinks(ctx context.Context, activeOnly bool) ([]model.NavLink, error) {
	return uc.repo.ListNavLinks(ctx, activeOnly)
}

func (uc *settingsUseCase) SaveNavLink(ctx context.Context, link *model.NavLink) (*model.NavLink, error) {
	if link.Label == "" || link.URL == "" {
		return nil, settings.ErrInvalidInput
	}
	now := time.Now()
	if link.ID == "" {
		link.ID = uuid.New().String()
		link.CreatedAt = now
		link.UpdatedAt = now
		if err := uc.repo.CreateNavLink(ctx, link); err != nil {
			return nil, err
		}
		return link, nil
	}
	link.UpdatedAt = now
	if err := uc.repo.UpdateNavLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (uc *settingsUseCase) DeleteNavLink(ctx context.Context, id string) error {
	return uc.repo.DeleteNavLink(ctx, id)
}
