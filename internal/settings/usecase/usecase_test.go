package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/internal/settings"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type fakeSettingsRepo struct {
	settings *model.SiteSettings
	images   map[string]*model.SiteImage
	links    map[string]*model.NavLink
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		images: map[string]*model.SiteImage{},
		links:  map[string]*model.NavLink{},
	}
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*model.SiteSettings, error) {
	return r.settings, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, s *model.SiteSettings) error {
	r.settings = s
	return nil
}

func (r *fakeSettingsRepo) ListImages(_ context.Context) ([]model.SiteImage, error) {
	out := []model.SiteImage{}
	for _, img := range r.images {
		out = append(out, *img)
	}
	return out, nil
}

func (r *fakeSettingsRepo) UpsertImage(_ context.Context, img *model.SiteImage) error {
	r.images[img.Key] = img
	return nil
}

func (r *fakeSettingsRepo) DeleteImage(_ context.Context, id string) error {
	for key, img := range r.images {
		if img.ID == id {
			delete(r.images, key)
		}
	}
	return nil
}

func (r *fakeSettingsRepo) ListNavLinks(_ context.Context, activeOnly bool) ([]model.NavLink, error) {
	out := []model.NavLink{}
	for _, l := range r.links {
		if !activeOnly || l.IsActive {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeSettingsRepo) CreateNavLink(_ context.Context, link *model.NavLink) error {
	r.links[link.ID] = link
	return nil
}

func (r *fakeSettingsRepo) UpdateNavLink(_ context.Context, link *model.NavLink) error {
	r.links[link.ID] = link
	return nil
}

func (r *fakeSettingsRepo) DeleteNavLink(_ context.Context, id string) error {
	delete(r.links, id)
	return nil
}

func newUseCase(repo settings.Repository) settings.UseCase {
	log := logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "console"})
	return NewSettingsUseCase(repo, nil, log)
}

func TestGetServesDefaultsWhenUnset(t *testing.T) {
	uc := newUseCase(newFakeSettingsRepo())

	s, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, s.StoreOpen)
	assert.Equal(t, 2999.0, s.FreeShippingThreshold)
	assert.Equal(t, 99.0, s.ShippingFee)
	assert.Equal(t, 100.0, s.AdvancePercent)
}

func TestUpdatePersistsAndValidates(t *testing.T) {
	repo := newFakeSettingsRepo()
	uc := newUseCase(repo)
	ctx := context.Background()

	s := model.DefaultSiteSettings()
	s.FreeShippingThreshold = 4999
	s.StoreOpen = false
	updated, err := uc.Update(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, model.SiteSettingsID, updated.ID)

	got, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4999.0, got.FreeShippingThreshold)
	assert.False(t, got.StoreOpen)

	bad := model.DefaultSiteSettings()
	bad.ShippingFee = -1
	_, err = uc.Update(ctx, bad)
	assert.ErrorIs(t, err, settings.ErrInvalidInput)

	bad = model.DefaultSiteSettings()
	bad.AdvancePercent = 0
	_, err = uc.Update(ctx, bad)
	assert.ErrorIs(t, err, settings.ErrInvalidInput)

	bad = model.DefaultSiteSettings()
	bad.AdvancePercent = 150
	_, err = uc.Update(ctx, bad)
	assert.ErrorIs(t, err, settings.ErrInvalidInput)
}

func TestSaveImageUpsertsByKey(t *testing.T) {
	repo := newFakeSettingsRepo()
	uc := newUseCase(repo)
	ctx := context.Background()

	_, err := uc.SaveImage(ctx, "hero", "https://cdn.example/hero-1.jpg", "workshop bench")
	require.NoError(t, err)
	_, err = uc.SaveImage(ctx, "hero", "https://cdn.example/hero-2.jpg", "workshop bench")
	require.NoError(t, err)

	images, err := uc.ListImages(ctx)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "https://cdn.example/hero-2.jpg", images[0].URL)

	_, err = uc.SaveImage(ctx, "", "https://cdn.example/x.jpg", "")
	assert.ErrorIs(t, err, settings.ErrInvalidInput)
}

func TestSaveNavLinkCreateAndUpdate(t *testing.T) {
	repo := newFakeSettingsRepo()
	uc := newUseCase(repo)
	ctx := context.Background()

	link, err := uc.SaveNavLink(ctx, &model.NavLink{Label: "Shop", URL: "/products", SortOrder: 1, IsActive: true})
	require.NoError(t, err)
	assert.NotEmpty(t, link.ID)

	link.Label = "Catalogue"
	_, err = uc.SaveNavLink(ctx, link)
	require.NoError(t, err)

	links, err := uc.ListNavLinks(ctx, true)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "Catalogue", links[0].Label)

	_, err = uc.SaveNavLink(ctx, &model.NavLink{Label: "", URL: "/x"})
	assert.ErrorIs(t, err, settings.ErrInvalidInput)
}
