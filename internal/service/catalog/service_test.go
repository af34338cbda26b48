package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	catalogstorage "github.com/sebschult/FeWo-BookingService/internal/infra/storage/catalog"
	"github.com/sebschult/FeWo-BookingService/internal/service/catalog/models"
)

type fakeCatalogRepo struct {
	property *domain.Property
	seasons  []domain.Season
	bands    []domain.TouristTaxBand
}

func (r *fakeCatalogRepo) GetProperty(_ context.Context, id int64) (*domain.Property, error) {
	if r.property == nil || r.property.ID != id {
		return nil, catalogstorage.ErrPropertyNotFound
	}
	return r.property, nil
}

func (r *fakeCatalogRepo) UpdateProperty(_ context.Context, id int64, property *domain.Property) (*domain.Property, error) {
	if r.property == nil || r.property.ID != id {
		return nil, catalogstorage.ErrPropertyNotFound
	}
	property.ID = id
	property.Slug = r.property.Slug
	r.property = property
	return property, nil
}

func (r *fakeCatalogRepo) ListSeasons(_ context.Context, _ int64) ([]domain.Season, error) {
	return r.seasons, nil
}

func (r *fakeCatalogRepo) ReplaceSeasons(_ context.Context, _ int64, seasons []domain.Season) error {
	r.seasons = seasons
	return nil
}

func (r *fakeCatalogRepo) ListTaxBands(_ context.Context, _ int64) ([]domain.TouristTaxBand, error) {
	return r.bands, nil
}

func (r *fakeCatalogRepo) ReplaceTaxBands(_ context.Context, _ int64, bands []domain.TouristTaxBand) error {
	r.bands = bands
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validUpdateRequest() *models.UpdatePropertyConfigRequest {
	minNights := 3
	return &models.UpdatePropertyConfigRequest{
		Name:               "Haus Seeblick",
		DefaultNightlyRate: 110,
		CleaningFee:        50,
		MaxGuests:          4,
		CheckInHour:        15,
		CheckOutHour:       10,
		Seasons: []models.SeasonRequest{
			{
				Name:        "Hauptsaison",
				StartDate:   "2025-07-01",
				EndDate:     "2025-09-01",
				NightlyRate: 140,
				MinNights:   &minNights,
			},
		},
		TaxBands: []models.TaxBandRequest{
			{
				Zone:  "kurzone-1",
				Label: "Kurtaxe",
				Rate:  2.5,
				Ranges: []models.TaxRangeRequest{
					{StartMD: "05-01", EndMD: "10-01"},
				},
			},
		},
	}
}

func newTestService() (*Service, *fakeCatalogRepo) {
	repo := &fakeCatalogRepo{
		property: &domain.Property{ID: 1, Name: "Alt", Slug: "haus-seeblick", Currency: "EUR", MaxGuests: 2},
	}
	return NewService(repo, fakeTxManager{}, nopLogger{}), repo
}

func TestGetPropertyConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("returns full config", func(t *testing.T) {
		service, repo := newTestService()
		repo.seasons = []domain.Season{{ID: 10, Name: "Hauptsaison", StartDate: "2025-07-01", EndDate: "2025-09-01", NightlyRate: 140}}

		config, err := service.GetPropertyConfig(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "haus-seeblick", config.Slug)
		require.Len(t, config.Seasons, 1)
		assert.Equal(t, "2025-07-01", config.Seasons[0].StartDate)
	})

	t.Run("unknown property", func(t *testing.T) {
		service, _ := newTestService()
		_, err := service.GetPropertyConfig(ctx, 99)
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})
}

func TestUpdatePropertyConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces config atomically", func(t *testing.T) {
		service, repo := newTestService()

		config, err := service.UpdatePropertyConfig(ctx, 1, validUpdateRequest())
		require.NoError(t, err)

		assert.Equal(t, "Haus Seeblick", config.Name)
		assert.Equal(t, 4, config.MaxGuests)
		assert.Equal(t, domain.DefaultCurrency, config.Currency) // пустая валюта запроса
		require.Len(t, repo.seasons, 1)
		require.Len(t, repo.bands, 1)
		assert.Equal(t, "kurzone-1", repo.bands[0].Zone)
	})

	t.Run("unknown property", func(t *testing.T) {
		service, _ := newTestService()
		_, err := service.UpdatePropertyConfig(ctx, 99, validUpdateRequest())
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*models.UpdatePropertyConfigRequest)
		}{
			{
				name:   "missing name",
				mutate: func(r *models.UpdatePropertyConfigRequest) { r.Name = "" },
			},
			{
				name:   "negative nightly rate",
				mutate: func(r *models.UpdatePropertyConfigRequest) { r.DefaultNightlyRate = -1 },
			},
			{
				name:   "zero max guests",
				mutate: func(r *models.UpdatePropertyConfigRequest) { r.MaxGuests = 0 },
			},
			{
				name:   "check-in hour out of range",
				mutate: func(r *models.UpdatePropertyConfigRequest) { r.CheckInHour = 24 },
			},
			{
				name: "season end before start",
				mutate: func(r *models.UpdatePropertyConfigRequest) {
					r.Seasons[0].StartDate, r.Seasons[0].EndDate = r.Seasons[0].EndDate, r.Seasons[0].StartDate
				},
			},
			{
				name: "season with bad date",
				mutate: func(r *models.UpdatePropertyConfigRequest) {
					r.Seasons[0].StartDate = "01.07.2025"
				},
			},
			{
				name: "zero min nights",
				mutate: func(r *models.UpdatePropertyConfigRequest) {
					zero := 0
					r.Seasons[0].MinNights = &zero
				},
			},
			{
				name: "negative tax rate",
				mutate: func(r *models.UpdatePropertyConfigRequest) {
					r.TaxBands[0].Rate = -0.5
				},
			},
			{
				name: "malformed tax range",
				mutate: func(r *models.UpdatePropertyConfigRequest) {
					r.TaxBands[0].Ranges[0].EndMD = "13-01"
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				service, repo := newTestService()
				req := validUpdateRequest()
				tt.mutate(req)

				_, err := service.UpdatePropertyConfig(ctx, 1, req)
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Empty(t, repo.seasons, "invalid request must not touch storage")
			})
		}
	})
}
