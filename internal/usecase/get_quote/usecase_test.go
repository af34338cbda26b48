package get_quote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	catalogstorage "github.com/sebschult/FeWo-BookingService/internal/infra/storage/catalog"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
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

func (r *fakeCatalogRepo) ListSeasons(_ context.Context, _ int64) ([]domain.Season, error) {
	return r.seasons, nil
}

func (r *fakeCatalogRepo) ListTaxBands(_ context.Context, _ int64) ([]domain.TouristTaxBand, error) {
	return r.bands, nil
}

type fakeAvailability struct {
	available bool
}

func (s *fakeAvailability) IsRangeAvailable(_ context.Context, _ int64, _, _ types.DateString) (bool, error) {
	return s.available, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(available bool) *UseCase {
	minNights := 3
	catalog := &fakeCatalogRepo{
		property: &domain.Property{
			ID:                 1,
			Name:               "Haus Seeblick",
			Currency:           "EUR",
			DefaultNightlyRate: 110,
			CleaningFee:        50,
			MaxGuests:          4,
		},
		seasons: []domain.Season{
			{
				ID:          10,
				Name:        "Hauptsaison",
				StartDate:   "2025-07-01",
				EndDate:     "2025-09-01",
				NightlyRate: 140,
				MinNights:   &minNights,
			},
		},
		bands: []domain.TouristTaxBand{
			{
				ID:    20,
				Label: "Kurtaxe",
				Rate:  2.5,
				Ranges: []domain.TouristTaxRange{
					{StartMD: "05-01", EndMD: "10-01"},
				},
			},
		},
	}
	return NewUseCase(catalog, &fakeAvailability{available: available}, nopLogger{})
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("computes full quote with breakdown", func(t *testing.T) {
		uc := newTestUseCase(true)

		resp, err := uc.Execute(ctx, &Request{
			PropertyID: 1,
			StartDate:  "2025-08-29",
			EndDate:    "2025-09-02",
			Adults:     2,
		})
		require.NoError(t, err)

		assert.Equal(t, 4, resp.Nights)
		assert.Equal(t, 3, resp.MinNights)
		assert.Equal(t, 530.0, resp.NightlyTotal) // 3*140 + 1*110
		assert.Equal(t, 50.0, resp.CleaningFee)
		assert.Equal(t, 20.0, resp.TouristTax) // все 4 ночи в бэнде, 2 взрослых
		assert.Equal(t, 600.0, resp.GrandTotal)
		assert.Equal(t, "EUR", resp.Currency)
		assert.True(t, resp.Available)

		require.Len(t, resp.PriceDetail, 4)
		assert.Equal(t, "Hauptsaison", resp.PriceDetail[0].SeasonName)
		assert.Equal(t, 110.0, resp.PriceDetail[3].NightlyRate)
		assert.Empty(t, resp.PriceDetail[3].SeasonName)

		require.Len(t, resp.TaxDetail, 4)
		assert.Equal(t, 2.5, resp.TaxDetail[0].PerPerson)
		assert.Equal(t, 5.0, resp.TaxDetail[0].Total)
	})

	t.Run("unavailable range still yields a price", func(t *testing.T) {
		uc := newTestUseCase(false)

		resp, err := uc.Execute(ctx, &Request{
			PropertyID: 1,
			StartDate:  "2025-08-01",
			EndDate:    "2025-08-04",
			Adults:     2,
		})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Greater(t, resp.GrandTotal, 0.0)
	})

	t.Run("unknown property", func(t *testing.T) {
		uc := newTestUseCase(true)

		_, err := uc.Execute(ctx, &Request{PropertyID: 99, StartDate: "2025-08-01", EndDate: "2025-08-04", Adults: 1})
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("degenerate range", func(t *testing.T) {
		uc := newTestUseCase(true)

		_, err := uc.Execute(ctx, &Request{PropertyID: 1, StartDate: "2025-08-04", EndDate: "2025-08-04", Adults: 1})
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("negative adults", func(t *testing.T) {
		uc := newTestUseCase(true)

		_, err := uc.Execute(ctx, &Request{PropertyID: 1, StartDate: "2025-08-01", EndDate: "2025-08-04", Adults: -1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
