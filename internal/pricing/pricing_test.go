package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

func intPtr(v int) *int {
	return &v
}

func testProperty() *domain.Property {
	return &domain.Property{
		ID:                 1,
		Name:               "Haus Seeblick",
		Currency:           "EUR",
		DefaultNightlyRate: 110,
		CleaningFee:        50,
		MaxGuests:          4,
	}
}

func summerSeason() domain.Season {
	return domain.Season{
		ID:          10,
		PropertyID:  1,
		Name:        "Hauptsaison",
		StartDate:   "2025-07-01",
		EndDate:     "2025-09-01",
		NightlyRate: 140,
	}
}

func TestEachNight(t *testing.T) {
	t.Run("enumerates half-open range", func(t *testing.T) {
		nights, err := EachNight("2025-07-30", "2025-08-02")
		require.NoError(t, err)
		assert.Equal(t, []types.DateString{"2025-07-30", "2025-07-31", "2025-08-01"}, nights)
	})

	t.Run("degenerate range is empty", func(t *testing.T) {
		nights, err := EachNight("2025-07-30", "2025-07-30")
		require.NoError(t, err)
		assert.Empty(t, nights)

		nights, err = EachNight("2025-08-01", "2025-07-30")
		require.NoError(t, err)
		assert.Empty(t, nights)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := EachNight("2025-7-30", "2025-08-02")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestNightsBetween(t *testing.T) {
	t.Run("counts nights", func(t *testing.T) {
		n, err := NightsBetween("2025-07-30", "2025-08-02")
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("same day is invalid", func(t *testing.T) {
		_, err := NightsBetween("2025-07-30", "2025-07-30")
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("reversed range is invalid", func(t *testing.T) {
		_, err := NightsBetween("2025-08-02", "2025-07-30")
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestSeasonForDate(t *testing.T) {
	summer := summerSeason()
	overlap := domain.Season{
		ID:          11,
		PropertyID:  1,
		Name:        "August Spezial",
		StartDate:   "2025-08-01",
		EndDate:     "2025-08-15",
		NightlyRate: 160,
	}
	seasons := []domain.Season{summer, overlap}

	t.Run("first match wins on overlap", func(t *testing.T) {
		got := SeasonForDate("2025-08-05", seasons)
		require.NotNil(t, got)
		assert.Equal(t, int64(10), got.ID)
	})

	t.Run("season end is exclusive", func(t *testing.T) {
		require.NotNil(t, SeasonForDate("2025-08-31", seasons))
		assert.Nil(t, SeasonForDate("2025-09-01", seasons))
	})

	t.Run("season start is inclusive", func(t *testing.T) {
		got := SeasonForDate("2025-07-01", seasons)
		require.NotNil(t, got)
		assert.Equal(t, "Hauptsaison", got.Name)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Nil(t, SeasonForDate("2025-06-30", seasons))
	})
}

func TestPriceForStay(t *testing.T) {
	property := testProperty()
	seasons := []domain.Season{summerSeason()}

	t.Run("mixes season and default rate", func(t *testing.T) {
		// 3 ночи в сезоне (140) + 1 ночь по базовой ставке (110)
		result, err := PriceForStay(property, seasons, "2025-08-29", "2025-09-02")
		require.NoError(t, err)

		assert.Equal(t, 4, result.Nights)
		assert.Equal(t, 530.0, result.NightsTotal)
		assert.Equal(t, 50.0, result.CleaningFee)
		assert.Equal(t, 580.0, result.Total)
		assert.Equal(t, "EUR", result.Currency)

		require.Len(t, result.Breakdown, 4)
		assert.Equal(t, 140.0, result.Breakdown[0].NightlyRate)
		assert.Equal(t, "Hauptsaison", result.Breakdown[0].SeasonName)
		assert.Equal(t, 110.0, result.Breakdown[3].NightlyRate)
		assert.Nil(t, result.Breakdown[3].SeasonID)
	})

	t.Run("no seasons falls back to default rate", func(t *testing.T) {
		result, err := PriceForStay(property, nil, "2025-03-01", "2025-03-03")
		require.NoError(t, err)
		assert.Equal(t, 220.0, result.NightsTotal)
		assert.Equal(t, 270.0, result.Total)
	})

	t.Run("empty currency becomes EUR", func(t *testing.T) {
		bare := testProperty()
		bare.Currency = ""
		result, err := PriceForStay(bare, nil, "2025-03-01", "2025-03-02")
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultCurrency, result.Currency)
	})

	t.Run("degenerate range is rejected", func(t *testing.T) {
		_, err := PriceForStay(property, seasons, "2025-08-01", "2025-08-01")
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestTouristTaxForStay(t *testing.T) {
	band := domain.TouristTaxBand{
		ID:       20,
		Zone:     "kurzone-1",
		Label:    "Hauptsaison Kurtaxe",
		Currency: "EUR",
		Rate:     2.5,
		Ranges: []domain.TouristTaxRange{
			{StartMD: "05-01", EndMD: "10-01"},
		},
	}
	offSeason := domain.TouristTaxBand{
		ID:       21,
		Zone:     "kurzone-1",
		Label:    "Nebensaison Kurtaxe",
		Currency: "EUR",
		Rate:     1.0,
		Ranges: []domain.TouristTaxRange{
			{StartMD: "10-01", EndMD: "05-01"},
		},
	}

	t.Run("adults only pay the tax", func(t *testing.T) {
		result, err := TouristTaxForStay([]domain.TouristTaxBand{band}, "2025-07-10", "2025-07-12", 2)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Nights)
		assert.Equal(t, 10.0, result.Total) // 2 ночи * 2 взрослых * 2.50

		require.Len(t, result.Breakdown, 2)
		assert.Equal(t, 2.5, result.Breakdown[0].PerPerson)
		assert.Equal(t, 2, result.Breakdown[0].Persons)
		assert.Equal(t, "Hauptsaison Kurtaxe", result.Breakdown[0].BandLabel)
	})

	t.Run("zero adults means zero tax", func(t *testing.T) {
		result, err := TouristTaxForStay([]domain.TouristTaxBand{band}, "2025-07-10", "2025-07-12", 0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, result.Total)
	})

	t.Run("night outside all ranges is free", func(t *testing.T) {
		result, err := TouristTaxForStay([]domain.TouristTaxBand{band}, "2025-04-29", "2025-05-02", 1)
		require.NoError(t, err)
		// 04-29 и 04-30 вне диапазона, 05-01 внутри
		assert.Equal(t, 2.5, result.Total)
		assert.Nil(t, result.Breakdown[0].BandID)
		assert.NotNil(t, result.Breakdown[2].BandID)
	})

	t.Run("range end is exclusive", func(t *testing.T) {
		result, err := TouristTaxForStay([]domain.TouristTaxBand{band}, "2025-09-30", "2025-10-02", 1)
		require.NoError(t, err)
		// 09-30 внутри, 10-01 уже нет
		assert.Equal(t, 2.5, result.Total)
	})

	t.Run("year-wrapping range matches both sides of new year", func(t *testing.T) {
		winter := domain.TouristTaxBand{
			ID:    22,
			Zone:  "kurzone-2",
			Label: "Winter Kurtaxe",
			Rate:  3.0,
			Ranges: []domain.TouristTaxRange{
				{StartMD: "12-20", EndMD: "01-05"},
			},
		}

		assert.True(t, winter.Matches("2025-12-25"))
		assert.True(t, winter.Matches("2026-01-02"))
		assert.False(t, winter.Matches("2026-01-10"))
		assert.False(t, winter.Matches("2026-01-05"))

		result, err := TouristTaxForStay([]domain.TouristTaxBand{winter}, "2025-12-30", "2026-01-02", 2)
		require.NoError(t, err)
		assert.Equal(t, 18.0, result.Total) // 3 ночи * 2 взрослых * 3.00
	})

	t.Run("first matching band wins", func(t *testing.T) {
		result, err := TouristTaxForStay([]domain.TouristTaxBand{band, offSeason}, "2025-07-10", "2025-07-11", 1)
		require.NoError(t, err)
		assert.Equal(t, 2.5, result.Breakdown[0].PerPerson)
	})
}

func TestMinNightsRequired(t *testing.T) {
	withMin := summerSeason()
	withMin.MinNights = intPtr(5)
	other := domain.Season{
		ID:          12,
		Name:        "Randzeit",
		StartDate:   "2025-09-01",
		EndDate:     "2025-10-01",
		NightlyRate: 120,
		MinNights:   intPtr(3),
	}
	seasons := []domain.Season{withMin, other}

	t.Run("takes maximum across touched seasons", func(t *testing.T) {
		n, err := MinNightsRequired(seasons, "2025-08-30", "2025-09-03")
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("only touched seasons count", func(t *testing.T) {
		n, err := MinNightsRequired(seasons, "2025-09-10", "2025-09-12")
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("defaults to one night", func(t *testing.T) {
		n, err := MinNightsRequired(nil, "2025-03-01", "2025-03-02")
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultMinNights, n)
	})
}
