package pricing

import (
	"math"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// Движок цен: чистые функции без побочных эффектов и обращений к
// хранилищу. Списки сезонов и бэндов приходят уже упорядоченными
// (порядок задает репозиторий), применяется первый подходящий.

// NightBreakdown цена одной ночи
type NightBreakdown struct {
	Date        types.DateString
	NightlyRate float64
	SeasonID    *int64
	SeasonName  string
}

// PriceResult итог расчета стоимости проживания
type PriceResult struct {
	Nights      int
	NightsTotal float64
	CleaningFee float64
	Total       float64
	Currency    string
	Breakdown   []NightBreakdown
}

// TaxNightBreakdown курортный сбор за одну ночь
type TaxNightBreakdown struct {
	Date      types.DateString
	PerPerson float64
	Persons   int
	Total     float64
	BandID    *int64
	BandLabel string
}

// TaxResult итог расчета курортного сбора
type TaxResult struct {
	Nights    int
	Total     float64
	Breakdown []TaxNightBreakdown
}

// SeasonForDate возвращает первый сезон, содержащий ночь d
// (начало включительно, конец исключительно), либо nil
func SeasonForDate(d types.DateString, seasons []domain.Season) *domain.Season {
	for i := range seasons {
		if seasons[i].Contains(d) {
			return &seasons[i]
		}
	}
	return nil
}

// PriceForStay считает стоимость проживания: для каждой ночи диапазона
// [start, end) берется цена первого подходящего сезона, иначе
// DefaultNightlyRate объекта; CleaningFee добавляется один раз.
func PriceForStay(property *domain.Property, seasons []domain.Season, start, end types.DateString) (*PriceResult, error) {
	nights, err := EachNight(start, end)
	if err != nil {
		return nil, err
	}
	if len(nights) == 0 {
		return nil, ErrInvalidRange
	}

	breakdown := make([]NightBreakdown, 0, len(nights))
	var nightsTotal float64

	for _, night := range nights {
		rate := property.DefaultNightlyRate
		entry := NightBreakdown{Date: night, NightlyRate: rate}

		if season := SeasonForDate(night, seasons); season != nil {
			entry.NightlyRate = season.NightlyRate
			id := season.ID
			entry.SeasonID = &id
			entry.SeasonName = season.Name
			rate = season.NightlyRate
		}

		nightsTotal += rate
		breakdown = append(breakdown, entry)
	}

	currency := property.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	return &PriceResult{
		Nights:      len(nights),
		NightsTotal: roundMoney(nightsTotal),
		CleaningFee: property.CleaningFee,
		Total:       roundMoney(nightsTotal + property.CleaningFee),
		Currency:    currency,
		Breakdown:   breakdown,
	}, nil
}

// TouristTaxForStay считает курортный сбор: для каждой ночи берется
// первый бэнд, чьи повторяющиеся диапазоны MM-DD (с переходом через год,
// конец исключительно) содержат дату; ставка умножается на число взрослых.
// Дети (0-15) сбор не платят; ноль взрослых — нулевой сбор при любых бэндах.
func TouristTaxForStay(bands []domain.TouristTaxBand, start, end types.DateString, adults int) (*TaxResult, error) {
	nights, err := EachNight(start, end)
	if err != nil {
		return nil, err
	}
	if len(nights) == 0 {
		return nil, ErrInvalidRange
	}

	persons := adults
	if persons < 0 {
		persons = 0
	}

	breakdown := make([]TaxNightBreakdown, 0, len(nights))
	var total float64

	for _, night := range nights {
		entry := TaxNightBreakdown{Date: night, Persons: persons}

		for i := range bands {
			if bands[i].Matches(night) {
				id := bands[i].ID
				entry.PerPerson = bands[i].Rate
				entry.BandID = &id
				entry.BandLabel = bands[i].Label
				break
			}
		}

		entry.Total = roundMoney(entry.PerPerson * float64(persons))
		total += entry.Total
		breakdown = append(breakdown, entry)
	}

	return &TaxResult{
		Nights:    len(nights),
		Total:     roundMoney(total),
		Breakdown: breakdown,
	}, nil
}

// MinNightsRequired возвращает максимум MinNights по всем сезонам,
// затронутым диапазоном (по умолчанию 1). Используется только для
// гостевой валидации, инвариантов ядра не задает.
func MinNightsRequired(seasons []domain.Season, start, end types.DateString) (int, error) {
	nights, err := EachNight(start, end)
	if err != nil {
		return 0, err
	}

	required := domain.DefaultMinNights
	for _, night := range nights {
		if season := SeasonForDate(night, seasons); season != nil {
			if season.MinNights != nil && *season.MinNights > required {
				required = *season.MinNights
			}
		}
	}
	return required, nil
}

// roundMoney округляет до цента. Суммы хранятся как float64 (как и
// ставки в справочниках); округление на каждой агрегации не дает
// накопиться дрейфу двоичного представления за много ночей.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
