package domain

import (
	"time"

	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// Property объект размещения (ферьенвонунг). Для ядра — read-only
// справочник: цены и налоговые зоны редактирует оператор.
type Property struct {
	ID                 int64
	Name               string
	Slug               string
	Currency           string
	DefaultNightlyRate float64
	CleaningFee        float64
	MaxGuests          int
	CheckInHour        int
	CheckOutHour       int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Season сезонная цена: полуоткрытый диапазон [StartDate, EndDate)
// с переопределением цены за ночь и опциональным минимумом ночей.
// Сезоны одного объекта могут пересекаться; порядок выбора задает
// репозиторий (см. config.SeasonTieBreak), применяется первый подходящий.
type Season struct {
	ID         int64
	PropertyID int64
	Name       string
	StartDate  types.DateString
	EndDate    types.DateString
	NightlyRate float64
	MinNights  *int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Contains возвращает true, если ночь d входит в сезон
// (начало включительно, конец исключительно)
func (s *Season) Contains(d types.DateString) bool {
	return !d.Before(s.StartDate) && d.Before(s.EndDate)
}

// TouristTaxRange повторяющийся годовой диапазон [StartMD, EndMD)
// с поддержкой перехода через Новый год
type TouristTaxRange struct {
	StartMD types.MonthDay
	EndMD   types.MonthDay
}

// TouristTaxBand ставка курортного сбора (Kurtaxe) для зоны.
// Применяется первый подходящий по порядку диапазонов бэнд; если ни один
// не подходит, сбор за эту ночь равен нулю.
type TouristTaxBand struct {
	ID         int64
	PropertyID int64
	Zone       string
	Label      string
	Currency   string
	// Rate цена за человека за ночь (только взрослые >= 16 лет)
	Rate      float64
	Ranges    []TouristTaxRange
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Matches возвращает true, если календарная ночь d попадает хотя бы
// в один диапазон бэнда
func (b *TouristTaxBand) Matches(d types.DateString) bool {
	md := d.MonthDay()
	for _, r := range b.Ranges {
		if md.InRange(r.StartMD, r.EndMD) {
			return true
		}
	}
	return false
}
