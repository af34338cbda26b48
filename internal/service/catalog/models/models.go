package models

import (
	"time"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// Request модели

// SeasonRequest сезонная цена в запросе оператора
type SeasonRequest struct {
	Name        string  `json:"name"`
	StartDate   string  `json:"startDate"` // "2026-06-15"
	EndDate     string  `json:"endDate"`
	NightlyRate float64 `json:"nightlyRate"`
	MinNights   *int    `json:"minNights,omitempty"`
}

// TaxRangeRequest повторяющийся годовой диапазон MM-DD
type TaxRangeRequest struct {
	StartMD string `json:"startMd"` // "05-01"
	EndMD   string `json:"endMd"`
}

// TaxBandRequest бэнд курортного сбора в запросе оператора
type TaxBandRequest struct {
	Zone     string            `json:"zone"`
	Label    string            `json:"label"`
	Currency string            `json:"currency,omitempty"`
	Rate     float64           `json:"rate"`
	Ranges   []TaxRangeRequest `json:"ranges"`
}

// UpdatePropertyConfigRequest полная замена конфигурации объекта:
// поля объекта, набор сезонов и набор бэндов сбора
type UpdatePropertyConfigRequest struct {
	Name               string           `json:"name"`
	Currency           string           `json:"currency,omitempty"`
	DefaultNightlyRate float64          `json:"defaultNightlyRate"`
	CleaningFee        float64          `json:"cleaningFee"`
	MaxGuests          int              `json:"maxGuests"`
	CheckInHour        int              `json:"checkInHour"`
	CheckOutHour       int              `json:"checkOutHour"`
	Seasons            []SeasonRequest  `json:"seasons"`
	TaxBands           []TaxBandRequest `json:"taxBands"`
}

// Response модели

// SeasonResponse сезонная цена объекта
type SeasonResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	NightlyRate float64 `json:"nightlyRate"`
	MinNights   *int    `json:"minNights,omitempty"`
}

// TaxRangeResponse повторяющийся годовой диапазон MM-DD
type TaxRangeResponse struct {
	StartMD string `json:"startMd"`
	EndMD   string `json:"endMd"`
}

// TaxBandResponse бэнд курортного сбора объекта
type TaxBandResponse struct {
	ID       int64              `json:"id"`
	Zone     string             `json:"zone"`
	Label    string             `json:"label"`
	Currency string             `json:"currency,omitempty"`
	Rate     float64            `json:"rate"`
	Ranges   []TaxRangeResponse `json:"ranges"`
}

// PropertyConfigResponse полная конфигурация объекта размещения
type PropertyConfigResponse struct {
	ID                 int64             `json:"id"`
	Name               string            `json:"name"`
	Slug               string            `json:"slug"`
	Currency           string            `json:"currency"`
	DefaultNightlyRate float64           `json:"defaultNightlyRate"`
	CleaningFee        float64           `json:"cleaningFee"`
	MaxGuests          int               `json:"maxGuests"`
	CheckInHour        int               `json:"checkInHour"`
	CheckOutHour       int               `json:"checkOutHour"`
	Seasons            []SeasonResponse  `json:"seasons"`
	TaxBands           []TaxBandResponse `json:"taxBands"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// Методы конвертации

// ToDomainProperty конвертирует запрос в domain модель объекта
func (r *UpdatePropertyConfigRequest) ToDomainProperty() *domain.Property {
	currency := r.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &domain.Property{
		Name:               r.Name,
		Currency:           currency,
		DefaultNightlyRate: r.DefaultNightlyRate,
		CleaningFee:        r.CleaningFee,
		MaxGuests:          r.MaxGuests,
		CheckInHour:        r.CheckInHour,
		CheckOutHour:       r.CheckOutHour,
	}
}

// ToDomainSeasons конвертирует сезоны запроса в domain модели
func (r *UpdatePropertyConfigRequest) ToDomainSeasons() []domain.Season {
	seasons := make([]domain.Season, 0, len(r.Seasons))
	for _, s := range r.Seasons {
		seasons = append(seasons, domain.Season{
			Name:        s.Name,
			StartDate:   types.DateString(s.StartDate),
			EndDate:     types.DateString(s.EndDate),
			NightlyRate: s.NightlyRate,
			MinNights:   s.MinNights,
		})
	}
	return seasons
}

// ToDomainTaxBands конвертирует бэнды запроса в domain модели
func (r *UpdatePropertyConfigRequest) ToDomainTaxBands() []domain.TouristTaxBand {
	bands := make([]domain.TouristTaxBand, 0, len(r.TaxBands))
	for _, b := range r.TaxBands {
		ranges := make([]domain.TouristTaxRange, 0, len(b.Ranges))
		for _, rng := range b.Ranges {
			ranges = append(ranges, domain.TouristTaxRange{
				StartMD: types.MonthDay(rng.StartMD),
				EndMD:   types.MonthDay(rng.EndMD),
			})
		}
		currency := b.Currency
		if currency == "" {
			currency = domain.DefaultCurrency
		}
		bands = append(bands, domain.TouristTaxBand{
			Zone:     b.Zone,
			Label:    b.Label,
			Currency: currency,
			Rate:     b.Rate,
			Ranges:   ranges,
		})
	}
	return bands
}

// FromDomainPropertyConfig собирает полный ответ из domain моделей
func FromDomainPropertyConfig(p *domain.Property, seasons []domain.Season, bands []domain.TouristTaxBand) *PropertyConfigResponse {
	resp := &PropertyConfigResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Slug:               p.Slug,
		Currency:           p.Currency,
		DefaultNightlyRate: p.DefaultNightlyRate,
		CleaningFee:        p.CleaningFee,
		MaxGuests:          p.MaxGuests,
		CheckInHour:        p.CheckInHour,
		CheckOutHour:       p.CheckOutHour,
		Seasons:            make([]SeasonResponse, 0, len(seasons)),
		TaxBands:           make([]TaxBandResponse, 0, len(bands)),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}

	for _, s := range seasons {
		resp.Seasons = append(resp.Seasons, SeasonResponse{
			ID:          s.ID,
			Name:        s.Name,
			StartDate:   s.StartDate.String(),
			EndDate:     s.EndDate.String(),
			NightlyRate: s.NightlyRate,
			MinNights:   s.MinNights,
		})
	}

	for _, b := range bands {
		ranges := make([]TaxRangeResponse, 0, len(b.Ranges))
		for _, rng := range b.Ranges {
			ranges = append(ranges, TaxRangeResponse{
				StartMD: rng.StartMD.String(),
				EndMD:   rng.EndMD.String(),
			})
		}
		resp.TaxBands = append(resp.TaxBands, TaxBandResponse{
			ID:       b.ID,
			Zone:     b.Zone,
			Label:    b.Label,
			Currency: b.Currency,
			Rate:     b.Rate,
			Ranges:   ranges,
		})
	}

	return resp
}
