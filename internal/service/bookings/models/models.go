package models

import (
	"errors"
	"time"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на получение заявок объекта.
// Окно дат фильтрует по пересечению: startDate < to AND endDate > from.
type ListBookingsRequest struct {
	PropertyID int64
	FromDate   *types.DateString
	ToDate     *types.DateString
	Status     *string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		PropertyID: r.PropertyID,
		FromDate:   r.FromDate,
		ToDate:     r.ToDate,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AddressResponse почтовый адрес гостя
type AddressResponse struct {
	Street  string `json:"street,omitempty"`
	Zip     string `json:"zip,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// ContactResponse контактные данные гостя
type ContactResponse struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone,omitempty"`
	Address AddressResponse `json:"address"`
}

// PriceSummaryResponse зафиксированный расчет стоимости
type PriceSummaryResponse struct {
	Nights       int     `json:"nights"`
	NightlyTotal float64 `json:"nightlyTotal"`
	CleaningFee  float64 `json:"cleaningFee"`
	TouristTax   float64 `json:"touristTax"`
	GrandTotal   float64 `json:"grandTotal"`
	Currency     string  `json:"currency"`
}

// BookingResponse ответ с данными заявки
type BookingResponse struct {
	ID         string          `json:"id"`
	PropertyID int64           `json:"propertyId"`
	StartDate  string          `json:"startDate"` // "2026-07-04"
	EndDate    string          `json:"endDate"`
	Adults     int             `json:"adults"`
	Children   int             `json:"children"`
	Status     string          `json:"status"`
	Contact    ContactResponse `json:"contact"`
	Message    string          `json:"message,omitempty"`

	Summary *PriceSummaryResponse `json:"summary,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком заявок
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// NotifyResultResponse итог почтового уведомления. Ошибка отправки не
// откатывает смену статуса, оператор видит ее в этом поле.
type NotifyResultResponse struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:         b.ID.String(),
		PropertyID: b.PropertyID,
		StartDate:  b.StartDate.String(),
		EndDate:    b.EndDate.String(),
		Adults:     b.Adults,
		Children:   b.Children,
		Status:     string(b.Status),
		Contact: ContactResponse{
			Name:  b.Contact.Name,
			Email: b.Contact.Email,
			Phone: b.Contact.Phone,
			Address: AddressResponse{
				Street:  b.Contact.Address.Street,
				Zip:     b.Contact.Address.Zip,
				City:    b.Contact.Address.City,
				Country: b.Contact.Address.Country,
			},
		},
		Message:   b.Message,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	if b.Summary != nil {
		resp.Summary = &PriceSummaryResponse{
			Nights:       b.Summary.Nights,
			NightlyTotal: b.Summary.NightlyTotal,
			CleaningFee:  b.Summary.CleaningFee,
			TouristTax:   b.Summary.TouristTax,
			GrandTotal:   b.Summary.GrandTotal,
			Currency:     b.Summary.Currency,
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: out}
}

// FromDomainNotifyResult конвертирует итог уведомления в DTO
func FromDomainNotifyResult(r domain.NotifyResult) NotifyResultResponse {
	return NotifyResultResponse{OK: r.OK, Detail: r.Detail}
}

// ToDomainBookingStatus валидирует и конвертирует строковый статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	for _, status := range domain.ValidStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}
