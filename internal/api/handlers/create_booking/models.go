package create_booking

import (
	"time"

	createBooking "github.com/sebschult/FeWo-BookingService/internal/usecase/create_booking"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// AddressRequest почтовый адрес гостя
type AddressRequest struct {
	Street  string `json:"street"`
	Zip     string `json:"zip"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// ContactRequest контактные данные гостя
type ContactRequest struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
	Address AddressRequest `json:"address"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PropertyID int64          `json:"propertyId"`
	StartDate  string         `json:"startDate"` // "2026-07-04"
	EndDate    string         `json:"endDate"`
	Adults     int            `json:"adults"`
	Children   int            `json:"children"`
	Contact    ContactRequest `json:"contact"`
	Message    string         `json:"message"`
}

// SummaryResponse серверный расчет стоимости
type SummaryResponse struct {
	Nights       int     `json:"nights"`
	NightlyTotal float64 `json:"nightlyTotal"`
	CleaningFee  float64 `json:"cleaningFee"`
	TouristTax   float64 `json:"touristTax"`
	GrandTotal   float64 `json:"grandTotal"`
	Currency     string  `json:"currency"`
}

// NotifyResponse итог почтового уведомления
type NotifyResponse struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         string          `json:"id"`
	PropertyID int64           `json:"propertyId"`
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
	Adults     int             `json:"adults"`
	Children   int             `json:"children"`
	Status     string          `json:"status"`
	Summary    SummaryResponse `json:"summary"`
	HoldUntil  string          `json:"holdUntil"` // ISO 8601
	Notify     NotifyResponse  `json:"notify"`
	CreatedAt  string          `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	startDate, err := types.NewDateStringFromString(r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := types.NewDateStringFromString(r.EndDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		PropertyID: r.PropertyID,
		StartDate:  startDate,
		EndDate:    endDate,
		Adults:     r.Adults,
		Children:   r.Children,
		Contact: createBooking.ContactRequest{
			Name:  r.Contact.Name,
			Email: r.Contact.Email,
			Phone: r.Contact.Phone,
			Address: createBooking.AddressRequest{
				Street:  r.Contact.Address.Street,
				Zip:     r.Contact.Address.Zip,
				City:    r.Contact.Address.City,
				Country: r.Contact.Address.Country,
			},
		},
		Message: r.Message,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		PropertyID: resp.PropertyID,
		StartDate:  resp.StartDate,
		EndDate:    resp.EndDate,
		Adults:     resp.Adults,
		Children:   resp.Children,
		Status:     resp.Status,
		Summary: SummaryResponse{
			Nights:       resp.Summary.Nights,
			NightlyTotal: resp.Summary.NightlyTotal,
			CleaningFee:  resp.Summary.CleaningFee,
			TouristTax:   resp.Summary.TouristTax,
			GrandTotal:   resp.Summary.GrandTotal,
			Currency:     resp.Summary.Currency,
		},
		HoldUntil: resp.HoldUntil.Format(time.RFC3339),
		Notify:    NotifyResponse{OK: resp.Notify.OK, Detail: resp.Notify.Detail},
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
