package create_booking

import (
	"time"

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

// Request запрос гостя на бронирование
type Request struct {
	PropertyID int64            `json:"propertyId"`
	StartDate  types.DateString `json:"startDate"` // первая ночь, "2026-07-04"
	EndDate    types.DateString `json:"endDate"`   // день выезда, не оплачивается
	Adults     int              `json:"adults"`
	Children   int              `json:"children"`
	Contact    ContactRequest   `json:"contact"`
	Message    string           `json:"message"`
}

// SummaryResponse зафиксированный серверный расчет стоимости
type SummaryResponse struct {
	Nights       int     `json:"nights"`
	NightlyTotal float64 `json:"nightlyTotal"`
	CleaningFee  float64 `json:"cleaningFee"`
	TouristTax   float64 `json:"touristTax"`
	GrandTotal   float64 `json:"grandTotal"`
	Currency     string  `json:"currency"`
}

// NotifyResponse итог почтового уведомления о новой заявке
type NotifyResponse struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// Response ответ на созданную заявку
type Response struct {
	ID         string          `json:"id"`
	PropertyID int64           `json:"propertyId"`
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
	Adults     int             `json:"adults"`
	Children   int             `json:"children"`
	Status     string          `json:"status"`
	Summary    SummaryResponse `json:"summary"`
	HoldUntil  time.Time       `json:"holdUntil"`
	Notify     NotifyResponse  `json:"notify"`
	CreatedAt  time.Time       `json:"createdAt"`
}
