package get_quote

import (
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// Request запрос расчета стоимости проживания
type Request struct {
	PropertyID int64
	StartDate  types.DateString
	EndDate    types.DateString
	Adults     int
}

// NightPrice цена одной ночи в разбивке
type NightPrice struct {
	Date        string  `json:"date"`
	NightlyRate float64 `json:"nightlyRate"`
	SeasonName  string  `json:"seasonName,omitempty"`
}

// NightTax курортный сбор одной ночи в разбивке
type NightTax struct {
	Date      string  `json:"date"`
	PerPerson float64 `json:"perPerson"`
	Persons   int     `json:"persons"`
	Total     float64 `json:"total"`
	BandLabel string  `json:"bandLabel,omitempty"`
}

// Response расчет стоимости: ночи, уборка, сбор, итог и флаг доступности
type Response struct {
	PropertyID   int64        `json:"propertyId"`
	StartDate    string       `json:"startDate"`
	EndDate      string       `json:"endDate"`
	Nights       int          `json:"nights"`
	MinNights    int          `json:"minNights"`
	NightlyTotal float64      `json:"nightlyTotal"`
	CleaningFee  float64      `json:"cleaningFee"`
	TouristTax   float64      `json:"touristTax"`
	GrandTotal   float64      `json:"grandTotal"`
	Currency     string       `json:"currency"`
	Available    bool         `json:"available"`
	PriceDetail  []NightPrice `json:"priceDetail"`
	TaxDetail    []NightTax   `json:"taxDetail"`
}
