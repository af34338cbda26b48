package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// BookingStatus статус заявки на бронирование
type BookingStatus string

const (
	StatusRequested BookingStatus = "requested"
	StatusApproved  BookingStatus = "approved"
	StatusDeclined  BookingStatus = "declined"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking заявка гостя на проживание.
// Диапазон [StartDate, EndDate) полуоткрытый: StartDate — первая
// оплачиваемая ночь, EndDate — день выезда (не оплачивается).
type Booking struct {
	ID         uuid.UUID
	PropertyID int64
	StartDate  types.DateString
	EndDate    types.DateString

	// Состав гостей: курортный сбор платят только взрослые (>= 16 лет)
	Adults   int
	Children int

	Status BookingStatus

	Contact Contact
	Message string

	// Summary снимок серверного расчета цены на момент заявки.
	// Клиентские суммы игнорируются: сервер всегда пересчитывает по
	// текущим сезонам и ставкам сбора.
	Summary *PriceSummary

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contact контактные данные гостя
type Contact struct {
	Name    string
	Email   string
	Phone   string
	Address Address
}

// Address почтовый адрес
type Address struct {
	Street  string
	Zip     string
	City    string
	Country string
}

// PriceSummary снимок расчета цены для заявки
type PriceSummary struct {
	Nights       int
	NightlyTotal float64
	CleaningFee  float64
	TouristTax   float64
	GrandTotal   float64
	Currency     string
}

// IsRequested возвращает true, если заявка ожидает решения оператора
func (b *Booking) IsRequested() bool {
	return b.Status == StatusRequested
}

// IsApproved возвращает true, если бронь подтверждена и держит инвентарь
func (b *Booking) IsApproved() bool {
	return b.Status == StatusApproved
}

// IsTerminal возвращает true для конечных статусов, из которых заявку
// можно физически удалить
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusDeclined || b.Status == StatusCancelled
}

// CanBeApproved возвращает true, если заявку можно подтвердить.
// Повторное подтверждение отмененной брони разрешено: "отмена отмены"
// в интерфейсе оператора реализована как обычный approve.
func (b *Booking) CanBeApproved() bool {
	return b.Status != StatusApproved
}

// CanBeCancelled возвращает true, если бронь можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusApproved
}

// BookingsFilter фильтр для выборки заявок объекта размещения
type BookingsFilter struct {
	PropertyID int64
	// FromDate/ToDate отбирают брони, пересекающие окно:
	// startDate < ToDate && endDate > FromDate
	FromDate *types.DateString
	ToDate   *types.DateString
	Status   *BookingStatus
}
