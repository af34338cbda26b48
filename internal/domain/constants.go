package domain

// Значения по умолчанию
const (
	DefaultCurrency     = "EUR"
	DefaultCheckInHour  = 15
	DefaultCheckOutHour = 10
	DefaultHoldTTLHours = 72
	DefaultMinNights    = 1
)

// Ограничения бизнес-валидации
const (
	MaxStayNights    = 90
	MaxGuestsLimit   = 20
	MaxMessageLength = 2000
	MaxNameLength    = 200
)

// Форматы дат (см. pkg/types)
const (
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	MonthDayFormat = "01-02"      // MM-DD
)

// NotifyAction действие, о котором уведомляется почтовый сервис
type NotifyAction string

const (
	NotifyRequested NotifyAction = "requested"
	NotifyApproved  NotifyAction = "approved"
	NotifyDeclined  NotifyAction = "declined"
	NotifyCancelled NotifyAction = "cancelled"
)

// NotifyResult результат отправки уведомления. Ошибка доставки письма
// никогда не откатывает смену статуса: вызывающий получает {OK, Detail}
// отдельно от ошибки самой операции.
type NotifyResult struct {
	OK     bool
	Detail string
}

// ValidStatuses допустимые статусы заявки
var ValidStatuses = []BookingStatus{
	StatusRequested,
	StatusApproved,
	StatusDeclined,
	StatusCancelled,
}
