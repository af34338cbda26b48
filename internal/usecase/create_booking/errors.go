package create_booking

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект размещения не найден
	ErrPropertyNotFound = errors.New("create_booking: property not found")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	// (endDate <= startDate, выезд в прошлом, слишком длинное проживание)
	ErrInvalidRange = errors.New("create_booking: invalid date range")

	// ErrRangeAlreadyRequested возвращается, когда хотя бы одна ночь
	// диапазона захолжена другой живой заявкой
	ErrRangeAlreadyRequested = errors.New("create_booking: range already requested")

	// ErrRangeAlreadyConfirmed возвращается, когда хотя бы одна ночь
	// диапазона занята подтвержденной бронью
	ErrRangeAlreadyConfirmed = errors.New("create_booking: range already confirmed")

	// ErrStayTooShort возвращается, когда длина проживания меньше
	// минимума, требуемого затронутыми сезонами
	ErrStayTooShort = errors.New("create_booking: stay is shorter than the seasonal minimum")

	// ErrTooManyGuests возвращается, когда гостей больше вместимости объекта
	ErrTooManyGuests = errors.New("create_booking: too many guests for this property")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
