package pricing

import "errors"

var (
	// ErrInvalidRange возвращается, когда endDate <= startDate
	// (минимум одна ночь обязательна)
	ErrInvalidRange = errors.New("pricing: endDate must be after startDate (at least 1 night)")

	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("pricing: invalid date")
)
