package pricing

import (
	"fmt"

	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// NightsBetween возвращает число оплачиваемых ночей между заездом и
// выездом. Возвращает ErrInvalidRange, если endDate <= startDate.
func NightsBetween(start, end types.DateString) (int, error) {
	if err := start.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if err := end.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	n, err := start.DaysUntil(end)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if n <= 0 {
		return 0, ErrInvalidRange
	}
	return n, nil
}

// EachNight перечисляет все ночи полуоткрытого диапазона [start, end)
// в порядке возрастания. Пустой или вырожденный диапазон (start >= end)
// дает пустой список; вызывающий код сам решает, является ли это ошибкой.
func EachNight(start, end types.DateString) ([]types.DateString, error) {
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if err := end.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	nights := make([]types.DateString, 0)
	for d := start; d.Before(end); {
		nights = append(nights, d)
		next, err := d.AddDays(1)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		d = next
	}
	return nights, nil
}
