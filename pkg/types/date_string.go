package types

import (
	"errors"
	"fmt"
	"time"
)

// DateFormat формат календарной даты (YYYY-MM-DD)
const DateFormat = "2006-01-02"

var (
	// ErrInvalidDateString возвращается при некорректном формате даты
	ErrInvalidDateString = errors.New("types: invalid date string, expected YYYY-MM-DD")
)

// DateString календарная дата в формате YYYY-MM-DD.
// Ночь идентифицируется датой заезда: диапазон [start, end) покрывает
// все оплачиваемые ночи, день выезда (end) не входит.
type DateString string

// NewDateString создает DateString из time.Time (локальная дата, без сдвига в UTC)
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(DateFormat))
}

// NewDateStringFromString парсит и валидирует строку YYYY-MM-DD
func NewDateStringFromString(s string) (DateString, error) {
	if _, err := time.Parse(DateFormat, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}
	return DateString(s), nil
}

// String возвращает строковое представление даты
func (d DateString) String() string {
	return string(d)
}

// IsZero возвращает true, если дата не задана
func (d DateString) IsZero() bool {
	return d == ""
}

// Validate проверяет формат даты
func (d DateString) Validate() error {
	_, err := time.Parse(DateFormat, string(d))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateString, d)
	}
	return nil
}

// Time возвращает дату как time.Time (полночь UTC).
// Арифметика над датами ведется в UTC, чтобы переводы часов (DST)
// не давали ошибку на одну ночь; локальная зона участвует только
// при конвертации wall-clock времени в дату (NewDateString).
func (d DateString) Time() (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, string(d), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateString, d)
	}
	return t, nil
}

// AddDays возвращает дату, сдвинутую на n календарных дней
func (d DateString) AddDays(n int) (DateString, error) {
	t, err := d.Time()
	if err != nil {
		return "", err
	}
	return NewDateString(t.AddDate(0, 0, n)), nil
}

// Before возвращает true, если d раньше other.
// Формат YYYY-MM-DD сравнивается лексикографически корректно.
func (d DateString) Before(other DateString) bool {
	return d < other
}

// MonthDay возвращает компонент MM-DD даты (для сопоставления с
// повторяющимися годовыми диапазонами)
func (d DateString) MonthDay() MonthDay {
	if len(d) != 10 {
		return ""
	}
	return MonthDay(d[5:])
}

// DaysUntil возвращает число календарных дней от d до other.
// Отрицательно, если other раньше d.
func (d DateString) DaysUntil(other DateString) (int, error) {
	from, err := d.Time()
	if err != nil {
		return 0, err
	}
	to, err := other.Time()
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from).Hours() / 24), nil
}
