package types

import (
	"errors"
	"fmt"
	"regexp"
)

// MonthDayFormat формат повторяющейся годовой даты (MM-DD)
const MonthDayFormat = "01-02"

var (
	// ErrInvalidMonthDay возвращается при некорректном формате MM-DD
	ErrInvalidMonthDay = errors.New("types: invalid month-day string, expected MM-DD")

	monthDayRe = regexp.MustCompile(`^(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
)

// MonthDay повторяющаяся годовая дата в формате MM-DD (например "04-01").
// Используется для курортного сбора: диапазоны MM-DD повторяются каждый
// календарный год и могут переходить через Новый год (12-25..01-07).
type MonthDay string

// NewMonthDayFromString парсит и валидирует строку MM-DD
func NewMonthDayFromString(s string) (MonthDay, error) {
	if !monthDayRe.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonthDay, s)
	}
	return MonthDay(s), nil
}

// String возвращает строковое представление
func (m MonthDay) String() string {
	return string(m)
}

// Validate проверяет формат MM-DD
func (m MonthDay) Validate() error {
	if !monthDayRe.MatchString(string(m)) {
		return fmt.Errorf("%w: %q", ErrInvalidMonthDay, m)
	}
	return nil
}

// InRange возвращает true, если m лежит в диапазоне [start, end)
// с учетом перехода через год: если start > end, диапазон трактуется
// как start..31-12 плюс 01-01..end.
// Формат MM-DD сравнивается лексикографически корректно.
func (m MonthDay) InRange(start, end MonthDay) bool {
	if start <= end {
		return m >= start && m < end
	}
	return m >= start || m < end
}
