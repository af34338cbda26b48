package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса без обращения к БД
func validateRequest(req *Request) error {
	if req.PropertyID <= 0 {
		return fmt.Errorf("%w: propertyId must be positive", ErrInvalidInput)
	}

	if err := req.StartDate.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startDate: %v", ErrInvalidInput, err)
	}
	if err := req.EndDate.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endDate: %v", ErrInvalidInput, err)
	}

	if req.Adults < 1 {
		return fmt.Errorf("%w: at least one adult is required", ErrInvalidInput)
	}
	if req.Children < 0 {
		return fmt.Errorf("%w: children must not be negative", ErrInvalidInput)
	}
	if req.Adults+req.Children > domain.MaxGuestsLimit {
		return fmt.Errorf("%w: guest count exceeds limit of %d", ErrInvalidInput, domain.MaxGuestsLimit)
	}

	name := strings.TrimSpace(req.Contact.Name)
	if name == "" {
		return fmt.Errorf("%w: contact name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: contact name is too long", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.Contact.Email)
	if email == "" {
		return fmt.Errorf("%w: contact email is required", ErrInvalidInput)
	}
	// Полноценную проверку делает почтовый шлюз, здесь только форма
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return fmt.Errorf("%w: contact email is malformed", ErrInvalidInput)
	}

	if len(req.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message is too long", ErrInvalidInput)
	}

	return nil
}

// validateRange проверяет сам диапазон: минимум одна ночь, не в прошлом,
// не длиннее MaxStayNights
func validateRange(start, end types.DateString, now time.Time) (int, error) {
	nights, err := start.DaysUntil(end)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if nights <= 0 {
		return 0, fmt.Errorf("%w: endDate must be after startDate", ErrInvalidRange)
	}
	if nights > domain.MaxStayNights {
		return 0, fmt.Errorf("%w: stay must not exceed %d nights", ErrInvalidRange, domain.MaxStayNights)
	}

	// Дата заезда сравнивается с сегодняшним днем в зоне сервера:
	// заезд "сегодня" допустим, вчерашний — нет
	today := types.NewDateString(now)
	if start.Before(today) {
		return 0, fmt.Errorf("%w: startDate is in the past", ErrInvalidRange)
	}

	return nights, nil
}
