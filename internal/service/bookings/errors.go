package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrPropertyNotFound возвращается, когда объект размещения не найден
	ErrPropertyNotFound = errors.New("property not found")

	// ErrCannotApprove возвращается при попытке подтвердить уже подтвержденную заявку
	ErrCannotApprove = errors.New("booking cannot be approved")

	// ErrCannotDecline возвращается, когда заявка не в статусе requested
	ErrCannotDecline = errors.New("booking cannot be declined")

	// ErrCannotCancel возвращается, когда заявка не подтверждена
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotDelete возвращается при попытке удалить нетерминальную заявку
	ErrCannotDelete = errors.New("booking cannot be deleted")

	// ErrRangeAlreadyConfirmed возвращается, когда хотя бы одна ночь диапазона
	// уже занята другой подтвержденной заявкой
	ErrRangeAlreadyConfirmed = errors.New("range already confirmed by another booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
