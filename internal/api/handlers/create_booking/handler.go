package create_booking

import (
	"errors"
	"net/http"

	"github.com/sebschult/FeWo-BookingService/internal/api/handlers"
	createBooking "github.com/sebschult/FeWo-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "ungueltiger anfrageinhalt"
	msgInvalidDate        = "ungueltiges datumsformat, erwartet YYYY-MM-DD"
	msgInvalidRange       = "ungueltiger reisezeitraum"
	msgPropertyNotFound   = "unterkunft nicht gefunden"
	msgRangeRequested     = "zeitraum bereits angefragt"
	msgRangeConfirmed     = "zeitraum bereits belegt"
	msgStayTooShort       = "aufenthalt unterschreitet die mindestaufenthaltsdauer"
	msgTooManyGuests      = "zu viele gaeste fuer diese unterkunft"
	msgInvalidInput       = "ungueltige eingabedaten"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrRangeAlreadyRequested):
			h.logger.Warn("POST /bookings - Range already requested: property_id=%d, range=%s..%s",
				req.PropertyID, req.StartDate, req.EndDate)
			handlers.RespondError(w, http.StatusConflict, msgRangeRequested)

		case errors.Is(err, createBooking.ErrRangeAlreadyConfirmed):
			h.logger.Warn("POST /bookings - Range already confirmed: property_id=%d, range=%s..%s",
				req.PropertyID, req.StartDate, req.EndDate)
			handlers.RespondError(w, http.StatusConflict, msgRangeConfirmed)

		case errors.Is(err, createBooking.ErrPropertyNotFound):
			h.logger.Warn("POST /bookings - Property not found: property_id=%d", req.PropertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, createBooking.ErrInvalidRange):
			h.logger.Warn("POST /bookings - Invalid range: property_id=%d, range=%s..%s: %v",
				req.PropertyID, req.StartDate, req.EndDate, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createBooking.ErrStayTooShort):
			h.logger.Warn("POST /bookings - Stay too short: property_id=%d, range=%s..%s",
				req.PropertyID, req.StartDate, req.EndDate)
			handlers.RespondBadRequest(w, msgStayTooShort)

		case errors.Is(err, createBooking.ErrTooManyGuests):
			h.logger.Warn("POST /bookings - Too many guests: property_id=%d, adults=%d, children=%d",
				req.PropertyID, req.Adults, req.Children)
			handlers.RespondBadRequest(w, msgTooManyGuests)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: property_id=%d, error=%v",
				req.PropertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, property_id=%d",
		result.ID, req.PropertyID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
