package delete_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sebschult/FeWo-BookingService/internal/api/handlers"
	"github.com/sebschult/FeWo-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "ungueltige buchungs-id"
	msgNotFound         = "buchung nicht gefunden"
	msgCannotDelete     = "nur abgelehnte oder stornierte buchungen koennen geloescht werden"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["bookingId"])
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.Delete(r.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCannotDelete):
			h.logger.Warn("DELETE /bookings/{id} - Cannot delete: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotDelete)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking deleted: booking_id=%s", bookingID)
	handlers.RespondNoContent(w)
}
